package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type matcher interface {
	match(text string, loc *time.Location) (time.Time, bool)
}

var monthAbbrev = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ordinalMatcher accepts "<day><st|nd|rd|th> <Mon> <year>" anywhere in the
// text. The suffix is not checked against the day; trailing time-of-day and
// zone text is ignored.
type ordinalMatcher struct{}

var ordinalPattern = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)\s+(\w+)\s+(\d{4})`)

func (ordinalMatcher) match(text string, loc *time.Location) (time.Time, bool) {
	m := ordinalPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthAbbrev[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	return calendarDate(year, month, day, 0, 0, 0, loc)
}

// slashDateMatcher accepts the first DD/MM/YYYY anywhere in the text and
// resolves it to midnight. A time of day after it is ignored; values with a
// time only reach slashDateTimeMatcher when this match fails.
type slashDateMatcher struct{}

var slashDatePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)

func (slashDateMatcher) match(text string, loc *time.Location) (time.Time, bool) {
	m := slashDatePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return calendarDate(year, time.Month(month), day, 0, 0, 0, loc)
}

// slashDateTimeMatcher accepts DD/MM/YYYY HH:MM:SS anywhere in the text.
type slashDateTimeMatcher struct{}

var slashDateTimePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})\s+(\d{2}):(\d{2}):(\d{2})`)

func (slashDateTimeMatcher) match(text string, loc *time.Location) (time.Time, bool) {
	m := slashDateTimePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	fields := make([]int, 6)
	for i := range fields {
		fields[i], _ = strconv.Atoi(m[i+1])
	}
	hour, minute, second := fields[3], fields[4], fields[5]
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}
	return calendarDate(fields[2], time.Month(fields[1]), fields[0], hour, minute, second, loc)
}

// calendarDate rejects fields that time.Date would silently normalise,
// such as month 13 or 31st of February.
func calendarDate(year int, month time.Month, day, hour, minute, second int, loc *time.Location) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, hour, minute, second, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
