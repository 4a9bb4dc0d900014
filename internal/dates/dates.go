// Package dates turns the free-text date strings stored on records into
// comparable instants for range filtering.
//
// Three formats are recognised, each by its own matcher, tried in order:
//
//	13th Jan 2026 at 08:32 AM CDT   ordinal day, month abbreviation, year
//	08/01/2026                      DD/MM/YYYY
//	18/09/2025 14:09:43             DD/MM/YYYY HH:MM:SS (24-hour)
//
// Text that none of them accepts is unparseable, and unparseable text is
// never excluded by a range filter.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// BoundLayout is the layout of the start and end inputs of a range filter.
const BoundLayout = "2006-01-02"

type Normalizer struct {
	loc      *time.Location
	matchers []matcher
}

func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{
		loc: loc,
		matchers: []matcher{
			ordinalMatcher{},
			slashDateMatcher{},
			slashDateTimeMatcher{},
		},
	}
}

var defaultNormalizer = New(nil)

// ParseDate parses text in the local time zone.
func ParseDate(text string) (time.Time, bool) {
	return defaultNormalizer.Parse(text)
}

// IsDateInRange reports whether text falls within [start, end] using the
// local time zone.
func IsDateInRange(text, start, end string) bool {
	return defaultNormalizer.InRange(text, start, end)
}

func (n *Normalizer) Location() *time.Location { return n.loc }

// Parse returns the instant of the first matcher that accepts text.
func (n *Normalizer) Parse(text string) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}
	for _, m := range n.matchers {
		if t, ok := m.match(text, n.loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// InRange compares text against the start of day of start and the end of
// day of end, both inclusive. Either bound may be empty. A bound that is
// not a YYYY-MM-DD date counts as empty.
func (n *Normalizer) InRange(text, start, end string) bool {
	lo, hasLo := n.startOfDay(start)
	hi, hasHi := n.endOfDay(end)
	if !hasLo && !hasHi {
		return true
	}

	t, ok := n.Parse(text)
	if !ok {
		return true
	}
	if hasLo && t.Before(lo) {
		return false
	}
	if hasHi && t.After(hi) {
		return false
	}
	return true
}

// SameDay reports whether text parses to the calendar day of day.
func (n *Normalizer) SameDay(text string, day time.Time) bool {
	t, ok := n.Parse(text)
	if !ok {
		return false
	}
	day = day.In(n.loc)
	return t.Year() == day.Year() && t.Month() == day.Month() && t.Day() == day.Day()
}

func (n *Normalizer) startOfDay(bound string) (time.Time, bool) {
	bound = strings.TrimSpace(bound)
	if bound == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(BoundLayout, bound, n.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (n *Normalizer) endOfDay(bound string) (time.Time, bool) {
	t, ok := n.startOfDay(bound)
	if !ok {
		return time.Time{}, false
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond), true
}

// FormatOrdinal renders t the way candidate and call timestamps are
// displayed, e.g. "13th Jan 2026 at 08:32 AM CDT".
func FormatOrdinal(t time.Time) string {
	return fmt.Sprintf("%d%s %s", t.Day(), ordinalSuffix(t.Day()), t.Format("Jan 2006 at 03:04 PM MST"))
}

// FormatSlash renders t as DD/MM/YYYY HH:MM:SS, the client and job format.
func FormatSlash(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
