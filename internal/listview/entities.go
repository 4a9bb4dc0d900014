package listview

import (
	"cmp"
	"strings"

	"github.com/phillip-england/recruitdesk/internal/dates"
	"github.com/phillip-england/recruitdesk/internal/records"
)

func byText[T any](field func(T) string) Compare[T] {
	return func(_ *dates.Normalizer, a, b T) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

func byID[T any](field func(T) int64) Compare[T] {
	return func(_ *dates.Normalizer, a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// byDate orders unparseable dates after every parseable one.
func byDate[T any](field func(T) string) Compare[T] {
	return func(n *dates.Normalizer, a, b T) int {
		ta, okA := n.Parse(field(a))
		tb, okB := n.Parse(field(b))
		switch {
		case okA && okB:
			return ta.Compare(tb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	}
}

var CandidateSpec = Spec[records.Candidate]{
	SearchFields: []func(records.Candidate) string{
		func(c records.Candidate) string { return c.Name },
		func(c records.Candidate) string { return c.Email },
		func(c records.Candidate) string { return c.Phone },
		func(c records.Candidate) string { return c.Client },
		func(c records.Candidate) string { return c.JobTitle },
		func(c records.Candidate) string { return c.Vendor },
	},
	DateField: func(c records.Candidate) string { return c.CreatedAt },
	SortKeys: map[string]Compare[records.Candidate]{
		"name":      byText(func(c records.Candidate) string { return c.Name }),
		"email":     byText(func(c records.Candidate) string { return c.Email }),
		"phone":     byText(func(c records.Candidate) string { return c.Phone }),
		"client":    byText(func(c records.Candidate) string { return c.Client }),
		"jobTitle":  byText(func(c records.Candidate) string { return c.JobTitle }),
		"createdAt": byDate(func(c records.Candidate) string { return c.CreatedAt }),
	},
}

var ClientSpec = Spec[records.Client]{
	SearchFields: []func(records.Client) string{
		func(c records.Client) string { return c.Name },
		func(c records.Client) string { return c.Contact },
		func(c records.Client) string { return c.Company },
		func(c records.Client) string { return c.Category },
		func(c records.Client) string { return c.Timezone },
	},
	DateField: func(c records.Client) string { return c.Date },
	SortKeys: map[string]Compare[records.Client]{
		"id":       byID(func(c records.Client) int64 { return c.ID }),
		"name":     byText(func(c records.Client) string { return c.Name }),
		"contact":  byText(func(c records.Client) string { return c.Contact }),
		"company":  byText(func(c records.Client) string { return c.Company }),
		"category": byText(func(c records.Client) string { return c.Category }),
		"date":     byDate(func(c records.Client) string { return c.Date }),
	},
}

var JobSpec = Spec[records.Job]{
	SearchFields: []func(records.Job) string{
		func(j records.Job) string { return j.Title },
		func(j records.Job) string { return j.Category },
	},
	Categories: map[string]func(records.Job) string{
		"status": func(j records.Job) string { return string(j.Status) },
	},
	DateField: func(j records.Job) string { return j.Posted },
	SortKeys: map[string]Compare[records.Job]{
		"id":       byID(func(j records.Job) int64 { return j.ID }),
		"title":    byText(func(j records.Job) string { return j.Title }),
		"category": byText(func(j records.Job) string { return j.Category }),
		"posted":   byDate(func(j records.Job) string { return j.Posted }),
		"status":   byText(func(j records.Job) string { return string(j.Status) }),
	},
}

var CallLogSpec = Spec[records.CallLog]{
	SearchFields: []func(records.CallLog) string{
		func(l records.CallLog) string { return l.Candidate },
		func(l records.CallLog) string { return l.Phone },
		func(l records.CallLog) string { return l.Notes },
	},
	Categories: map[string]func(records.CallLog) string{
		"type":   func(l records.CallLog) string { return string(l.Type) },
		"status": func(l records.CallLog) string { return string(l.Status) },
	},
	DateField: func(l records.CallLog) string { return l.Date },
	SortKeys: map[string]Compare[records.CallLog]{
		"candidate": byText(func(l records.CallLog) string { return l.Candidate }),
		"phone":     byText(func(l records.CallLog) string { return l.Phone }),
		"status":    byText(func(l records.CallLog) string { return string(l.Status) }),
		"date":      byDate(func(l records.CallLog) string { return l.Date }),
	},
}
