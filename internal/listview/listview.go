// Package listview derives the visible rows of a table from a collection
// and the current filter state: free-text search, categorical filters, a
// date range, an optional sort, and page slicing.
package listview

import (
	"sort"
	"strings"

	"github.com/phillip-england/recruitdesk/internal/dates"
)

// All is the select-box value that disables a categorical filter.
const All = "all"

const DefaultPageSize = 10

type Query struct {
	Search  string
	Filters map[string]string
	Start   string
	End     string
	Sort    string
}

// Spec describes one entity for the pipeline.
type Spec[T any] struct {
	// SearchFields are matched case-insensitively by substring.
	SearchFields []func(T) string
	// Categories maps a filter name to the field it compares exactly,
	// ignoring case.
	Categories map[string]func(T) string
	// DateField is the free-text date used by the range filter.
	DateField func(T) string
	// SortKeys maps a column name to its ordering. Prefix the name with
	// "-" in Query.Sort for descending order.
	SortKeys map[string]Compare[T]
}

type Compare[T any] func(n *dates.Normalizer, a, b T) int

// Apply returns the records of items that satisfy every active predicate
// of q, in collection order unless q.Sort names a known key.
func Apply[T any](items []T, spec Spec[T], q Query, n *dates.Normalizer) []T {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesSearch(spec, item, needle) {
			continue
		}
		if !matchesCategories(spec, item, q.Filters) {
			continue
		}
		if spec.DateField != nil && !n.InRange(spec.DateField(item), q.Start, q.End) {
			continue
		}
		out = append(out, item)
	}

	if cmp, desc, ok := sortKey(spec, q.Sort); ok {
		sort.SliceStable(out, func(i, j int) bool {
			c := cmp(n, out[i], out[j])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	return out
}

func matchesSearch[T any](spec Spec[T], item T, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range spec.SearchFields {
		if strings.Contains(strings.ToLower(field(item)), needle) {
			return true
		}
	}
	return false
}

func matchesCategories[T any](spec Spec[T], item T, filters map[string]string) bool {
	for name, want := range filters {
		want = strings.TrimSpace(want)
		if want == "" || strings.EqualFold(want, All) {
			continue
		}
		field, ok := spec.Categories[name]
		if !ok {
			continue
		}
		if !strings.EqualFold(field(item), want) {
			return false
		}
	}
	return true
}

func sortKey[T any](spec Spec[T], raw string) (Compare[T], bool, bool) {
	raw = strings.TrimSpace(raw)
	desc := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	if raw == "" {
		return nil, false, false
	}
	cmp, ok := spec.SortKeys[raw]
	return cmp, desc, ok
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }
func (p Page[T]) PrevPage() int { return max(1, p.Page-1) }
func (p Page[T]) NextPage() int { return min(p.TotalPages, p.Page+1) }

// Paginate slices items into fixed-size pages. page is 1-based and clamped
// to [1, TotalPages]; TotalPages is at least 1 even for an empty input.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	totalPages := 1
	if total > 0 {
		totalPages = (total + size - 1) / size
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := min(start+size, total)
	return Page[T]{
		Items:      append([]T(nil), items[start:end]...),
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Whole wraps an unpaged result as a single page holding every item.
func Whole[T any](items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       1,
		PageSize:   len(items),
		Total:      len(items),
		TotalPages: 1,
	}
}

// Run filters items with the state's query and returns the state's page.
func Run[T any](items []T, spec Spec[T], st *State, n *dates.Normalizer) Page[T] {
	return Paginate(Apply(items, spec, st.Query(), n), st.Page(), st.PageSize())
}
