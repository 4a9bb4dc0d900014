package listview

import "maps"

// State is the filter input of one list view. Any change to the search
// text, a categorical filter, the date range or the page size sends the
// view back to page 1.
type State struct {
	query    Query
	page     int
	pageSize int
}

func NewState(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{page: 1, pageSize: pageSize, query: Query{Filters: map[string]string{}}}
}

func (s *State) Query() Query {
	q := s.query
	q.Filters = maps.Clone(s.query.Filters)
	return q
}

func (s *State) Page() int     { return s.page }
func (s *State) PageSize() int { return s.pageSize }

func (s *State) SetSearch(text string) {
	if text != s.query.Search {
		s.query.Search = text
		s.page = 1
	}
}

func (s *State) SetFilter(name, value string) {
	if s.query.Filters[name] != value {
		s.query.Filters[name] = value
		s.page = 1
	}
}

func (s *State) SetDateRange(start, end string) {
	if start != s.query.Start || end != s.query.End {
		s.query.Start = start
		s.query.End = end
		s.page = 1
	}
}

func (s *State) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size != s.pageSize {
		s.pageSize = size
		s.page = 1
	}
}

// SetSort changes the ordering and keeps the current page.
func (s *State) SetSort(key string) {
	s.query.Sort = key
}

// SetPage moves to page n. Values below 1 become 1; the upper clamp is
// applied by Paginate once the filtered size is known.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.page = n
}
