package listview

import (
	"fmt"
	"testing"
	"time"

	"github.com/phillip-england/recruitdesk/internal/dates"
	"github.com/phillip-england/recruitdesk/internal/records"
	"github.com/phillip-england/recruitdesk/internal/store"
)

var utc = dates.New(time.UTC)

func noopQuery() Query {
	return Query{Filters: map[string]string{"type": All, "status": All}}
}

func TestNoopPredicatesKeepEveryCollectionInOrder(t *testing.T) {
	candidates := store.DefaultCandidates()
	if got := Apply(candidates, CandidateSpec, noopQuery(), utc); !sameIDs(got, candidates, func(c records.Candidate) int64 { return c.ID }) {
		t.Fatalf("expected candidates unchanged")
	}
	clients := store.DefaultClients()
	if got := Apply(clients, ClientSpec, noopQuery(), utc); !sameIDs(got, clients, func(c records.Client) int64 { return c.ID }) {
		t.Fatalf("expected clients unchanged")
	}
	jobs := store.DefaultJobs()
	if got := Apply(jobs, JobSpec, noopQuery(), utc); !sameIDs(got, jobs, func(j records.Job) int64 { return j.ID }) {
		t.Fatalf("expected jobs unchanged")
	}
	logs := store.DefaultCallLogs()
	if got := Apply(logs, CallLogSpec, noopQuery(), utc); !sameIDs(got, logs, func(l records.CallLog) int64 { return l.ID }) {
		t.Fatalf("expected call logs unchanged")
	}
}

func TestSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	candidates := store.DefaultCandidates()
	cases := map[string]int{
		"SINGH":          2,
		"yopmail":        1,
		"+9162905":       3,
		"tsavo":          1,
		"weekend l20":    1,
		"tapai":          6,
		"no such person": 0,
	}
	for needle, want := range cases {
		got := Apply(candidates, CandidateSpec, Query{Search: needle}, utc)
		if len(got) != want {
			t.Fatalf("expected %d matches for %q, got %d", want, needle, len(got))
		}
	}
}

func TestCategoricalFiltersAreExactAndCaseInsensitive(t *testing.T) {
	logs := store.DefaultCallLogs()

	got := Apply(logs, CallLogSpec, Query{Filters: map[string]string{"type": "outgoing"}}, utc)
	if len(got) != 3 {
		t.Fatalf("expected 3 outgoing calls, got %d", len(got))
	}

	got = Apply(logs, CallLogSpec, Query{Filters: map[string]string{"status": "completed"}}, utc)
	if len(got) != 4 {
		t.Fatalf("expected 4 completed calls, got %d", len(got))
	}

	got = Apply(logs, CallLogSpec, Query{Filters: map[string]string{"type": "missed", "status": "completed"}}, utc)
	if len(got) != 0 {
		t.Fatalf("expected AND of filters to be empty, got %d", len(got))
	}

	got = Apply(logs, CallLogSpec, Query{Filters: map[string]string{"type": "out"}}, utc)
	if len(got) != 0 {
		t.Fatalf("expected partial category value to match nothing, got %d", len(got))
	}

	jobs := Apply(store.DefaultJobs(), JobSpec, Query{Filters: map[string]string{"status": "ACTIVE"}}, utc)
	if len(jobs) != 3 {
		t.Fatalf("expected 3 active jobs, got %d", len(jobs))
	}
}

func TestDateRangeFilter(t *testing.T) {
	logs := store.DefaultCallLogs()
	got := Apply(logs, CallLogSpec, Query{Start: "2026-01-13", End: "2026-01-13"}, utc)
	if len(got) != 3 {
		t.Fatalf("expected 3 calls on 13 Jan, got %d", len(got))
	}

	jobs := Apply(store.DefaultJobs(), JobSpec, Query{End: "2025-08-31"}, utc)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs posted in August, got %d", len(jobs))
	}
}

func TestDateRangeKeepsUnparseableRecords(t *testing.T) {
	candidates := []records.Candidate{
		{ID: 1, CreatedAt: "13th Jan 2026 at 08:32 AM CDT"},
		{ID: 2, CreatedAt: "sometime last week"},
	}
	got := Apply(candidates, CandidateSpec, Query{Start: "2027-01-01"}, utc)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only the unparseable record to survive, got %+v", got)
	}
}

func TestCombinedPredicates(t *testing.T) {
	logs := store.DefaultCallLogs()
	q := Query{
		Search:  "singh",
		Filters: map[string]string{"type": "outgoing"},
		Start:   "2026-01-12",
		End:     "2026-01-12",
	}
	got := Apply(logs, CallLogSpec, q, utc)
	if len(got) != 1 || got[0].Candidate != "Mukesh Singh" {
		t.Fatalf("unexpected combined result %+v", got)
	}
}

func TestSortIsStableAndOptional(t *testing.T) {
	jobs := store.DefaultJobs()
	got := Apply(jobs, JobSpec, Query{Sort: "title"}, utc)
	if got[0].Title != "AVP" || got[1].Title != "AVP" || got[0].ID != 9 || got[1].ID != 5 {
		t.Fatalf("expected stable title sort, got %+v", got[:2])
	}

	got = Apply(jobs, JobSpec, Query{Sort: "-posted"}, utc)
	ids := []int64{got[0].ID, got[1].ID, got[2].ID, got[3].ID, got[4].ID, got[5].ID}
	want := []int64{9, 13, 5, 37, 27, 1}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected same-day postings in collection order, got %v", ids)
		}
	}

	got = Apply(jobs, JobSpec, Query{Sort: "unknown"}, utc)
	if !sameIDs(got, jobs, func(j records.Job) int64 { return j.ID }) {
		t.Fatalf("expected unknown sort key to keep collection order")
	}
}

func TestPaginateLastPartialPage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}
	p := Paginate(items, 3, 10)
	if len(p.Items) != 5 || p.Items[0] != 20 {
		t.Fatalf("expected 5 items starting at 20, got %v", p.Items)
	}
	if p.TotalPages != 3 || p.HasNext() || !p.HasPrev() {
		t.Fatalf("unexpected page metadata %+v", p)
	}
}

func TestPaginateClamps(t *testing.T) {
	items := []int{1, 2, 3}
	if p := Paginate(items, 9, 2); p.Page != 2 || len(p.Items) != 1 {
		t.Fatalf("expected clamp to last page, got %+v", p)
	}
	if p := Paginate(items, -4, 2); p.Page != 1 {
		t.Fatalf("expected clamp to first page, got %+v", p)
	}
	empty := Paginate([]int{}, 5, 10)
	if empty.Page != 1 || empty.TotalPages != 1 || len(empty.Items) != 0 {
		t.Fatalf("expected single empty page, got %+v", empty)
	}
}

func TestWholeKeepsEveryItemInOrder(t *testing.T) {
	logs := Apply(store.DefaultCallLogs(), CallLogSpec, Query{}, utc)
	p := Whole(logs)
	if p.Total != 6 || p.TotalPages != 1 || p.Page != 1 || p.HasNext() || p.HasPrev() {
		t.Fatalf("unexpected page metadata %+v", p)
	}
	if !sameIDs(p.Items, store.DefaultCallLogs(), func(l records.CallLog) int64 { return l.ID }) {
		t.Fatalf("expected no-op query to keep collection order")
	}
}

func TestStateResetsPageOnFilterChange(t *testing.T) {
	candidates := make([]records.Candidate, 25)
	for i := range candidates {
		candidates[i] = records.Candidate{ID: int64(i + 1), Name: fmt.Sprintf("person %02d", i)}
	}

	st := NewState(10)
	st.SetPage(3)
	if p := Run(candidates, CandidateSpec, st, utc); p.Page != 3 || len(p.Items) != 5 {
		t.Fatalf("expected page 3 with 5 rows, got %+v", p)
	}

	st.SetSearch("person")
	if st.Page() != 1 {
		t.Fatalf("expected search change to reset page, got %d", st.Page())
	}

	st.SetPage(2)
	st.SetPageSize(25)
	if st.Page() != 1 {
		t.Fatalf("expected page size change to reset page")
	}

	st.SetPage(2)
	st.SetFilter("status", "active")
	if st.Page() != 1 {
		t.Fatalf("expected filter change to reset page")
	}

	st.SetPage(2)
	st.SetDateRange("2026-01-01", "")
	if st.Page() != 1 {
		t.Fatalf("expected date range change to reset page")
	}

	st.SetPage(2)
	st.SetSearch("person")
	if st.Page() != 2 {
		t.Fatalf("expected unchanged search to keep page")
	}
}

func TestStateQueryIsACopy(t *testing.T) {
	st := NewState(0)
	st.SetFilter("type", "missed")
	q := st.Query()
	q.Filters["type"] = "incoming"
	if st.Query().Filters["type"] != "missed" {
		t.Fatalf("expected state filters to be isolated")
	}
	if st.PageSize() != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", st.PageSize())
	}
}

func sameIDs[T any](got, want []T, id func(T) int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if id(got[i]) != id(want[i]) {
			return false
		}
	}
	return true
}
