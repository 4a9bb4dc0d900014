package dashboard

import (
	"bytes"
	"html/template"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strconv"

	"github.com/phillip-england/recruitdesk/internal/dates"
	"github.com/phillip-england/recruitdesk/internal/importer"
	"github.com/phillip-england/recruitdesk/internal/listview"
	"github.com/phillip-england/recruitdesk/internal/records"
)

type pageData struct {
	Title   string
	Active  records.Collection
	Path    string
	Error   string
	Message string

	Search  string
	Start   string
	End     string
	Sort    string
	Filters map[string]string

	Paged      bool
	Page       int
	PageSize   int
	PageSizes  []int
	TotalCount int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
	ExportURL  string
	Importable bool
	Providers  []string

	Candidates []records.Candidate
	Clients    []records.Client
	Jobs       []records.Job
	CallLogs   []records.CallLog

	Stats  *statsView
	Recent []activityView
}

type listResponse[T any] struct {
	Collection records.Collection `json:"collection"`
	Count      int                `json:"count"`
	Page       int                `json:"page"`
	PerPage    int                `json:"perPage"`
	TotalPages int                `json:"totalPages"`
	Items      []T                `json:"items"`
}

// collection bundles everything the list, JSON and export routes need for
// one entity. Views that are not paged show every matching row.
type collection[T any] struct {
	name   records.Collection
	title  string
	paged  bool
	spec   listview.Spec[T]
	items  func() []T
	tmpl   *template.Template
	assign func(*pageData, []T)
	export func(io.Writer, []T) error
}

func (s *Server) candidateCollection() collection[records.Candidate] {
	return collection[records.Candidate]{
		name:   records.Candidates,
		title:  "Candidates",
		spec:   listview.CandidateSpec,
		items:  s.store.Candidates,
		tmpl:   s.candidatesTmpl,
		assign: func(d *pageData, items []records.Candidate) { d.Candidates = items },
		export: importer.WriteCandidates,
	}
}

func (s *Server) clientCollection() collection[records.Client] {
	return collection[records.Client]{
		name:   records.Clients,
		title:  "Clients",
		paged:  true,
		spec:   listview.ClientSpec,
		items:  s.store.Clients,
		tmpl:   s.clientsTmpl,
		assign: func(d *pageData, items []records.Client) { d.Clients = items },
		export: importer.WriteClients,
	}
}

func (s *Server) jobCollection() collection[records.Job] {
	return collection[records.Job]{
		name:   records.Jobs,
		title:  "Job Descriptions",
		paged:  true,
		spec:   listview.JobSpec,
		items:  s.store.Jobs,
		tmpl:   s.jobsTmpl,
		assign: func(d *pageData, items []records.Job) { d.Jobs = items },
		export: importer.WriteJobs,
	}
}

func (s *Server) callLogCollection() collection[records.CallLog] {
	return collection[records.CallLog]{
		name:   records.CallLogs,
		title:  "Call Logs",
		spec:   listview.CallLogSpec,
		items:  s.store.CallLogs,
		tmpl:   s.callLogsTmpl,
		assign: func(d *pageData, items []records.CallLog) { d.CallLogs = items },
		export: importer.WriteCallLogs,
	}
}

func registerCollection[T any](s *Server, mux *http.ServeMux, c collection[T]) {
	path := "/" + string(c.name)

	mux.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		st := listState(s, q, c.spec)
		s.render(w, c.tmpl, listPageData(s, c, q, st, c.view(st, s.dates)))
	})

	mux.HandleFunc("GET /api"+path, func(w http.ResponseWriter, r *http.Request) {
		page := c.view(listState(s, r.URL.Query(), c.spec), s.dates)
		writeJSON(w, http.StatusOK, listResponse[T]{
			Collection: c.name,
			Count:      page.Total,
			Page:       page.Page,
			PerPage:    page.PageSize,
			TotalPages: page.TotalPages,
			Items:      page.Items,
		})
	})

	mux.HandleFunc("GET "+path+"/export", func(w http.ResponseWriter, r *http.Request) {
		st := listState(s, r.URL.Query(), c.spec)
		filtered := listview.Apply(c.items(), c.spec, st.Query(), s.dates)

		var buf bytes.Buffer
		if err := c.export(&buf, filtered); err != nil {
			s.logger.Error("export failed", "collection", string(c.name), "err", err)
			http.Error(w, "unable to build export", http.StatusInternalServerError)
			return
		}
		writeWorkbook(w, string(c.name)+".xlsx", buf.Bytes())
	})
}

func (c collection[T]) view(st *listview.State, n *dates.Normalizer) listview.Page[T] {
	if c.paged {
		return listview.Run(c.items(), c.spec, st, n)
	}
	return listview.Whole(listview.Apply(c.items(), c.spec, st.Query(), n))
}

// listState rebuilds the view state from the query string. The page is
// applied last so a request carrying new filters and no page lands on 1.
func listState[T any](s *Server, q url.Values, spec listview.Spec[T]) *listview.State {
	st := listview.NewState(s.cfg.DefaultPageSize)
	st.SetPageSize(s.cfg.PageSize(parsePositiveInt(q.Get("size"), s.cfg.DefaultPageSize)))
	st.SetSearch(q.Get("search"))
	for name := range spec.Categories {
		st.SetFilter(name, q.Get(name))
	}
	st.SetDateRange(q.Get("start"), q.Get("end"))
	st.SetSort(q.Get("sort"))
	st.SetPage(parsePositiveInt(q.Get("page"), 1))
	return st
}

func listPageData[T any](s *Server, c collection[T], q url.Values, st *listview.State, page listview.Page[T]) pageData {
	query := st.Query()
	path := "/" + string(c.name)
	data := pageData{
		Title:      c.title,
		Active:     c.name,
		Path:       path,
		Error:      q.Get("error"),
		Message:    q.Get("message"),
		Search:     query.Search,
		Start:      query.Start,
		End:        query.End,
		Sort:       query.Sort,
		Filters:    query.Filters,
		Paged:      c.paged,
		Page:       page.Page,
		PageSize:   page.PageSize,
		PageSizes:  s.cfg.PageSizes,
		TotalCount: page.Total,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev(),
		HasNext:    page.HasNext(),
		PrevURL:    pageURL(path, q, page.PrevPage()),
		NextURL:    pageURL(path, q, page.NextPage()),
		ExportURL:  pageURL(path+"/export", q, 0),
		Importable: importer.Importable(c.name),
		Providers:  s.dialer.Providers(),
	}
	c.assign(&data, page.Items)
	return data
}

// pageURL keeps the current filters and swaps the page. page 0 drops it.
func pageURL(path string, q url.Values, page int) string {
	next := maps.Clone(q)
	if next == nil {
		next = url.Values{}
	}
	next.Del("error")
	next.Del("message")
	next.Del("page")
	if page > 0 {
		next.Set("page", strconv.Itoa(page))
	}
	if len(next) == 0 {
		return path
	}
	return path + "?" + next.Encode()
}

func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
