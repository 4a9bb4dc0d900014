package dashboard

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/phillip-england/recruitdesk/internal/records"
)

const recentLimit = 5

type statsView struct {
	TotalCandidates int `json:"totalCandidates"`
	ActiveJobs      int `json:"activeJobs"`
	Clients         int `json:"clients"`
	CallsToday      int `json:"callsToday"`
}

type activityView struct {
	Action string             `json:"action"`
	Name   string             `json:"name"`
	Ago    string             `json:"ago"`
	Kind   records.Collection `json:"kind"`
	at     time.Time
}

type statsResponse struct {
	Stats  statsView      `json:"stats"`
	Recent []activityView `json:"recent"`
}

func (s *Server) now() time.Time {
	return s.clk.Now().In(s.dates.Location())
}

func (s *Server) stats() statsView {
	jobs := s.store.Jobs()
	active := 0
	for _, j := range jobs {
		if j.Status == records.JobActive {
			active++
		}
	}

	today := s.now()
	callsToday := 0
	for _, l := range s.store.CallLogs() {
		if s.dates.SameDay(l.Date, today) {
			callsToday++
		}
	}

	return statsView{
		TotalCandidates: len(s.store.Candidates()),
		ActiveJobs:      active,
		Clients:         len(s.store.Clients()),
		CallsToday:      callsToday,
	}
}

// recent returns the newest dated entries across all collections. Records
// whose date cannot be read are left out.
func (s *Server) recent() []activityView {
	var out []activityView
	add := func(kind records.Collection, action, name, date string) {
		if at, ok := s.dates.Parse(date); ok {
			out = append(out, activityView{Action: action, Name: name, Kind: kind, at: at})
		}
	}
	for _, c := range s.store.Candidates() {
		add(records.Candidates, "New candidate added", c.Name, c.CreatedAt)
	}
	for _, j := range s.store.Jobs() {
		add(records.Jobs, "Job posted", j.Title, j.Posted)
	}
	for _, c := range s.store.Clients() {
		add(records.Clients, "Client added", c.Name, c.Date)
	}
	for _, l := range s.store.CallLogs() {
		add(records.CallLogs, "Call logged", l.Candidate, l.Date)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].at.After(out[j].at) })
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	now := s.now()
	for i := range out {
		out[i].Ago = ago(now, out[i].at)
	}
	return out
}

func ago(now, then time.Time) string {
	d := now.Sub(then)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func (s *Server) overviewPage(w http.ResponseWriter, r *http.Request) {
	stats := s.stats()
	s.render(w, s.overviewTmpl, pageData{
		Title:   "Dashboard",
		Path:    "/",
		Error:   r.URL.Query().Get("error"),
		Message: r.URL.Query().Get("message"),
		Stats:   &stats,
		Recent:  s.recent(),
	})
}

func (s *Server) statsJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{Stats: s.stats(), Recent: s.recent()})
}
