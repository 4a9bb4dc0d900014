// Package store holds the four entity collections in process memory.
//
// Mutation methods are the only way to change state. Every mutation runs to
// completion under the store lock and then calls, synchronously and in
// registration order, each listener whose dependency list names the
// collection that changed.
package store

import (
	"log/slog"
	"sync"

	"github.com/phillip-england/recruitdesk/internal/clock"
	"github.com/phillip-england/recruitdesk/internal/records"
)

// Change describes a finished mutation. Count is the collection length
// after the mutation.
type Change struct {
	Collection records.Collection `json:"collection"`
	Count      int                `json:"count"`
}

type Listener func(Change)

type subscription struct {
	id       int
	listener Listener
	deps     map[records.Collection]struct{}
}

type Store struct {
	mu         sync.RWMutex
	candidates []records.Candidate
	clients    []records.Client
	jobs       []records.Job
	callLogs   []records.CallLog

	subsMu  sync.Mutex
	subs    []subscription
	nextSub int

	ids    *IDSource
	logger *slog.Logger
}

func New(clk clock.Clock, logger *slog.Logger) *Store {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		ids:    NewIDSource(clk),
		logger: logger,
	}
}

// Subscribe registers listener for changes to the given collections. An
// empty dependency list subscribes to all four. The returned func removes
// the subscription.
func (s *Store) Subscribe(listener Listener, deps ...records.Collection) func() {
	if len(deps) == 0 {
		deps = records.AllCollections
	}
	set := make(map[records.Collection]struct{}, len(deps))
	for _, d := range deps {
		set[d] = struct{}{}
	}

	s.subsMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, listener: listener, deps: set})
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(collection records.Collection, count int) {
	s.logger.Debug("store mutated", "collection", string(collection), "count", count)

	s.subsMu.Lock()
	targets := make([]Listener, 0, len(s.subs))
	for _, sub := range s.subs {
		if _, ok := sub.deps[collection]; ok {
			targets = append(targets, sub.listener)
		}
	}
	s.subsMu.Unlock()

	change := Change{Collection: collection, Count: count}
	for _, listener := range targets {
		listener(change)
	}
}

// ReserveIDs hands out n consecutive synthetic ids and returns the first.
func (s *Store) ReserveIDs(n int) int64 {
	return s.ids.Reserve(n)
}

func (s *Store) Candidates() []records.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]records.Candidate(nil), s.candidates...)
}

func (s *Store) Clients() []records.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]records.Client(nil), s.clients...)
}

func (s *Store) Jobs() []records.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]records.Job(nil), s.jobs...)
}

func (s *Store) CallLogs() []records.CallLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]records.CallLog(nil), s.callLogs...)
}

// AddCandidates prepends the records in their given order. No validation
// or de-duplication is applied.
func (s *Store) AddCandidates(incoming []records.Candidate) {
	s.mu.Lock()
	s.candidates = prepend(incoming, s.candidates)
	n := len(s.candidates)
	s.mu.Unlock()
	s.notify(records.Candidates, n)
}

func (s *Store) AddCandidate(c records.Candidate) {
	s.AddCandidates([]records.Candidate{c})
}

func (s *Store) AddClients(incoming []records.Client) {
	s.mu.Lock()
	s.clients = prepend(incoming, s.clients)
	n := len(s.clients)
	s.mu.Unlock()
	s.notify(records.Clients, n)
}

func (s *Store) AddClient(c records.Client) {
	s.AddClients([]records.Client{c})
}

func (s *Store) AddJobs(incoming []records.Job) {
	s.mu.Lock()
	s.jobs = prepend(incoming, s.jobs)
	n := len(s.jobs)
	s.mu.Unlock()
	s.notify(records.Jobs, n)
}

func (s *Store) AddJob(j records.Job) {
	s.AddJobs([]records.Job{j})
}

func (s *Store) AddCallLog(l records.CallLog) {
	s.mu.Lock()
	s.callLogs = prepend([]records.CallLog{l}, s.callLogs)
	n := len(s.callLogs)
	s.mu.Unlock()
	s.notify(records.CallLogs, n)
}

// DeleteClient removes the first client with the given id and reports
// whether one was found. An unknown id leaves the collection untouched and
// notifies nobody.
func (s *Store) DeleteClient(id int64) bool {
	s.mu.Lock()
	var removed bool
	s.clients, removed = removeFirst(s.clients, func(c records.Client) bool { return c.ID == id })
	n := len(s.clients)
	s.mu.Unlock()
	if removed {
		s.notify(records.Clients, n)
	}
	return removed
}

func (s *Store) DeleteJob(id int64) bool {
	s.mu.Lock()
	var removed bool
	s.jobs, removed = removeFirst(s.jobs, func(j records.Job) bool { return j.ID == id })
	n := len(s.jobs)
	s.mu.Unlock()
	if removed {
		s.notify(records.Jobs, n)
	}
	return removed
}

func (s *Store) SetCandidates(all []records.Candidate) {
	s.mu.Lock()
	s.candidates = append([]records.Candidate(nil), all...)
	n := len(s.candidates)
	s.mu.Unlock()
	s.notify(records.Candidates, n)
}

func (s *Store) SetClients(all []records.Client) {
	s.mu.Lock()
	s.clients = append([]records.Client(nil), all...)
	n := len(s.clients)
	s.mu.Unlock()
	s.notify(records.Clients, n)
}

func (s *Store) SetJobs(all []records.Job) {
	s.mu.Lock()
	s.jobs = append([]records.Job(nil), all...)
	n := len(s.jobs)
	s.mu.Unlock()
	s.notify(records.Jobs, n)
}

func (s *Store) SetCallLogs(all []records.CallLog) {
	s.mu.Lock()
	s.callLogs = append([]records.CallLog(nil), all...)
	n := len(s.callLogs)
	s.mu.Unlock()
	s.notify(records.CallLogs, n)
}

func prepend[T any](head, tail []T) []T {
	out := make([]T, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}

func removeFirst[T any](items []T, match func(T) bool) ([]T, bool) {
	for i, item := range items {
		if match(item) {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}
