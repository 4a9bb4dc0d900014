package store

import (
	"sync"

	"github.com/phillip-england/recruitdesk/internal/clock"
)

// IDSource issues synthetic ids derived from the wall clock in
// milliseconds. Ids never repeat within a process even when two
// reservations land in the same millisecond.
type IDSource struct {
	mu   sync.Mutex
	clk  clock.Clock
	last int64
}

func NewIDSource(clk clock.Clock) *IDSource {
	return &IDSource{clk: clk}
}

// Reserve claims n ids and returns the first; the caller adds the row
// offset (0..n-1) for each record.
func (s *IDSource) Reserve(n int) int64 {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	base := s.clk.Now().UnixMilli()
	if base <= s.last {
		base = s.last + 1
	}
	s.last = base + int64(n) - 1
	return base
}
