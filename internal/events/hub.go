// Package events fans store changes out to connected browsers.
package events

import (
	"encoding/json"
	"sync"

	"github.com/phillip-england/recruitdesk/internal/store"
)

type Hub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan string]struct{})}
}

func (h *Hub) Subscribe() chan string {
	ch := make(chan string, 10)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Close ends every open subscription. Subscribers see their channel close
// and return.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish never blocks; a client whose buffer is full misses the event.
func (h *Hub) Publish(evt string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Attach publishes every change of st until the returned func is called.
func (h *Hub) Attach(st *store.Store) func() {
	return st.Subscribe(func(c store.Change) {
		h.Publish(Encode(c))
	})
}

func Encode(c store.Change) string {
	b, _ := json.Marshal(c)
	return string(b)
}
