package dashboard

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const keepAliveInterval = 25 * time.Second

// streamEvents pushes one "message" event per store change so open pages
// can refresh themselves.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	clientID := uuid.NewString()
	fmt.Fprintf(w, "event: ready\ndata: {\"client\":%q}\n\n", clientID)
	if err := rc.Flush(); err != nil {
		s.logger.Warn("event stream unsupported", "err", err)
		return
	}
	s.logger.Debug("event stream opened", "client", clientID, "subscribers", s.hub.Clients())

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("event stream closed", "client", clientID)
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			_ = rc.Flush()
		case msg, ok := <-ch:
			if !ok {
				s.logger.Debug("event stream ended by shutdown", "client", clientID)
				return
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg)
			_ = rc.Flush()
		}
	}
}
