// Package calls records outbound calls started from the candidate list.
// No telephony provider is contacted; a call only produces a call log entry.
package calls

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phillip-england/recruitdesk/internal/clock"
	"github.com/phillip-england/recruitdesk/internal/dates"
	"github.com/phillip-england/recruitdesk/internal/records"
	"github.com/phillip-england/recruitdesk/internal/store"
)

var (
	ErrMissingCallInput = errors.New("candidate name and phone are required")
	ErrUnknownProvider  = errors.New("unknown call provider")
)

var DefaultProviders = []string{"Vapi", "Ultravox"}

type Request struct {
	Name     string
	Phone    string
	Provider string
}

type Dialer struct {
	store     *store.Store
	clk       clock.Clock
	loc       *time.Location
	providers []string
	logger    *slog.Logger
}

func NewDialer(st *store.Store, clk clock.Clock, loc *time.Location, providers []string, logger *slog.Logger) *Dialer {
	if clk == nil {
		clk = clock.Real()
	}
	if loc == nil {
		loc = time.Local
	}
	if len(providers) == 0 {
		providers = DefaultProviders
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dialer{store: st, clk: clk, loc: loc, providers: providers, logger: logger}
}

func (d *Dialer) Providers() []string {
	return append([]string(nil), d.providers...)
}

// Initiate validates req and prepends an outgoing, completed call log. An
// empty provider selects the first configured one.
func (d *Dialer) Initiate(req Request) (records.CallLog, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || name == records.Placeholder || phone == "" || phone == records.Placeholder {
		return records.CallLog{}, ErrMissingCallInput
	}

	provider, ok := d.provider(strings.TrimSpace(req.Provider))
	if !ok {
		return records.CallLog{}, fmt.Errorf("%w: %s", ErrUnknownProvider, req.Provider)
	}

	log := records.CallLog{
		ID:        d.store.ReserveIDs(1),
		Candidate: name,
		Phone:     phone,
		Type:      records.CallOutgoing,
		Duration:  records.Placeholder,
		Status:    records.CallCompleted,
		Date:      dates.FormatOrdinal(d.clk.Now().In(d.loc)),
		Notes:     "Initiated via " + provider,
	}
	d.store.AddCallLog(log)
	d.logger.Info("call initiated", "candidate", name, "provider", provider)
	return log, nil
}

func (d *Dialer) provider(raw string) (string, bool) {
	if raw == "" {
		return d.providers[0], true
	}
	for _, p := range d.providers {
		if strings.EqualFold(p, raw) {
			return p, true
		}
	}
	return "", false
}
