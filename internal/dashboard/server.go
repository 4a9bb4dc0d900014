// Package dashboard serves the admin pages: the overview, one list page per
// collection with its JSON mirror, spreadsheet import and export, the add
// and delete forms, the call stub and the change stream.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phillip-england/recruitdesk/internal/calls"
	"github.com/phillip-england/recruitdesk/internal/clock"
	"github.com/phillip-england/recruitdesk/internal/config"
	"github.com/phillip-england/recruitdesk/internal/dates"
	"github.com/phillip-england/recruitdesk/internal/events"
	"github.com/phillip-england/recruitdesk/internal/importer"
	"github.com/phillip-england/recruitdesk/internal/middleware"
	"github.com/phillip-england/recruitdesk/internal/store"
)

//go:embed templates/layout.html templates/overview.html templates/candidates.html templates/clients.html templates/jobs.html templates/call_logs.html assets/app.css
var templatesFS embed.FS

type Options struct {
	Config   config.Config
	Store    *store.Store
	Importer *importer.Importer
	Dialer   *calls.Dialer
	Hub      *events.Hub
	Clock    clock.Clock
	Location *time.Location
	Logger   *slog.Logger
}

type Server struct {
	cfg      config.Config
	store    *store.Store
	importer *importer.Importer
	dialer   *calls.Dialer
	hub      *events.Hub
	clk      clock.Clock
	dates    *dates.Normalizer
	logger   *slog.Logger

	overviewTmpl   *template.Template
	candidatesTmpl *template.Template
	clientsTmpl    *template.Template
	jobsTmpl       *template.Template
	callLogsTmpl   *template.Template
}

// New wires a server around opts. Missing collaborators are built from the
// store and config so tests only need to supply a store.
func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.New(opts.Clock, opts.Logger)
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if len(opts.Config.PageSizes) == 0 {
		opts.Config = config.Default()
	}
	if opts.Importer == nil {
		opts.Importer = importer.New(opts.Store, opts.Clock, opts.Location, opts.Logger)
	}
	if opts.Dialer == nil {
		opts.Dialer = calls.NewDialer(opts.Store, opts.Clock, opts.Location, opts.Config.CallProviders, opts.Logger)
	}
	if opts.Hub == nil {
		opts.Hub = events.NewHub()
		opts.Hub.Attach(opts.Store)
	}

	return &Server{
		cfg:      opts.Config,
		store:    opts.Store,
		importer: opts.Importer,
		dialer:   opts.Dialer,
		hub:      opts.Hub,
		clk:      opts.Clock,
		dates:    dates.New(opts.Location),
		logger:   opts.Logger,

		overviewTmpl:   parsePage("overview.html"),
		candidatesTmpl: parsePage("candidates.html"),
		clientsTmpl:    parsePage("clients.html"),
		jobsTmpl:       parsePage("jobs.html"),
		callLogsTmpl:   parsePage("call_logs.html"),
	}
}

func parsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/"+name, "templates/layout.html"))
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.overviewPage)
	mux.HandleFunc("GET /api/stats", s.statsJSON)
	mux.HandleFunc("GET /snapshot", s.downloadSnapshot)
	mux.HandleFunc("GET /events", s.streamEvents)
	mux.HandleFunc("GET /assets/app.css", s.appCSSFile)

	registerCollection(s, mux, s.candidateCollection())
	registerCollection(s, mux, s.clientCollection())
	registerCollection(s, mux, s.jobCollection())
	registerCollection(s, mux, s.callLogCollection())

	mux.HandleFunc("POST /{collection}/import", s.importUpload)
	mux.HandleFunc("POST /api/{collection}/import", s.importUploadJSON)
	mux.HandleFunc("GET /{collection}/template", s.importTemplate)

	mux.HandleFunc("POST /candidates", s.addCandidate)
	mux.HandleFunc("POST /clients", s.addClient)
	mux.HandleFunc("POST /jobs", s.addJob)
	mux.HandleFunc("POST /call-logs", s.addCallLog)
	mux.HandleFunc("POST /clients/{id}/delete", s.deleteClient)
	mux.HandleFunc("POST /jobs/{id}/delete", s.deleteJob)
	mux.HandleFunc("POST /candidates/call", s.initiateCall)
	mux.HandleFunc("POST /api/candidates/call", s.initiateCallJSON)

	csp := strings.Join([]string{
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"script-src 'self' 'unsafe-inline'",
		"connect-src 'self'",
		"frame-ancestors 'none'",
	}, "; ")

	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.AccessLog(s.logger),
		middleware.Recover(s.logger),
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{ContentSecurityPolicy: csp}),
	)
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections on ln until ctx is cancelled, then shuts down
// with a grace period. Open event streams are ended as shutdown starts.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}
	httpServer.RegisterOnShutdown(s.hub.Close)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening on http://" + displayAddr(ln.Addr().String()))
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("shutdown incomplete", "err", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// displayAddr turns a wildcard listen address into a clickable one.
func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "::" || host == "0.0.0.0" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

func (s *Server) appCSSFile(w http.ResponseWriter, r *http.Request) {
	data, err := templatesFS.ReadFile("assets/app.css")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(data)
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data pageData) {
	if err := renderHTMLTemplate(w, tmpl, data); err != nil {
		http.Error(w, "template render failed", http.StatusInternalServerError)
		s.logger.Error("template render failed", "template", tmpl.Name(), "err", err)
	}
}

func renderHTMLTemplate(w http.ResponseWriter, tmpl *template.Template, data pageData) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write(buf.Bytes())
	return err
}

// redirectWith sends the browser back to path with a one-shot notice. key
// is "error" or "message".
func redirectWith(w http.ResponseWriter, r *http.Request, path, key, text string) {
	http.Redirect(w, r, path+"?"+key+"="+url.QueryEscape(text), http.StatusSeeOther)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
