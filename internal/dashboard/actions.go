package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/phillip-england/recruitdesk/internal/calls"
	"github.com/phillip-england/recruitdesk/internal/dates"
	"github.com/phillip-england/recruitdesk/internal/importer"
	"github.com/phillip-england/recruitdesk/internal/records"
	"github.com/phillip-england/recruitdesk/internal/snapshot"
)

var errMissingUpload = errors.New("choose a spreadsheet to upload")

func (s *Server) importUpload(w http.ResponseWriter, r *http.Request) {
	name, ok := records.ParseCollection(r.PathValue("collection"))
	if !ok || !importer.Importable(name) {
		http.NotFound(w, r)
		return
	}
	back := "/" + string(name)

	result, err := s.importFromRequest(w, r, name)
	if err != nil {
		redirectWith(w, r, back, "error", importMessage(err))
		return
	}
	redirectWith(w, r, back, "message", fmt.Sprintf("Imported %d %s", result.Count, strings.ReplaceAll(string(name), "-", " ")))
}

func (s *Server) importUploadJSON(w http.ResponseWriter, r *http.Request) {
	name, ok := records.ParseCollection(r.PathValue("collection"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}
	if !importer.Importable(name) {
		writeError(w, http.StatusBadRequest, importer.ErrNotImportable.Error())
		return
	}

	result, err := s.importFromRequest(w, r, name)
	if err != nil {
		writeError(w, http.StatusBadRequest, importMessage(err))
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) importFromRequest(w http.ResponseWriter, r *http.Request, name records.Collection) (importer.Result, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return importer.Result{}, fmt.Errorf("invalid upload form: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return importer.Result{}, errMissingUpload
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	return s.importer.Import(name, header.Filename, file)
}

// importMessage maps an import failure to the notice shown to the user.
// Parse details stay in the log.
func importMessage(err error) string {
	switch {
	case errors.Is(err, importer.ErrUnsupportedFile):
		return importer.ErrUnsupportedFile.Error()
	case errors.Is(err, importer.ErrEmptySheet):
		return importer.ErrEmptySheet.Error()
	case errors.Is(err, importer.ErrParse):
		return importer.ErrParse.Error()
	case errors.Is(err, importer.ErrNotImportable):
		return importer.ErrNotImportable.Error()
	case errors.Is(err, errMissingUpload):
		return errMissingUpload.Error()
	default:
		return "upload failed"
	}
}

func (s *Server) importTemplate(w http.ResponseWriter, r *http.Request) {
	name, ok := records.ParseCollection(r.PathValue("collection"))
	if !ok || !importer.Importable(name) {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := importer.WriteTemplate(&buf, name); err != nil {
		s.logger.Error("template build failed", "collection", string(name), "err", err)
		http.Error(w, "unable to build template", http.StatusInternalServerError)
		return
	}
	writeWorkbook(w, string(name)+"-template.xlsx", buf.Bytes())
}

// downloadSnapshot serves the whole store as a seed file that `run` can
// load through seed_path. format is yaml (default), yml or json, with an
// optional .xz suffix.
func (s *Server) downloadSnapshot(w http.ResponseWriter, r *http.Request) {
	format := strings.TrimPrefix(strings.TrimSpace(r.URL.Query().Get("format")), ".")
	if format == "" {
		format = "yaml"
	}
	filename := "recruitdesk-snapshot." + format

	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, filename, snapshot.Capture(s.store)); err != nil {
		if errors.Is(err, snapshot.ErrUnknownFormat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("snapshot failed", "format", format, "err", err)
		http.Error(w, "unable to build snapshot", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// formValue trims the field and substitutes the placeholder for blanks.
func formValue(r *http.Request, key string) string {
	if value := strings.TrimSpace(r.FormValue(key)); value != "" {
		return value
	}
	return records.Placeholder
}

func (s *Server) addCandidate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/candidates", "error", "Invalid form submission")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		redirectWith(w, r, "/candidates", "error", "Candidate name is required")
		return
	}
	s.store.AddCandidate(records.Candidate{
		ID:        s.store.ReserveIDs(1),
		Name:      name,
		Email:     formValue(r, "email"),
		Phone:     formValue(r, "phone"),
		Client:    formValue(r, "client"),
		JobTitle:  formValue(r, "jobTitle"),
		Vendor:    formValue(r, "vendor"),
		CreatedAt: dates.FormatOrdinal(s.now()),
	})
	redirectWith(w, r, "/candidates", "message", "Candidate added")
}

func (s *Server) addClient(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/clients", "error", "Invalid form submission")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		redirectWith(w, r, "/clients", "error", "Client name is required")
		return
	}
	s.store.AddClient(records.Client{
		ID:       s.store.ReserveIDs(1),
		Name:     name,
		Contact:  formValue(r, "contact"),
		Company:  formValue(r, "company"),
		Category: formValue(r, "category"),
		Date:     dates.FormatSlash(s.now()),
		Timezone: formValue(r, "timezone"),
	})
	redirectWith(w, r, "/clients", "message", "Client added")
}

func (s *Server) addJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/jobs", "error", "Invalid form submission")
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		redirectWith(w, r, "/jobs", "error", "Job title is required")
		return
	}
	s.store.AddJob(records.Job{
		ID:       s.store.ReserveIDs(1),
		Title:    title,
		Category: formValue(r, "category"),
		Posted:   dates.FormatSlash(s.now()),
		Status:   records.ParseJobStatus(r.FormValue("status")),
	})
	redirectWith(w, r, "/jobs", "message", "Job added")
}

func (s *Server) addCallLog(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/call-logs", "error", "Invalid form submission")
		return
	}
	candidate := strings.TrimSpace(r.FormValue("candidate"))
	if candidate == "" {
		redirectWith(w, r, "/call-logs", "error", "Candidate is required")
		return
	}
	callType := records.CallType(strings.TrimSpace(r.FormValue("type")))
	status := records.CallStatus(strings.TrimSpace(r.FormValue("status")))
	if !callType.Valid() || !status.Valid() {
		redirectWith(w, r, "/call-logs", "error", "Choose a call type and status")
		return
	}
	s.store.AddCallLog(records.CallLog{
		ID:        s.store.ReserveIDs(1),
		Candidate: candidate,
		Phone:     formValue(r, "phone"),
		Type:      callType,
		Duration:  formValue(r, "duration"),
		Status:    status,
		Date:      dates.FormatOrdinal(s.now()),
		Notes:     formValue(r, "notes"),
	})
	redirectWith(w, r, "/call-logs", "message", "Call log added")
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		redirectWith(w, r, "/clients", "error", "Invalid client id")
		return
	}
	if !s.store.DeleteClient(id) {
		s.logger.Debug("delete of unknown client ignored", "id", id)
	}
	redirectWith(w, r, "/clients", "message", "Client deleted")
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		redirectWith(w, r, "/jobs", "error", "Invalid job id")
		return
	}
	if !s.store.DeleteJob(id) {
		s.logger.Debug("delete of unknown job ignored", "id", id)
	}
	redirectWith(w, r, "/jobs", "message", "Job deleted")
}

func callRequest(r *http.Request) calls.Request {
	return calls.Request{
		Name:     r.FormValue("name"),
		Phone:    r.FormValue("phone"),
		Provider: r.FormValue("provider"),
	}
}

func (s *Server) initiateCall(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/candidates", "error", "Invalid form submission")
		return
	}
	log, err := s.dialer.Initiate(callRequest(r))
	if err != nil {
		redirectWith(w, r, "/candidates", "error", err.Error())
		return
	}
	redirectWith(w, r, "/candidates", "message", "Call to "+log.Candidate+" logged")
}

func (s *Server) initiateCallJSON(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form submission")
		return
	}
	log, err := s.dialer.Initiate(callRequest(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, log)
}
