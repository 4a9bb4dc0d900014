// Package importer turns an uploaded spreadsheet into candidate, client or
// job records and merges them into the store in a single update.
package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/phillip-england/recruitdesk/internal/clock"
	"github.com/phillip-england/recruitdesk/internal/dates"
	"github.com/phillip-england/recruitdesk/internal/records"
	"github.com/phillip-england/recruitdesk/internal/store"
)

var ErrNotImportable = errors.New("collection does not accept imports")

// Header spellings accepted for each field, most preferred first. The
// first entry is also the column written to import templates.
var (
	candidateName     = []string{"Name", "name", "Candidate Name", "Full Name"}
	candidateEmail    = []string{"Email", "email", "Email Address", "E-mail"}
	candidatePhone    = []string{"Phone", "phone", "Phone Number", "Mobile"}
	candidateClient   = []string{"Client", "client", "Client Name"}
	candidateJobTitle = []string{"Job Title", "jobTitle", "Title", "Position"}
	candidateVendor   = []string{"Vendor", "vendor", "Vendor Name"}

	clientName     = []string{"Name", "name", "Client Name"}
	clientContact  = []string{"Contact Person", "contact", "Contact"}
	clientCompany  = []string{"Company", "company", "Company Name"}
	clientCategory = []string{"Job Category", "category", "Category"}
	clientTimezone = []string{"Time Zone", "timezone", "Timezone", "TZ"}

	jobTitle    = []string{"Title", "title", "Job Title"}
	jobCategory = []string{"Category", "category", "Job Category"}
	jobStatus   = []string{"Status", "status"}
)

// Batch holds the records mapped from one file. Exactly one slice is set.
type Batch struct {
	Collection records.Collection  `json:"collection"`
	Candidates []records.Candidate `json:"candidates,omitempty"`
	Clients    []records.Client    `json:"clients,omitempty"`
	Jobs       []records.Job       `json:"jobs,omitempty"`
}

func (b Batch) Len() int {
	return len(b.Candidates) + len(b.Clients) + len(b.Jobs)
}

type Result struct {
	Collection records.Collection `json:"collection"`
	Count      int                `json:"count"`
}

type Importer struct {
	store  *store.Store
	clk    clock.Clock
	loc    *time.Location
	logger *slog.Logger

	// Imports are serialised so a second upload never interleaves with
	// the merge of the first.
	mu sync.Mutex
}

func New(st *store.Store, clk clock.Clock, loc *time.Location, logger *slog.Logger) *Importer {
	if clk == nil {
		clk = clock.Real()
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{store: st, clk: clk, loc: loc, logger: logger}
}

func Importable(c records.Collection) bool {
	return c == records.Candidates || c == records.Clients || c == records.Jobs
}

// Parse reads and maps a spreadsheet without touching the collections.
func (im *Importer) Parse(collection records.Collection, filename string, reader io.Reader) (Batch, error) {
	if !Importable(collection) {
		return Batch{}, fmt.Errorf("%w: %s", ErrNotImportable, collection)
	}
	rawRows, err := ReadRows(reader, filename)
	if err != nil {
		return Batch{}, err
	}
	rows := RowsToRecords(rawRows)
	if len(rows) == 0 {
		return Batch{}, ErrEmptySheet
	}

	now := im.clk.Now().In(im.loc)
	firstID := im.store.ReserveIDs(len(rows))

	batch := Batch{Collection: collection}
	switch collection {
	case records.Candidates:
		batch.Candidates = MapCandidates(rows, firstID, dates.FormatOrdinal(now))
	case records.Clients:
		batch.Clients = MapClients(rows, firstID, dates.FormatSlash(now))
	case records.Jobs:
		batch.Jobs = MapJobs(rows, firstID, dates.FormatSlash(now))
	}
	return batch, nil
}

// Import parses the file and prepends every mapped record to the target
// collection in one store update. Any failure leaves the store untouched.
func (im *Importer) Import(collection records.Collection, filename string, reader io.Reader) (Result, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	batch, err := im.Parse(collection, filename, reader)
	if err != nil {
		im.logger.Warn("import rejected", "collection", string(collection), "file", filename, "err", err)
		return Result{}, err
	}

	switch collection {
	case records.Candidates:
		im.store.AddCandidates(batch.Candidates)
	case records.Clients:
		im.store.AddClients(batch.Clients)
	case records.Jobs:
		im.store.AddJobs(batch.Jobs)
	}

	im.logger.Info("import merged", "collection", string(collection), "file", filename, "count", batch.Len())
	return Result{Collection: collection, Count: batch.Len()}, nil
}

func MapCandidates(rows []Row, firstID int64, importedAt string) []records.Candidate {
	out := make([]records.Candidate, 0, len(rows))
	for i, row := range rows {
		out = append(out, records.Candidate{
			ID:        firstID + int64(i),
			Name:      row.Field(records.Placeholder, candidateName...),
			Email:     row.Field(records.Placeholder, candidateEmail...),
			Phone:     row.Field(records.Placeholder, candidatePhone...),
			Client:    row.Field(records.Placeholder, candidateClient...),
			JobTitle:  row.Field(records.Placeholder, candidateJobTitle...),
			Vendor:    row.Field(records.Placeholder, candidateVendor...),
			CreatedAt: importedAt,
		})
	}
	return out
}

func MapClients(rows []Row, firstID int64, importedAt string) []records.Client {
	out := make([]records.Client, 0, len(rows))
	for i, row := range rows {
		out = append(out, records.Client{
			ID:       firstID + int64(i),
			Name:     row.Field(records.Placeholder, clientName...),
			Contact:  row.Field(records.Placeholder, clientContact...),
			Company:  row.Field(records.Placeholder, clientCompany...),
			Category: row.Field(records.Placeholder, clientCategory...),
			Date:     importedAt,
			Timezone: row.Field(records.Placeholder, clientTimezone...),
		})
	}
	return out
}

func MapJobs(rows []Row, firstID int64, importedAt string) []records.Job {
	out := make([]records.Job, 0, len(rows))
	for i, row := range rows {
		out = append(out, records.Job{
			ID:       firstID + int64(i),
			Title:    row.Field(records.Placeholder, jobTitle...),
			Category: row.Field(records.Placeholder, jobCategory...),
			Posted:   importedAt,
			Status:   records.ParseJobStatus(row.Field("", jobStatus...)),
		})
	}
	return out
}

// TemplateHeaders lists the preferred column names for an importable
// collection.
func TemplateHeaders(c records.Collection) ([]string, error) {
	switch c {
	case records.Candidates:
		return firsts(candidateName, candidateEmail, candidatePhone, candidateClient, candidateJobTitle, candidateVendor), nil
	case records.Clients:
		return firsts(clientName, clientContact, clientCompany, clientCategory, clientTimezone), nil
	case records.Jobs:
		return firsts(jobTitle, jobCategory, jobStatus), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotImportable, c)
	}
}

func firsts(lists ...[]string) []string {
	out := make([]string, 0, len(lists))
	for _, l := range lists {
		out = append(out, l[0])
	}
	return out
}
