package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/phillip-england/recruitdesk/internal/clock"
	"github.com/phillip-england/recruitdesk/internal/records"
	"github.com/phillip-england/recruitdesk/internal/store"
)

var importTime = time.Date(2026, time.January, 13, 8, 32, 0, 0, time.UTC)

func workbook(t *testing.T, rows ...[]string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := writeWorkbook(&buf, rows[0], rows[1:]); err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	return &buf
}

func newImporter() (*Importer, *store.Store) {
	clk := clock.Fake(importTime)
	st := store.New(clk, nil)
	return New(st, clk, time.UTC, nil), st
}

func TestImportCandidatesPrependsInFileOrder(t *testing.T) {
	im, st := newImporter()
	st.SetCandidates(store.DefaultCandidates())

	file := workbook(t,
		[]string{"Name", "Email", "Phone", "Client", "Job Title", "Vendor"},
		[]string{"Ada", "ada@example.com", "+1555", "Aurora 64", "Driver", "Acme"},
		[]string{"Grace", "", "+1556", "Aurora 64", "Driver", "Acme"},
		[]string{"Linus", "linus@example.com", "+1557", "MikNik Inc", "Lead", "Acme"},
	)

	result, err := im.Import(records.Candidates, "people.xlsx", file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Count != 3 || result.Collection != records.Candidates {
		t.Fatalf("unexpected result %+v", result)
	}

	got := st.Candidates()
	if len(got) != 9 {
		t.Fatalf("expected 9 candidates, got %d", len(got))
	}
	if got[0].Name != "Ada" || got[1].Name != "Grace" || got[2].Name != "Linus" || got[3].Name != "Ronak Shah" {
		t.Fatalf("unexpected order: %q %q %q %q", got[0].Name, got[1].Name, got[2].Name, got[3].Name)
	}
	if got[1].Email != records.Placeholder {
		t.Fatalf("expected blank email to become %q, got %q", records.Placeholder, got[1].Email)
	}
	if got[0].ID == got[1].ID || got[1].ID == got[2].ID {
		t.Fatalf("expected unique ids, got %d %d %d", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].CreatedAt != "13th Jan 2026 at 08:32 AM UTC" {
		t.Fatalf("unexpected createdAt %q", got[0].CreatedAt)
	}
}

func TestImportLegacyXLSWorkbook(t *testing.T) {
	im, st := newImporter()
	file, err := os.Open(filepath.Join("testdata", "candidates.xls"))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer file.Close()

	result, err := im.Import(records.Candidates, "candidates.xls", file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("expected 2 candidates, got %d", result.Count)
	}

	got := st.Candidates()
	first, second := got[0], got[1]
	if first.Name != "Ada Lovelace" || first.Email != "ada@example.com" || first.Client != "Aurora 64" || first.JobTitle != "Driver" {
		t.Fatalf("unexpected first candidate %+v", first)
	}
	if first.Phone != "5550101" {
		t.Fatalf("expected numeric phone cell as text, got %q", first.Phone)
	}
	if second.Name != "Zoë Quinn" || second.Phone != "+1 555 0102" || second.Vendor != "Acme" {
		t.Fatalf("unexpected second candidate %+v", second)
	}
	if second.Email != records.Placeholder {
		t.Fatalf("expected missing cell to become %q, got %q", records.Placeholder, second.Email)
	}
}

func TestReadRowsXLSMatchesSheetLayout(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "candidates.xls"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	rows, err := ReadRows(bytes.NewReader(data), "candidates.XLS")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	header := strings.Join(rows[0], "|")
	if header != "Name|Email|Phone|Client|Job Title|Vendor" {
		t.Fatalf("unexpected header %q", header)
	}
	if rows[2][1] != "" {
		t.Fatalf("expected empty email cell, got %q", rows[2][1])
	}
}

func TestImportAcceptsHeaderVariants(t *testing.T) {
	im, st := newImporter()
	file := workbook(t,
		[]string{"candidate  name", "EMAIL ADDRESS", "Mobile"},
		[]string{"Ada", "ada@example.com", "+1555"},
	)
	if _, err := im.Import(records.Candidates, "people.XLSX", file); err != nil {
		t.Fatalf("import: %v", err)
	}
	got := st.Candidates()[0]
	if got.Name != "Ada" || got.Email != "ada@example.com" || got.Phone != "+1555" {
		t.Fatalf("unexpected candidate %+v", got)
	}
	if got.Vendor != records.Placeholder {
		t.Fatalf("expected missing column to become placeholder, got %q", got.Vendor)
	}
}

func TestImportHeaderOnlyLeavesStoreUnchanged(t *testing.T) {
	im, st := newImporter()
	st.SetClients(store.DefaultClients())
	file := workbook(t, []string{"Name", "Company"})

	_, err := im.Import(records.Clients, "clients.xlsx", file)
	if !errors.Is(err, ErrEmptySheet) {
		t.Fatalf("expected ErrEmptySheet, got %v", err)
	}
	if n := len(st.Clients()); n != 5 {
		t.Fatalf("expected store unchanged, got %d clients", n)
	}
}

func TestImportSkipsBlankRows(t *testing.T) {
	im, st := newImporter()
	file := workbook(t,
		[]string{"Title", "Category", "Status"},
		[]string{"", "", ""},
		[]string{"Driver", "FedEx", "Active"},
	)
	result, err := im.Import(records.Jobs, "jobs.xlsx", file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Count != 1 || len(st.Jobs()) != 1 {
		t.Fatalf("expected one job, got %+v", result)
	}
}

func TestImportRejectsUnsupportedExtension(t *testing.T) {
	im, st := newImporter()
	_, err := im.Import(records.Candidates, "people.csv", strings.NewReader("Name\nAda\n"))
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
	if len(st.Candidates()) != 0 {
		t.Fatalf("expected store unchanged")
	}
}

func TestImportRejectsCorruptFile(t *testing.T) {
	im, st := newImporter()
	_, err := im.Import(records.Candidates, "people.xlsx", strings.NewReader("not a workbook"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if len(st.Candidates()) != 0 {
		t.Fatalf("expected store unchanged")
	}
}

func TestImportCallLogsIsRejected(t *testing.T) {
	im, _ := newImporter()
	file := workbook(t, []string{"Candidate"}, []string{"Ada"})
	if _, err := im.Import(records.CallLogs, "calls.xlsx", file); !errors.Is(err, ErrNotImportable) {
		t.Fatalf("expected ErrNotImportable, got %v", err)
	}
}

func TestImportJobsCoercesStatus(t *testing.T) {
	im, st := newImporter()
	file := workbook(t,
		[]string{"Title", "Category", "Status"},
		[]string{"A", "X", "Active"},
		[]string{"B", "X", "active"},
		[]string{"C", "X", "Paused"},
		[]string{"D", "X", ""},
	)
	if _, err := im.Import(records.Jobs, "jobs.xlsx", file); err != nil {
		t.Fatalf("import: %v", err)
	}
	want := []records.JobStatus{records.JobActive, records.JobInactive, records.JobInactive, records.JobInactive}
	for i, job := range st.Jobs() {
		if job.Status != want[i] {
			t.Fatalf("job %s: expected %s, got %s", job.Title, want[i], job.Status)
		}
		if job.Posted != "13/01/2026 08:32:00" {
			t.Fatalf("unexpected posted %q", job.Posted)
		}
	}
}

func TestImportClientsMapsVariants(t *testing.T) {
	im, st := newImporter()
	file := workbook(t,
		[]string{"Name", "Contact", "Company", "Category", "Timezone"},
		[]string{"Aurora", "Ancile", "Aurora 64", "FedEx", "Central Daylight"},
	)
	if _, err := im.Import(records.Clients, "clients.xlsx", file); err != nil {
		t.Fatalf("import: %v", err)
	}
	got := st.Clients()[0]
	if got.Contact != "Ancile" || got.Category != "FedEx" || got.Timezone != "Central Daylight" {
		t.Fatalf("unexpected client %+v", got)
	}
}

func TestConsecutiveImportsNeverReuseIDs(t *testing.T) {
	im, st := newImporter()
	for i := 0; i < 2; i++ {
		file := workbook(t, []string{"Name"}, []string{"Ada"}, []string{"Grace"})
		if _, err := im.Import(records.Candidates, "people.xlsx", file); err != nil {
			t.Fatalf("import %d: %v", i, err)
		}
	}
	seen := map[int64]bool{}
	for _, c := range st.Candidates() {
		if seen[c.ID] {
			t.Fatalf("duplicate id %d", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestParseDoesNotMutateStore(t *testing.T) {
	im, st := newImporter()
	file := workbook(t, []string{"Name"}, []string{"Ada"})
	batch, err := im.Parse(records.Candidates, "people.xlsx", file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if batch.Len() != 1 || len(st.Candidates()) != 0 {
		t.Fatalf("expected parsed batch only, got %d parsed and %d stored", batch.Len(), len(st.Candidates()))
	}
}

func TestWriteTemplateRoundTripsThroughReader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf, records.Clients); err != nil {
		t.Fatalf("template: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open template: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 || strings.Join(rows[0], ",") != "Name,Contact Person,Company,Job Category,Time Zone" {
		t.Fatalf("unexpected template rows %v", rows)
	}
}

func TestRowsToRecordsKeepsFirstDuplicateHeader(t *testing.T) {
	rows := RowsToRecords([][]string{{"Name", "name"}, {"first", "second"}})
	if len(rows) != 1 || rows[0]["name"] != "first" {
		t.Fatalf("unexpected rows %v", rows)
	}
}
