package importer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/phillip-england/recruitdesk/internal/records"
)

const exportSheet = "Sheet1"

// WriteTemplate writes an empty workbook whose header row matches what the
// importer expects for the collection.
func WriteTemplate(w io.Writer, c records.Collection) error {
	headers, err := TemplateHeaders(c)
	if err != nil {
		return err
	}
	return writeWorkbook(w, headers, nil)
}

func WriteCandidates(w io.Writer, items []records.Candidate) error {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{id(c.ID), c.Name, c.Email, c.Phone, c.Client, c.JobTitle, c.Vendor, c.CreatedAt})
	}
	return writeWorkbook(w, []string{"ID", "Name", "Email", "Phone", "Client", "Job Title", "Vendor", "Created At"}, rows)
}

func WriteClients(w io.Writer, items []records.Client) error {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{id(c.ID), c.Name, c.Contact, c.Company, c.Category, c.Date, c.Timezone})
	}
	return writeWorkbook(w, []string{"ID", "Name", "Contact Person", "Company", "Job Category", "Date", "Time Zone"}, rows)
}

func WriteJobs(w io.Writer, items []records.Job) error {
	rows := make([][]string, 0, len(items))
	for _, j := range items {
		rows = append(rows, []string{id(j.ID), j.Title, j.Category, j.Posted, string(j.Status)})
	}
	return writeWorkbook(w, []string{"ID", "Title", "Category", "Posted", "Status"}, rows)
}

func WriteCallLogs(w io.Writer, items []records.CallLog) error {
	rows := make([][]string, 0, len(items))
	for _, l := range items {
		rows = append(rows, []string{id(l.ID), l.Candidate, l.Phone, string(l.Type), l.Duration, string(l.Status), l.Date, l.Notes})
	}
	return writeWorkbook(w, []string{"ID", "Candidate", "Phone", "Type", "Duration", "Status", "Date", "Notes"}, rows)
}

func writeWorkbook(w io.Writer, headers []string, rows [][]string) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := setRow(file, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(file, i+2, row); err != nil {
			return err
		}
	}
	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(file *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := file.SetSheetRow(exportSheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
