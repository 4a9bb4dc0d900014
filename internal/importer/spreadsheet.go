package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type: upload an .xlsx or .xls spreadsheet")
	ErrEmptySheet      = errors.New("spreadsheet has no data rows")
	ErrParse           = errors.New("unable to parse spreadsheet")
)

// Supported reports whether filename carries one of the accepted
// spreadsheet extensions.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	default:
		return false
	}
}

// ReadRows returns every row of the first worksheet, header included.
func ReadRows(reader io.Reader, filename string) (rows [][]string, err error) {
	if !Supported(filename) {
		return nil, ErrUnsupportedFile
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	// The xls decoder panics on some truncated files.
	defer func() {
		if rec := recover(); rec != nil {
			rows = nil
			err = fmt.Errorf("%w: %v", ErrParse, rec)
		}
	}()

	if strings.ToLower(filepath.Ext(filename)) == ".xls" {
		rows, err = readXLS(data)
	} else {
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return rows, nil
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for col := row.FirstCol(); col < row.LastCol(); col++ {
			cells[col] = row.Col(col)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	return file.GetRows(sheetName)
}

// Row is one data row keyed by normalised header.
type Row map[string]string

// RowsToRecords pairs each data row with the header row. Rows whose cells
// are all blank are dropped.
func RowsToRecords(rows [][]string) []Row {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	out := make([]Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := Row{}
		blank := true
		for i, h := range header {
			key := normalizeHeader(h)
			if key == "" {
				continue
			}
			value := cellValue(raw, i)
			if value != "" {
				blank = false
			}
			if _, seen := row[key]; !seen {
				row[key] = value
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}

// Field returns the first non-blank value among the header variants, or
// fallback when none is present.
func (r Row) Field(fallback string, variants ...string) string {
	for _, v := range variants {
		if value := r[normalizeHeader(v)]; value != "" {
			return value
		}
	}
	return fallback
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(header), " "))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
