package recruitcli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/pflag"

	"github.com/phillip-england/recruitdesk/internal/clock"
	"github.com/phillip-england/recruitdesk/internal/importer"
	"github.com/phillip-england/recruitdesk/internal/records"
	"github.com/phillip-england/recruitdesk/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	summary     = lipgloss.NewStyle().Faint(true)
)

func entityFlag(fs *pflag.FlagSet) *string {
	return fs.StringP("entity", "e", "", "candidates, clients or jobs")
}

func parseEntity(raw string) (records.Collection, error) {
	c, ok := records.ParseCollection(raw)
	if !ok || !importer.Importable(c) {
		return "", fmt.Errorf("%w: --entity must be candidates, clients or jobs", ErrUsage)
	}
	return c, nil
}

// runPreview parses a spreadsheet exactly as an upload would and prints the
// mapped records. Nothing is stored.
func runPreview(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("preview", pflag.ContinueOnError)
	entity := entityFlag(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	collection, err := parseEntity(*entity)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: preview needs exactly one file", ErrUsage)
	}
	path := fs.Arg(0)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	clk := clock.Real()
	im := importer.New(store.New(clk, nil), clk, time.Local, nil)
	batch, err := im.Parse(collection, path, file)
	if err != nil {
		return err
	}

	headers, rows := previewRows(batch)
	fmt.Fprintln(stdout, renderTable(headers, rows))
	fmt.Fprintln(stdout, summary.Render(fmt.Sprintf("%d %s parsed from %s", batch.Len(), collection, path)))
	return nil
}

func previewRows(batch importer.Batch) ([]string, [][]string) {
	var rows [][]string
	switch batch.Collection {
	case records.Candidates:
		for _, c := range batch.Candidates {
			rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Email, c.Phone, c.Client, c.JobTitle, c.Vendor})
		}
		return []string{"ID", "Name", "Email", "Phone", "Client", "Job Title", "Vendor"}, rows
	case records.Clients:
		for _, c := range batch.Clients {
			rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Contact, c.Company, c.Category, c.Timezone})
		}
		return []string{"ID", "Name", "Contact Person", "Company", "Job Category", "Time Zone"}, rows
	default:
		for _, j := range batch.Jobs {
			rows = append(rows, []string{strconv.FormatInt(j.ID, 10), j.Title, j.Category, string(j.Status)})
		}
		return []string{"ID", "Title", "Category", "Status"}, rows
	}
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

func runTemplate(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("template", pflag.ContinueOnError)
	entity := entityFlag(fs)
	out := fs.StringP("out", "o", "", "output file (default <entity>-template.xlsx)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	collection, err := parseEntity(*entity)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = string(collection) + "-template.xlsx"
	}
	if err := ensureParentDirs(*out); err != nil {
		return err
	}

	file, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	if err := importer.WriteTemplate(file, collection); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return nil
}
