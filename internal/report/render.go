package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/supply-flow/internal/cli"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Format is an output format for reports.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// Write renders r to w in the given format.
func Write(w io.Writer, r Report, format Format) error {
	switch format {
	case FormatTable, "":
		return writeTable(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatXLSX:
		return writeXLSX(w, r)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeTable(w io.Writer, r Report) error {
	var b strings.Builder
	b.WriteString(cli.FormatTitle(r.Title()))
	b.WriteString("\n")

	summary := make([]string, 0, len(r.Summary()))
	for _, s := range r.Summary() {
		summary = append(summary, cli.FormatStat(s.Label, s.Value))
	}
	b.WriteString(cli.RenderBox(cli.ChartIcon+" Summary", strings.Join(summary, "\n")))
	b.WriteString("\n")

	for _, t := range r.Tables() {
		b.WriteString("\n")
		b.WriteString(cli.BoldStyle.Render(t.Title))
		b.WriteString("\n")
		if len(t.Rows) == 0 {
			b.WriteString(cli.SubtleStyle.Render("No purchases match the current filters."))
			b.WriteString("\n")
			continue
		}
		b.WriteString(cli.RenderTable(t.Header, t.Rows, t.Numeric...))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// writeCSV writes every table as its own block: a title record, the header and the
// rows, with an empty record between blocks.
func writeCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	for i, t := range r.Tables() {
		if i > 0 {
			if err := cw.Write(nil); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{t.Title}); err != nil {
			return err
		}
		if err := cw.Write(t.Header); err != nil {
			return err
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeXLSX writes a summary sheet followed by one sheet per table. Amount columns
// are stored as numbers.
func writeXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#DDEBF7"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetCellValue(summarySheet, "A1", r.Title()); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A1", headerStyle); err != nil {
		return err
	}
	for i, s := range r.Summary() {
		row := []any{s.Label, s.Value}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 24); err != nil {
		return err
	}

	used := map[string]bool{summarySheet: true}
	for _, t := range r.Tables() {
		name := sheetName(t.Title, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, t, headerStyle); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, t Table, headerStyle int) error {
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
		return err
	}

	numeric := numericColumns(t)
	for i, row := range t.Rows {
		values := cellValues(row, numeric)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}

	if len(t.Header) > 0 {
		last, err := excelize.ColumnNumberToName(len(t.Header))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, "A", last, 18); err != nil {
			return err
		}
	}
	return nil
}

// cellValues turns the numeric columns of row into float64 so spreadsheets store
// numbers rather than text open to locale reinterpretation.
func cellValues(row []string, numeric map[int]bool) []any {
	values := make([]any, len(row))
	for c, text := range row {
		values[c] = text
		if numeric[c] {
			if d, err := decimal.NewFromString(text); err == nil {
				values[c] = d.InexactFloat64()
			}
		}
	}
	return values
}

func numericColumns(t Table) map[int]bool {
	numeric := make(map[int]bool, len(t.Numeric))
	for _, c := range t.Numeric {
		numeric[c] = true
	}
	return numeric
}

// sheetName derives a unique worksheet name of at most 31 characters.
func sheetName(title string, used map[string]bool) string {
	base := []rune(title)
	if len(base) > 31 {
		base = base[:31]
	}
	name := string(base)
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		name = string(trimmed) + suffix
	}
	used[name] = true
	return name
}
