package report

import (
	"context"

	"github.com/Veraticus/supply-flow/internal/sheets"
)

// TabWriter replaces worksheet tabs in a spreadsheet.
type TabWriter interface {
	WriteTabs(ctx context.Context, tabs []sheets.Tab) error
}

// Export writes the report into spreadsheet tabs named after the report and its
// tables, summary first.
func Export(ctx context.Context, w TabWriter, r Report) error {
	return w.WriteTabs(ctx, Tabs(r))
}

// Tabs lays the report out as spreadsheet tabs.
func Tabs(r Report) []sheets.Tab {
	summary := sheets.Tab{Title: r.Title()}
	for _, s := range r.Summary() {
		summary.Rows = append(summary.Rows, []any{s.Label, s.Value})
	}

	tabs := []sheets.Tab{summary}
	for _, t := range r.Tables() {
		tab := sheets.Tab{Title: r.Title() + " - " + t.Title}
		tab.Rows = append(tab.Rows, toAny(t.Header))
		numeric := numericColumns(t)
		for _, row := range t.Rows {
			tab.Rows = append(tab.Rows, cellValues(row, numeric))
		}
		tabs = append(tabs, tab)
	}
	return tabs
}

func toAny(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
