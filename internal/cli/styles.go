// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	PrimaryColor = lipgloss.Color("#4F9DDE")
	AccentColor  = lipgloss.Color("#F4A259")
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	SubtleColor  = lipgloss.Color("#666666")
	BorderColor  = lipgloss.Color("#333333")
)

var (
	// TitleStyle is used for report and section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// TotalStyle highlights monetary totals in summaries.
	TotalStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// HeaderStyle and TableCellStyle lay out RenderTable columns.
	HeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).PaddingRight(2)
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)

	// BoxStyle frames the summary block of a report.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	CartIcon    = "🛒"
	ChartIcon   = "📊"
	BoxIcon     = "📦"
)

// FormatStat renders one "label: value" summary line.
func FormatStat(label, value string) string {
	return BoldStyle.Render(label+":") + " " + TotalStyle.Render(value)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a title with the cart icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(CartIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// RenderTable lays out rows under header as aligned columns. Columns listed in
// numeric are right aligned.
func RenderTable(header []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}

	widths := make([]int, len(header))
	for c, h := range header {
		widths[c] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for c := 0; c < len(row) && c < len(widths); c++ {
			if w := lipgloss.Width(row[c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	cell := func(c int, text string, style lipgloss.Style) string {
		if right[c] {
			style = style.Align(lipgloss.Right)
		}
		return style.Width(widths[c] + 2).Render(text)
	}

	headerCells := make([]string, len(header))
	for c, h := range header {
		headerCells[c] = cell(c, h, HeaderStyle)
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, headerCells...))
	for _, row := range rows {
		cells := make([]string, len(header))
		for c := range header {
			text := ""
			if c < len(row) {
				text = row[c]
			}
			cells[c] = cell(c, text, TableCellStyle)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
