package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/supply-flow/internal/common"
)

// Tab is one worksheet of an exported report.
type Tab struct {
	Title string
	Rows  [][]any
}

// WriteTabs replaces the content of each tab in the report spreadsheet, creating
// missing tabs first.
func (c *Client) WriteTabs(ctx context.Context, tabs []Tab) error {
	spreadsheetID := c.config.ReportSpreadsheetID
	if spreadsheetID == "" {
		return fmt.Errorf("%w: sheets.report_spreadsheet_id", common.ErrMissingConfig)
	}

	c.logger.Info("starting report export",
		"spreadsheet_id", spreadsheetID,
		"tabs", len(tabs))

	titles := make([]string, len(tabs))
	for i, tab := range tabs {
		titles[i] = tab.Title
	}

	if err := common.WithRetry(ctx, func() error {
		return c.api.EnsureTabs(ctx, spreadsheetID, titles)
	}, c.retryOptions("create tabs")); err != nil {
		return fmt.Errorf("failed to prepare tabs: %w", err)
	}

	for _, tab := range tabs {
		sheetRange := quoteTitle(tab.Title)
		if err := common.WithRetry(ctx, func() error {
			return c.api.Clear(ctx, spreadsheetID, sheetRange)
		}, c.retryOptions("clear "+tab.Title)); err != nil {
			return fmt.Errorf("failed to clear tab %s: %w", tab.Title, err)
		}

		if len(tab.Rows) == 0 {
			continue
		}

		if err := common.WithRetry(ctx, func() error {
			return c.api.Update(ctx, spreadsheetID, sheetRange+"!A1", tab.Rows)
		}, c.retryOptions("write "+tab.Title)); err != nil {
			return fmt.Errorf("failed to write tab %s: %w", tab.Title, err)
		}

		c.logger.Debug("wrote tab", "tab", tab.Title, "rows", len(tab.Rows))
	}

	c.logger.Info("report export completed", "spreadsheet_id", spreadsheetID)
	return nil
}

// quoteTitle quotes a tab title for use in A1 notation.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
