package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/supply-flow/internal/common"
)

// Client reads purchase rows from and writes report tabs to Google Sheets.
type Client struct {
	api    ValuesAPI
	logger *slog.Logger
	config Config
}

// NewClient authenticates against the Sheets API and returns a client.
func NewClient(ctx context.Context, config Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewClientWithAPI(&serviceAPI{service: service}, config, logger), nil
}

// NewClientWithAPI wires a client to an existing ValuesAPI.
func NewClientWithAPI(api ValuesAPI, config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{api: api, config: config, logger: logger}
}

func (c *Client) retryOptions(operation string) common.RetryOptions {
	opts := common.DefaultRetryOptions()
	opts.Logger = c.logger
	opts.Operation = operation
	opts.MaxAttempts = c.config.RetryAttempts
	opts.InitialDelay = c.config.RetryDelay
	return opts
}

// ReadRows returns the configured records range as text rows, header first.
func (c *Client) ReadRows(ctx context.Context) ([][]string, error) {
	if c.config.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: sheets.spreadsheet_id", common.ErrMissingConfig)
	}

	var rows [][]string
	err := common.WithRetry(ctx, func() error {
		var getErr error
		rows, getErr = c.api.Get(ctx, c.config.SpreadsheetID, c.config.RecordsRange)
		return getErr
	}, c.retryOptions("read records"))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.config.RecordsRange, err)
	}

	c.logger.Debug("read spreadsheet rows",
		"spreadsheet_id", c.config.SpreadsheetID,
		"range", c.config.RecordsRange,
		"rows", len(rows))

	return rows, nil
}
