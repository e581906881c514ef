package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/supply-flow/internal/common"
	"github.com/Veraticus/supply-flow/internal/config"
	"github.com/Veraticus/supply-flow/internal/sheets"
	"github.com/Veraticus/supply-flow/internal/source"
	"github.com/Veraticus/supply-flow/internal/storage"
)

// Source kinds accepted by --source.
const (
	sourceSheets = "sheets"
	sourceXLSX   = "xlsx"
)

// flagDateLayout is the format of --from and --to.
const flagDateLayout = "2006-01-02"

// initStorage opens the snapshot cache and applies pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath(), storage.WithLogger(common.Component("storage")))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newSheetsClient builds a Sheets client from configuration.
func newSheetsClient(ctx context.Context) (*sheets.Client, error) {
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		return nil, common.NewUserError("Google Sheets is not configured; run 'supply auth sheets' or set sheets.service_account_path", err)
	}
	return sheets.NewClient(ctx, *cfg, common.Component("sheets"))
}

// sourceOptions selects where records are read from.
type sourceOptions struct {
	kind  string
	file  string
	sheet string
}

// newSource builds the record source described by opts.
func newSource(ctx context.Context, opts sourceOptions) (source.Source, error) {
	parsing, err := config.LoadParsing()
	if err != nil {
		return nil, err
	}
	normalizer := source.Normalizer{
		Numbers: parsing.Numbers,
		Dates:   parsing.Dates,
		Now:     time.Now,
		Logger:  common.Component("source"),
	}

	switch opts.kind {
	case "", sourceSheets:
		client, err := newSheetsClient(ctx)
		if err != nil {
			return nil, err
		}
		return source.NewSheetsSource(client, normalizer), nil
	case sourceXLSX:
		if opts.file == "" {
			return nil, common.NewUserError("--file is required when reading from a workbook", common.ErrMissingConfig)
		}
		return source.NewXLSXSource(config.ExpandPath(opts.file), opts.sheet, normalizer), nil
	default:
		return nil, fmt.Errorf("unknown source %q (expected %s or %s)", opts.kind, sourceSheets, sourceXLSX)
	}
}

// parseDay parses a --from/--to value in the local time zone. Empty yields nil.
func parseDay(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(flagDateLayout, value, time.Local)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value), err)
	}
	return &t, nil
}
