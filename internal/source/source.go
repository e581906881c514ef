package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/xuri/excelize/v2"
)

// Source supplies purchase records.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]model.PurchaseRecord, error)
}

// RowReader returns a spreadsheet range as text rows, header first.
type RowReader interface {
	ReadRows(ctx context.Context) ([][]string, error)
}

// SheetsSource reads records from a Google Sheets range.
type SheetsSource struct {
	rows       RowReader
	normalizer Normalizer
}

// NewSheetsSource wraps a row reader such as *sheets.Client.
func NewSheetsSource(rows RowReader, normalizer Normalizer) *SheetsSource {
	return &SheetsSource{rows: rows, normalizer: normalizer}
}

// Name implements Source.
func (s *SheetsSource) Name() string {
	return "sheets"
}

// Records implements Source.
func (s *SheetsSource) Records(ctx context.Context) ([]model.PurchaseRecord, error) {
	rows, err := s.rows.ReadRows(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Records(rows)
}

// XLSXSource reads records from a worksheet of a local workbook.
type XLSXSource struct {
	path       string
	sheet      string
	normalizer Normalizer
}

// NewXLSXSource reads sheet from the workbook at path; an empty sheet selects the first one.
func NewXLSXSource(path, sheet string, normalizer Normalizer) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet, normalizer: normalizer}
}

// Name implements Source.
func (s *XLSXSource) Name() string {
	return "xlsx:" + s.path
}

// Records implements Source.
func (s *XLSXSource) Records(ctx context.Context) ([]model.PurchaseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheet := s.sheet
	if sheet == "" {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", s.path)
		}
		sheet = sheets[0]
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return s.normalizer.Records(rows)
}

// RecordsOrEmpty reads src and degrades any failure to an empty record set, logging
// the error. Reports use it so a broken source renders as an empty period instead of
// aborting.
func RecordsOrEmpty(ctx context.Context, src Source, logger *slog.Logger) []model.PurchaseRecord {
	records, err := src.Records(ctx)
	if err != nil {
		logger.Error("failed to read purchase records", "source", src.Name(), "error", err)
		return []model.PurchaseRecord{}
	}
	return records
}
