package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/supply-flow/internal/common"
	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/service"
	"github.com/shopspring/decimal"
)

// recordDateLayout stores record dates at day granularity.
const recordDateLayout = "2006-01-02"

func saveRecordsTx(ctx context.Context, tx *sql.Tx, snapshotID string, records []model.PurchaseRecord, progress service.Progress) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			snapshot_id, id, date, company, supplier, item_description, account_plan,
			category, unit, quantity, unit_value, total_value, invoice_number,
			material_type, warehouse
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			snapshotID, r.ID, r.Date.Format(recordDateLayout), r.Company, r.Supplier,
			r.ItemDescription, r.AccountPlan, r.Category, r.Unit, r.Quantity,
			r.UnitValue.String(), r.TotalValue.String(), r.InvoiceNumber,
			r.MaterialType, r.Warehouse,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", r.ID, err)
		}
		if progress != nil {
			progress(i + 1)
		}
	}
	return nil
}

// GetRecords returns the records of a snapshot in source order, restricted to the
// query's date bounds.
func (s *SQLiteStorage) GetRecords(ctx context.Context, snapshotID string, query service.RecordQuery) ([]model.PurchaseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(snapshotID, "snapshotID"); err != nil {
		return nil, err
	}
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM snapshots WHERE id = ?)`, snapshotID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up snapshot: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotID, common.ErrNotFound)
	}

	sqlQuery := `
		SELECT id, date, company, supplier, item_description, account_plan, category,
			unit, quantity, unit_value, total_value, invoice_number, material_type, warehouse
		FROM records
		WHERE snapshot_id = ?
	`
	args := []any{snapshotID}
	if query.Start != nil {
		sqlQuery += " AND date >= ?"
		args = append(args, query.Start.Format(recordDateLayout))
	}
	if query.End != nil {
		sqlQuery += " AND date <= ?"
		args = append(args, query.End.Format(recordDateLayout))
	}
	sqlQuery += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []model.PurchaseRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

func scanRecord(row rowScanner) (model.PurchaseRecord, error) {
	var (
		r                     model.PurchaseRecord
		date, unitVal, totVal string
	)
	err := row.Scan(&r.ID, &date, &r.Company, &r.Supplier, &r.ItemDescription, &r.AccountPlan,
		&r.Category, &r.Unit, &r.Quantity, &unitVal, &totVal, &r.InvoiceNumber,
		&r.MaterialType, &r.Warehouse)
	if err != nil {
		return r, fmt.Errorf("failed to scan record: %w", err)
	}

	if r.Date, err = time.ParseInLocation(recordDateLayout, date, time.Local); err != nil {
		return r, fmt.Errorf("record %d has invalid date %q: %w", r.ID, date, err)
	}
	if r.UnitValue, err = decimal.NewFromString(unitVal); err != nil {
		return r, fmt.Errorf("record %d has invalid unit value %q: %w", r.ID, unitVal, err)
	}
	if r.TotalValue, err = decimal.NewFromString(totVal); err != nil {
		return r, fmt.Errorf("record %d has invalid total value %q: %w", r.ID, totVal, err)
	}
	return r, nil
}
