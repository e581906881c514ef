package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/supply-flow/internal/common"
	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/service"
	"github.com/google/uuid"
)

// takenAtLayout is fixed width so snapshot timestamps sort lexically.
const takenAtLayout = "2006-01-02 15:04:05.000000000"

// SaveSnapshot stores records as a new snapshot taken now. progress, when set, is
// called after each record is written.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, source string, records []model.PurchaseRecord, progress service.Progress) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(source, "source"); err != nil {
		return nil, err
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	snapshot := &model.Snapshot{
		ID:          uuid.NewString(),
		Source:      source,
		TakenAt:     time.Now().UTC(),
		RecordCount: len(records),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, taken_at, record_count) VALUES (?, ?, ?, ?)`,
		snapshot.ID, snapshot.Source, snapshot.TakenAt.Format(takenAtLayout), snapshot.RecordCount)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err := saveRecordsTx(ctx, tx, snapshot.ID, records, progress); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	s.logger.Debug("Saved snapshot", "id", snapshot.ID, "source", source, "records", len(records))
	return snapshot, nil
}

// LatestSnapshot returns the most recently taken snapshot.
func (s *SQLiteStorage) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, taken_at, record_count
		FROM snapshots
		ORDER BY taken_at DESC, rowid DESC
		LIMIT 1
	`)

	snapshot, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no snapshots stored: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ListSnapshots returns snapshots newest first. A limit of zero lists all of them.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit, "limit"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, source, taken_at, record_count
		FROM snapshots
		ORDER BY taken_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snapshots := []model.Snapshot{}
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// PruneSnapshots deletes all but the newest keep snapshots and returns how many
// were removed.
func (s *SQLiteStorage) PruneSnapshots(ctx context.Context, keep int) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateLimit(keep, "keep"); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const stale = `
		SELECT id FROM snapshots
		ORDER BY taken_at DESC, rowid DESC
		LIMIT -1 OFFSET ?
	`
	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE snapshot_id IN (`+stale+`)`, keep); err != nil {
		return 0, fmt.Errorf("failed to delete snapshot records: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id IN (`+stale+`)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to delete snapshots: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}

	return int(removed), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*model.Snapshot, error) {
	var (
		snapshot model.Snapshot
		takenAt  string
	)
	if err := row.Scan(&snapshot.ID, &snapshot.Source, &takenAt, &snapshot.RecordCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	t, err := time.ParseInLocation(takenAtLayout, takenAt, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot time %q: %w", takenAt, err)
	}
	snapshot.TakenAt = t
	return &snapshot, nil
}
