package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ExpectedSchemaVersion is the schema version Migrate must reach.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial snapshot schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS snapshots (
					id TEXT PRIMARY KEY,
					source TEXT NOT NULL,
					taken_at TEXT NOT NULL,
					record_count INTEGER NOT NULL
				)`,
				`CREATE INDEX idx_snapshots_taken_at ON snapshots(taken_at)`,

				`CREATE TABLE IF NOT EXISTS records (
					snapshot_id TEXT NOT NULL,
					id INTEGER NOT NULL,
					date TEXT NOT NULL,
					company TEXT NOT NULL,
					supplier TEXT NOT NULL,
					item_description TEXT NOT NULL,
					account_plan TEXT NOT NULL,
					category TEXT NOT NULL,
					unit TEXT NOT NULL,
					quantity TEXT NOT NULL,
					unit_value TEXT NOT NULL,
					total_value TEXT NOT NULL,
					invoice_number TEXT NOT NULL DEFAULT '',
					material_type TEXT NOT NULL DEFAULT '',
					warehouse TEXT NOT NULL DEFAULT '',
					PRIMARY KEY (snapshot_id, id),
					FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_records_snapshot_date ON records(snapshot_id, date)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the PRAGMA user_version of the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies every migration newer than the current schema version, each in
// its own transaction.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return err
		}
		s.logger.Debug("Applied migration", "version", m.Version, "description", m.Description)
	}

	final, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, final)
	}

	return nil
}

func (s *SQLiteStorage) apply(ctx context.Context, m Migration) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = m.Up(tx); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
	}
	// PRAGMA does not accept bind parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", m.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}
