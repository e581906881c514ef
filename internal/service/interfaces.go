// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
)

// RecordQuery narrows the records read back from a snapshot. Bounds are inclusive
// calendar days; a nil bound is open.
type RecordQuery struct {
	Start *time.Time
	End   *time.Time
}

// Progress reports how many items of a batch have been handled so far.
type Progress func(done int)

// Storage defines the contract for the local snapshot cache.
type Storage interface {
	// Snapshot operations
	SaveSnapshot(ctx context.Context, source string, records []model.PurchaseRecord, progress Progress) (*model.Snapshot, error)
	LatestSnapshot(ctx context.Context) (*model.Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error)
	PruneSnapshots(ctx context.Context, keep int) (int, error)

	// Record operations
	GetRecords(ctx context.Context, snapshotID string, query RecordQuery) ([]model.PurchaseRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
