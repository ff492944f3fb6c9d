package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrRunNotFound is returned when no snapshot run matches a lookup.
var ErrRunNotFound = errors.New("snapshot run not found")

// BackupStore persists flat tables so a later run can fall back to them when
// the live API is unreachable.
type BackupStore interface {
	// WriteTable overwrites the named backup with t.
	WriteTable(ctx context.Context, name string, t *table.Table) error

	// ReadTable loads the named backup. Returns an error wrapping
	// errors.ErrNoBackup when the backup does not exist.
	ReadTable(ctx context.Context, name string) (*table.Table, error)
}

// Run is one recorded batch run: the snapshot document plus the growth
// series computed from it.
type Run struct {
	ID          uuid.UUID
	Provider    string
	Username    string
	Origin      string
	GeneratedAt time.Time
	Document    json.RawMessage
	Growth      []GrowthRecord
}

// GrowthRecord is one bucket of a named growth series belonging to a run.
type GrowthRecord struct {
	Series            string
	Granularity       string
	Label             string
	BucketStart       time.Time
	Count             int64
	Measure           decimal.Decimal
	CumulativeCount   int64
	CumulativeMeasure decimal.Decimal
	DistinctEntities  *int
}

// SnapshotStore keeps the history of runs.
type SnapshotStore interface {
	SaveRun(ctx context.Context, run *Run) error

	// LatestRun returns the most recent run for provider and username,
	// including its growth records. Returns ErrRunNotFound when none exist.
	LatestRun(ctx context.Context, provider, username string) (*Run, error)
}
