package postgres

import (
	"database/sql"
	"fmt"

	"github.com/aevon-lab/mediadash/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRunRow scans the run columns of queryLatestRun.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanRunRow(row scanner) (*storage.Run, error) {
	var run storage.Run
	var document []byte

	err := row.Scan(
		&run.ID,
		&run.Provider,
		&run.Username,
		&run.Origin,
		&run.GeneratedAt,
		&document,
	)
	if err != nil {
		return nil, err
	}

	run.GeneratedAt = run.GeneratedAt.UTC()
	run.Document = append([]byte(nil), document...)
	return &run, nil
}

func scanGrowthRow(row scanner) (storage.GrowthRecord, error) {
	var rec storage.GrowthRecord
	var distinct sql.NullInt64

	err := row.Scan(
		&rec.Series,
		&rec.Granularity,
		&rec.Label,
		&rec.BucketStart,
		&rec.Count,
		&rec.Measure,
		&rec.CumulativeCount,
		&rec.CumulativeMeasure,
		&distinct,
	)
	if err != nil {
		return storage.GrowthRecord{}, fmt.Errorf("failed to scan growth bucket: %w", err)
	}

	rec.BucketStart = rec.BucketStart.UTC()
	if distinct.Valid {
		n := int(distinct.Int64)
		rec.DistinctEntities = &n
	}
	return rec, nil
}

// nullableInt maps a nil pointer to SQL NULL.
func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return int64(*p)
}
