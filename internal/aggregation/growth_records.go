package aggregation

import (
	coreagg "github.com/aevon-lab/mediadash/internal/core/aggregation"
	"github.com/aevon-lab/mediadash/internal/core/storage"
)

// GrowthRecords flattens a growth series into history rows tagged with series.
func GrowthRecords(series string, s coreagg.GrowthSeries) []storage.GrowthRecord {
	out := make([]storage.GrowthRecord, 0, s.Len())
	for _, b := range s.Buckets {
		out = append(out, storage.GrowthRecord{
			Series:            series,
			Granularity:       string(s.Granularity),
			Label:             b.Bucket.Label,
			BucketStart:       b.Bucket.Start,
			Count:             b.Count,
			Measure:           b.Measure,
			CumulativeCount:   b.CumulativeCount,
			CumulativeMeasure: b.CumulativeMeasure,
			DistinctEntities:  b.DistinctEntities,
		})
	}
	return out
}
