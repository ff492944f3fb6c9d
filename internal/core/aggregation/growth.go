package aggregation

import (
	"fmt"
	"sort"
	"time"

	"github.com/aevon-lab/mediadash/internal/core/names"
	"github.com/aevon-lab/mediadash/internal/core/table"
)

type timedRow struct {
	at  time.Time
	row table.Row
}

// BuildGrowthSeries groups rows into calendar buckets and carries running
// totals forward. Rows without a parseable timestamp are skipped. Buckets are
// sparse: a period with no rows has no entry.
func BuildGrowthSeries(rows []table.Row, opts GrowthOptions) (GrowthSeries, error) {
	if opts.TimeField == "" {
		return GrowthSeries{}, fmt.Errorf("growth series: time field must not be empty")
	}
	if !opts.Granularity.Valid() {
		return GrowthSeries{}, fmt.Errorf("growth series: invalid granularity %q", opts.Granularity)
	}

	series := GrowthSeries{Granularity: opts.Granularity, Buckets: []BucketSummary{}}

	timed := make([]timedRow, 0, len(rows))
	byLabel := make(map[string]*BucketSummary)
	for _, r := range rows {
		at, ok := r.Get(opts.TimeField).Timestamp()
		if !ok {
			continue
		}
		timed = append(timed, timedRow{at: at, row: r})

		b := BucketFor(at, opts.Granularity)
		sum, ok := byLabel[b.Label]
		if !ok {
			sum = &BucketSummary{Bucket: b}
			byLabel[b.Label] = sum
		}
		sum.Count++
		sum.Measure = sum.Measure.Add(ExtractDecimal(r, opts.MeasureField))
	}

	for _, s := range byLabel {
		series.Buckets = append(series.Buckets, *s)
	}
	sort.Slice(series.Buckets, func(i, j int) bool {
		return series.Buckets[i].Bucket.Start.Before(series.Buckets[j].Bucket.Start)
	})

	for i := range series.Buckets {
		b := &series.Buckets[i]
		if i == 0 {
			b.CumulativeCount = b.Count
			b.CumulativeMeasure = b.Measure
			continue
		}
		prev := series.Buckets[i-1]
		b.CumulativeCount = prev.CumulativeCount + b.Count
		b.CumulativeMeasure = prev.CumulativeMeasure.Add(b.Measure)
	}

	if opts.Granularity.Coarsest() && opts.EntityField != "" {
		for i := range series.Buckets {
			n := distinctEntitiesBefore(timed, series.Buckets[i].Bucket.End, opts.EntityField, opts.Names)
			series.Buckets[i].DistinctEntities = &n
		}
	}
	return series, nil
}

// distinctEntitiesBefore counts the distinct normalized names across all rows
// timestamped before end.
func distinctEntitiesBefore(rows []timedRow, end time.Time, field string, n *names.Normalizer) int {
	seen := make(map[string]struct{})
	for _, tr := range rows {
		if !tr.at.Before(end) {
			continue
		}
		for _, name := range names.SplitNames(tr.row.Get(field).String()) {
			seen[n.Normalize(name)] = struct{}{}
		}
	}
	return len(seen)
}
