package aggregation

import (
	"github.com/aevon-lab/mediadash/internal/core/names"
	"github.com/shopspring/decimal"
)

// Supported merge operators for entity consolidation.
const (
	OpSum      = "sum"
	OpMax      = "max"
	OpAverage  = "average"
	OpLeftWins = "left-wins"
)

// BucketSummary is one period of a growth series.
// DistinctEntities is only populated at the year granularity.
type BucketSummary struct {
	Bucket            Bucket          `json:"bucket"`
	Count             int64           `json:"count"`
	Measure           decimal.Decimal `json:"measure"`
	CumulativeCount   int64           `json:"cumulative_count"`
	CumulativeMeasure decimal.Decimal `json:"cumulative_measure"`
	DistinctEntities  *int            `json:"distinct_entities,omitempty"`
}

// GrowthSeries is a chronologically ordered list of non-empty buckets.
type GrowthSeries struct {
	Granularity Granularity     `json:"granularity"`
	Buckets     []BucketSummary `json:"buckets"`
}

// Len returns the number of buckets.
func (s GrowthSeries) Len() int { return len(s.Buckets) }

// Last returns the final bucket, which carries the overall cumulative totals.
func (s GrowthSeries) Last() (BucketSummary, bool) {
	if len(s.Buckets) == 0 {
		return BucketSummary{}, false
	}
	return s.Buckets[len(s.Buckets)-1], true
}

// GrowthOptions selects the columns a series is computed from.
type GrowthOptions struct {
	TimeField    string
	MeasureField string // optional; empty means count only
	EntityField  string // optional; comma-joined names, used at year granularity
	Granularity  Granularity
	Names        *names.Normalizer
}

// ConsolidationPolicy maps a column name to its merge operator. Columns
// without an entry keep the primary row's value.
type ConsolidationPolicy map[string]string

// ConsolidationRule merges the row whose KeyColumn equals SecondaryID into the
// row whose KeyColumn equals PrimaryID. IDs are compared on their text form.
type ConsolidationRule struct {
	Name        string
	KeyColumn   string
	PrimaryID   string
	SecondaryID string
	Policy      ConsolidationPolicy
	Fingerprint string // SHA-256 of the rule definition
}
