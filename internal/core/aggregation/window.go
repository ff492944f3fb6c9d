package aggregation

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the calendar unit a timestamp is truncated to.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity parses a granularity name. Accepts "day"/"month"/"year"
// and the short forms "d"/"m"/"y".
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", fmt.Errorf("granularity must not be empty")
	case "d", "day", "daily":
		return GranularityDay, nil
	case "m", "month", "monthly":
		return GranularityMonth, nil
	case "y", "year", "yearly":
		return GranularityYear, nil
	}
	return "", fmt.Errorf("invalid granularity %q (must be day, month or year)", s)
}

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	return g == GranularityDay || g == GranularityMonth || g == GranularityYear
}

// Coarsest reports whether g is the year level, the only level that tracks
// distinct entities to date.
func (g Granularity) Coarsest() bool { return g == GranularityYear }

// Bucket is a half-open interval [Start, End) identified by Label.
type Bucket struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// BucketFor truncates t (in UTC) to the start of its granularity period.
// Example: BucketFor(2022-01-15T10:35Z, month) -> [2022-01-01, 2022-02-01) "2022-01"
func BucketFor(t time.Time, g Granularity) Bucket {
	t = t.UTC()
	switch g {
	case GranularityDay:
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return Bucket{Start: start, End: start.AddDate(0, 0, 1), Label: start.Format("2006-01-02")}
	case GranularityYear:
		start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Bucket{Start: start, End: start.AddDate(1, 0, 0), Label: start.Format("2006")}
	default:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Bucket{Start: start, End: start.AddDate(0, 1, 0), Label: start.Format("2006-01")}
	}
}
