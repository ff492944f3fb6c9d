package stats

import (
	"fmt"
	"sort"
	"time"

	coreagg "github.com/aevon-lab/mediadash/internal/core/aggregation"
	"github.com/aevon-lab/mediadash/internal/core/names"
	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/aevon-lab/mediadash/internal/providers/spotify"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	// DefaultAnnualHoursFactor extrapolates the long-term top tracks' duration
	// to a year of listening.
	DefaultAnnualHoursFactor = 2.5

	// fallbackRankMs is the per-rank weight given to a top artist that has no
	// recent plays: (n+1-rank) * 3 minutes.
	fallbackRankMs = 180_000

	// Placeholder is shown for a favourite that cannot be determined.
	Placeholder = "—"
)

// SpotifyOptions tunes the Spotify compiler.
type SpotifyOptions struct {
	AnnualHoursFactor float64
	TopN              int
	Names             *names.Normalizer
	Now               func() time.Time
}

func (o SpotifyOptions) withDefaults() SpotifyOptions {
	if o.AnnualHoursFactor <= 0 {
		o.AnnualHoursFactor = DefaultAnnualHoursFactor
	}
	if o.TopN <= 0 {
		o.TopN = 10
	}
	if o.Names == nil {
		o.Names = names.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// SpotifyStats is the headline summary of a run.
type SpotifyStats struct {
	GeneratedAt      time.Time `json:"generated_at"`
	TotalHours       float64   `json:"total_hours"`
	TotalRecentPlays int       `json:"total_recent_plays"`
	NSongs           int       `json:"n_songs"`
	NArtists         int       `json:"n_artists"`
	TopArtistLong    string    `json:"top_artist_long"`
	TopTrackLong     string    `json:"top_track_long"`
	LastPlayedAt     *string   `json:"last_played_at"`
	LastPlayedTrack  string    `json:"last_played_track,omitempty"`
}

// LibraryDiversity describes the breadth of the saved library.
type LibraryDiversity struct {
	UniqueArtists      int     `json:"unique_artists"`
	UniqueAlbums       int     `json:"unique_albums"`
	AvgDurationMin     float64 `json:"avg_duration_min"`
	TotalDurationHours float64 `json:"total_duration_hours"`
}

// ArtistCount is how many saved tracks credit an artist.
type ArtistCount struct {
	Artist           string `json:"artist"`
	SavedTracksCount int    `json:"saved_tracks_count"`
}

// GrowthPoint is one month of the library growth timeline.
type GrowthPoint struct {
	YearMonth        string  `json:"year_month"`
	TracksAdded      int64   `json:"tracks_added"`
	TotalDurationMs  int64   `json:"total_duration_ms"`
	HoursAdded       float64 `json:"hours_added"`
	CumulativeTracks int64   `json:"cumulative_tracks"`
	CumulativeHours  float64 `json:"cumulative_hours"`
}

// ArtistShare is one slice of the top-artists pie.
type ArtistShare struct {
	Artist      string  `json:"artist"`
	Rank        int     `json:"rank"`
	Hours       float64 `json:"hours"`
	Weight      int64   `json:"weight"`
	Pct         float64 `json:"pct"`
	LegendLabel string  `json:"legend_label"`
	Estimated   bool    `json:"estimated"`
}

// LibraryStats summarizes the saved library.
type LibraryStats struct {
	TotalSavedTracks int                  `json:"total_saved_tracks"`
	Diversity        LibraryDiversity     `json:"diversity_metrics"`
	TopSavedArtists  []ArtistCount        `json:"top_saved_artists"`
	GrowthTimeline   []GrowthPoint        `json:"library_growth_timeline"`
	YearlyGrowth     coreagg.GrowthSeries `json:"yearly_growth"`
	MonthlyGrowth    coreagg.GrowthSeries `json:"-"`
}

// SpotifyReport is everything derived from a Library.
type SpotifyReport struct {
	Stats        SpotifyStats  `json:"stats"`
	Library      LibraryStats  `json:"library_stats"`
	ArtistShares []ArtistShare `json:"artist_shares"`
}

// CompileSpotify derives every statistic from a Library. It never fails on
// empty tables; an empty library yields zero counts and placeholders.
func CompileSpotify(lib spotify.Library, opts SpotifyOptions) (SpotifyReport, error) {
	opts = opts.withDefaults()

	report := SpotifyReport{
		Stats:        compileHeadline(lib, opts),
		ArtistShares: ArtistShares(lib.Artists(spotify.LongTerm).Head(opts.TopN), lib.Recent, opts.Names),
	}

	library, err := compileLibrary(lib.Saved, opts)
	if err != nil {
		return SpotifyReport{}, err
	}
	report.Library = library
	return report, nil
}

// AnnualHours extrapolates a year of listening from the summed duration of
// the long-term top tracks, rounded to one decimal.
func AnnualHours(topTracks *table.Table, factor float64) float64 {
	var total decimal.Decimal
	for _, r := range topTracks.Rows() {
		total = total.Add(coreagg.ExtractDecimal(r, "duration_ms"))
	}
	return round(coreagg.HoursFromMillis(total.Mul(decimal.NewFromFloat(factor))), 1)
}

func compileHeadline(lib spotify.Library, opts SpotifyOptions) SpotifyStats {
	tracks := lib.Tracks(spotify.LongTerm)
	artists := lib.Artists(spotify.LongTerm)

	s := SpotifyStats{
		GeneratedAt:      opts.Now().UTC(),
		TotalHours:       AnnualHours(tracks, opts.AnnualHoursFactor),
		TotalRecentPlays: lib.Recent.Len(),
		NSongs:           tracks.Len(),
		NArtists:         artists.Len(),
		TopArtistLong:    Placeholder,
		TopTrackLong:     Placeholder,
	}
	if tracks.Empty() && lib.BackupHours != nil {
		s.TotalHours = *lib.BackupHours
	}
	if !artists.Empty() {
		s.TopArtistLong = artists.Row(0).Get("name").Text()
	}
	if !tracks.Empty() {
		top := tracks.Row(0)
		s.TopTrackLong = fmt.Sprintf("%s — %s", top.Get("track").Text(), top.Get("artists").Text())
	}
	if !lib.Recent.Empty() {
		last := lib.Recent.Row(0)
		if at := last.Get("played_at"); !at.IsNull() {
			v := at.String()
			s.LastPlayedAt = &v
		}
		s.LastPlayedTrack = last.Get("track").Text()
	}
	return s
}

func compileLibrary(saved *table.Table, opts SpotifyOptions) (LibraryStats, error) {
	ls := LibraryStats{
		TotalSavedTracks: saved.Len(),
		Diversity:        Diversity(saved, opts.Names),
		TopSavedArtists:  TopSavedArtists(saved, opts.TopN, opts.Names),
		GrowthTimeline:   []GrowthPoint{},
	}

	monthly, err := coreagg.BuildGrowthSeries(saved.Rows(), coreagg.GrowthOptions{
		TimeField:    "added_at",
		MeasureField: "duration_ms",
		Granularity:  coreagg.GranularityMonth,
	})
	if err != nil {
		return LibraryStats{}, fmt.Errorf("monthly library growth: %w", err)
	}
	ls.MonthlyGrowth = monthly
	for _, b := range monthly.Buckets {
		ls.GrowthTimeline = append(ls.GrowthTimeline, GrowthPoint{
			YearMonth:        b.Bucket.Label,
			TracksAdded:      b.Count,
			TotalDurationMs:  b.Measure.IntPart(),
			HoursAdded:       round(coreagg.HoursFromMillis(b.Measure), 2),
			CumulativeTracks: b.CumulativeCount,
			CumulativeHours:  round(coreagg.HoursFromMillis(b.CumulativeMeasure), 2),
		})
	}

	yearly, err := coreagg.BuildGrowthSeries(saved.Rows(), coreagg.GrowthOptions{
		TimeField:    "added_at",
		MeasureField: "duration_ms",
		EntityField:  "artists",
		Granularity:  coreagg.GranularityYear,
		Names:        opts.Names,
	})
	if err != nil {
		return LibraryStats{}, fmt.Errorf("yearly library growth: %w", err)
	}
	ls.YearlyGrowth = yearly
	return ls, nil
}

// Diversity counts distinct artists and albums and summarizes durations.
func Diversity(saved *table.Table, n *names.Normalizer) LibraryDiversity {
	if saved.Empty() {
		return LibraryDiversity{}
	}

	artists := make(map[string]struct{})
	albums := make(map[string]struct{})
	var total decimal.Decimal
	var timed int64
	for _, r := range saved.Rows() {
		for _, a := range names.SplitNames(r.Get("artists").Text()) {
			artists[n.Normalize(a)] = struct{}{}
		}
		if album := r.Get("album").Text(); album != "" {
			albums[album] = struct{}{}
		}
		if d := r.Get("duration_ms"); !d.IsNull() {
			total = total.Add(coreagg.ExtractDecimal(r, "duration_ms"))
			timed++
		}
	}

	d := LibraryDiversity{
		UniqueArtists:      len(artists),
		UniqueAlbums:       len(albums),
		TotalDurationHours: round(coreagg.HoursFromMillis(total), 2),
	}
	if timed > 0 {
		avgMs := total.Div(decimal.NewFromInt(timed))
		d.AvgDurationMin = round(avgMs.Div(decimal.NewFromInt(60_000)), 2)
	}
	return d
}

// TopSavedArtists counts how many saved tracks credit each artist and returns
// the n most frequent, ties broken by name.
func TopSavedArtists(saved *table.Table, n int, norm *names.Normalizer) []ArtistCount {
	var all []string
	for _, r := range saved.Rows() {
		for _, a := range names.SplitNames(r.Get("artists").Text()) {
			all = append(all, norm.Normalize(a))
		}
	}

	counts := lo.MapToSlice(lo.CountValues(all), func(artist string, c int) ArtistCount {
		return ArtistCount{Artist: artist, SavedTracksCount: c}
	})
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].SavedTracksCount != counts[j].SavedTracksCount {
			return counts[i].SavedTracksCount > counts[j].SavedTracksCount
		}
		return counts[i].Artist < counts[j].Artist
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// ArtistShares estimates listening hours per top artist from recent plays.
// Artists with no recent plays get a rank-based weight instead.
func ArtistShares(topArtists, recent *table.Table, norm *names.Normalizer) []ArtistShare {
	if topArtists.Empty() {
		return []ArtistShare{}
	}

	playtime := make(map[string]int64)
	for _, play := range recent.Rows() {
		ms, _ := play.Get("duration_ms").Int64()
		for _, a := range names.SplitNames(play.Get("artists").Text()) {
			playtime[norm.Normalize(a)] += ms
		}
	}

	n := topArtists.Len()
	shares := make([]ArtistShare, 0, n)
	var totalWeight int64
	for i, r := range topArtists.Rows() {
		artist := r.Get("name").Text()
		rank := i + 1
		ms, ok := playtime[norm.Normalize(artist)]
		if !ok {
			ms = int64(n+1-rank) * fallbackRankMs
		}
		hours := round(coreagg.HoursFromMillis(decimal.NewFromInt(ms)), 1)
		weight := max(ms, 1)
		totalWeight += weight
		shares = append(shares, ArtistShare{
			Artist:      artist,
			Rank:        rank,
			Hours:       hours,
			Weight:      weight,
			LegendLabel: fmt.Sprintf("%s (%.1fh)", artist, hours),
			Estimated:   !ok,
		})
	}
	for i := range shares {
		shares[i].Pct = round(decimal.NewFromInt(100*shares[i].Weight).Div(decimal.NewFromInt(totalWeight)), 1)
	}
	return shares
}

// SpotifyStatsRow is the single-row summary written as the user's backup.
func SpotifyStatsRow(username string, s SpotifyStats) table.Row {
	last := table.Null
	if s.LastPlayedAt != nil {
		last = table.String(*s.LastPlayedAt)
	}
	return table.Row{
		"username":           table.String(username),
		"total_hours":        table.Float(s.TotalHours),
		"total_recent_plays": table.Int(int64(s.TotalRecentPlays)),
		"n_songs":            table.Int(int64(s.NSongs)),
		"n_artists":          table.Int(int64(s.NArtists)),
		"top_artist_long":    table.String(s.TopArtistLong),
		"top_track_long":     table.String(s.TopTrackLong),
		"last_played_at":     last,
		"generated_at":       table.String(s.GeneratedAt.Format(time.RFC3339)),
	}
}

// SpotifyStatsColumns is the column order of SpotifyStatsRow.
var SpotifyStatsColumns = []string{
	"username", "total_hours", "total_recent_plays", "n_songs", "n_artists",
	"top_artist_long", "top_track_long", "last_played_at", "generated_at",
}
