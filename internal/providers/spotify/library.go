package spotify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/mediadash/internal/core/table"
	"golang.org/x/sync/errgroup"
)

// Library is every normalized table a run works from.
type Library struct {
	Recent     *table.Table
	TopTracks  map[TimeRange]*table.Table
	TopArtists map[TimeRange]*table.Table
	Saved      *table.Table

	// BackupHours is total_hours from the summary backup. Only a library
	// rebuilt from backups sets it.
	BackupHours *float64
}

// NewLibrary returns a Library whose tables are all empty.
func NewLibrary() Library {
	lib := Library{
		Recent:     table.New(PlayColumns...),
		TopTracks:  make(map[TimeRange]*table.Table, len(TimeRanges)),
		TopArtists: make(map[TimeRange]*table.Table, len(TimeRanges)),
		Saved:      table.New(SavedColumns...),
	}
	for _, r := range TimeRanges {
		lib.TopTracks[r] = table.New(TrackColumns...)
		lib.TopArtists[r] = table.New(ArtistColumns...)
	}
	return lib
}

// Tracks returns the top tracks for r, never nil.
func (l Library) Tracks(r TimeRange) *table.Table {
	if t := l.TopTracks[r]; t != nil {
		return t
	}
	return table.New(TrackColumns...)
}

// Artists returns the top artists for r, never nil.
func (l Library) Artists(r TimeRange) *table.Table {
	if t := l.TopArtists[r]; t != nil {
		return t
	}
	return table.New(ArtistColumns...)
}

// Fetcher loads a complete Library from the live API.
type Fetcher interface {
	FetchLibrary(ctx context.Context) (Library, error)
}

var _ Fetcher = (*Client)(nil)

// FetchLibrary issues the independent endpoint calls concurrently. Each result
// lands in its own slot, so the Library is identical to a sequential fetch.
// The first failure cancels the remaining calls.
func (c *Client) FetchLibrary(ctx context.Context) (Library, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		recent     []PlayHistory
		saved      []SavedTrack
		topTracks  = make([][]Track, len(TimeRanges))
		topArtists = make([][]Artist, len(TimeRanges))
	)

	g.Go(func() error {
		var err error
		if recent, err = c.RecentlyPlayed(gctx, RecentLimit); err != nil {
			return fmt.Errorf("recently played: %w", err)
		}
		return nil
	})
	for i, r := range TimeRanges {
		i, r := i, r
		g.Go(func() error {
			var err error
			if topTracks[i], err = c.TopTracks(gctx, r, TopLimit); err != nil {
				return fmt.Errorf("top tracks (%s): %w", r, err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			if topArtists[i], err = c.TopArtists(gctx, r, TopLimit); err != nil {
				return fmt.Errorf("top artists (%s): %w", r, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		if saved, err = c.SavedTracks(gctx); err != nil {
			return fmt.Errorf("saved tracks: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Library{}, err
	}

	lib := NewLibrary()
	lib.Recent = PlayTable(recent)
	for i, r := range TimeRanges {
		i, r := i, r
		lib.TopTracks[r] = TrackTable(topTracks[i])
		lib.TopArtists[r] = ArtistTable(topArtists[i])
	}
	savedRows := make([]table.Row, 0, len(saved))
	for _, s := range saved {
		savedRows = append(savedRows, NormalizeSaved(s))
	}
	lib.Saved = table.FromRows(SavedColumns, savedRows)

	slog.Info("[Spotify] Fetched library",
		"recent", lib.Recent.Len(),
		"top_tracks_long", lib.Tracks(LongTerm).Len(),
		"top_artists_long", lib.Artists(LongTerm).Len(),
		"saved", lib.Saved.Len(),
	)
	return lib, nil
}
