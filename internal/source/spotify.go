package source

import (
	"context"
	"errors"
	"fmt"
	"path"

	coreerrors "github.com/aevon-lab/mediadash/internal/core/errors"
	"github.com/aevon-lab/mediadash/internal/core/storage"
	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/aevon-lab/mediadash/internal/providers/spotify"
	"github.com/aevon-lab/mediadash/internal/stats"
)

// ChartsDir is the output subdirectory holding per-table CSVs and chart exports.
const ChartsDir = "Charts"

// SpotifyStatsFile is the single-row summary backup for username.
func SpotifyStatsFile(username string) string {
	return username + "_SpotifyData.csv"
}

type spotifyTable struct {
	name string
	text []string
	get  func(spotify.Library) *table.Table
	set  func(*spotify.Library, *table.Table)
}

func spotifyTables() []spotifyTable {
	tables := []spotifyTable{{
		name: "recently_played.csv",
		text: spotify.TrackTextColumns,
		get:  func(l spotify.Library) *table.Table { return l.Recent },
		set:  func(l *spotify.Library, t *table.Table) { l.Recent = t },
	}}
	for _, r := range spotify.TimeRanges {
		tables = append(tables,
			spotifyTable{
				name: fmt.Sprintf("top_tracks_%s.csv", r),
				text: spotify.TrackTextColumns,
				get:  func(l spotify.Library) *table.Table { return l.Tracks(r) },
				set:  func(l *spotify.Library, t *table.Table) { l.TopTracks[r] = t },
			},
			spotifyTable{
				name: fmt.Sprintf("top_artists_%s.csv", r),
				text: spotify.ArtistTextColumns,
				get:  func(l spotify.Library) *table.Table { return l.Artists(r) },
				set:  func(l *spotify.Library, t *table.Table) { l.TopArtists[r] = t },
			},
		)
	}
	return append(tables, spotifyTable{
		name: "saved_tracks.csv",
		text: spotify.TrackTextColumns,
		get:  func(l spotify.Library) *table.Table { return l.Saved },
		set:  func(l *spotify.Library, t *table.Table) { l.Saved = t },
	})
}

// SpotifyTableFiles lists the per-table backup names, relative to the output directory.
func SpotifyTableFiles() []string {
	var out []string
	for _, st := range spotifyTables() {
		out = append(out, path.Join(ChartsDir, st.name))
	}
	return out
}

// SpotifyLive fetches the library from the API.
func SpotifyLive(f spotify.Fetcher) Source[spotify.Library] {
	return Func[spotify.Library](f.FetchLibrary)
}

// SpotifyCached rebuilds a library from the per-table backups and the
// summary row of username. Missing tables stay empty; when no backup exists
// at all the error wraps ErrNoBackup.
func SpotifyCached(store storage.BackupStore, username string) Source[spotify.Library] {
	return Func[spotify.Library](func(ctx context.Context) (spotify.Library, error) {
		lib := spotify.NewLibrary()
		found := 0
		for _, st := range spotifyTables() {
			t, err := store.ReadTable(ctx, path.Join(ChartsDir, st.name))
			if errors.Is(err, coreerrors.ErrNoBackup) {
				continue
			}
			if err != nil {
				return spotify.Library{}, err
			}
			st.set(&lib, t.WithTextColumns(st.text...))
			found++
		}

		summary, err := store.ReadTable(ctx, SpotifyStatsFile(username))
		switch {
		case errors.Is(err, coreerrors.ErrNoBackup):
		case err != nil:
			return spotify.Library{}, err
		default:
			found++
			if !summary.Empty() {
				if h, ok := summary.Row(0).Get("total_hours").Float64(); ok {
					lib.BackupHours = &h
				}
			}
		}

		if found == 0 {
			return spotify.Library{}, fmt.Errorf("spotify library: %w", coreerrors.ErrNoBackup)
		}
		return lib, nil
	})
}

// WriteSpotifyBackup overwrites the summary row and every per-table backup.
func WriteSpotifyBackup(ctx context.Context, store storage.BackupStore, username string, lib spotify.Library, s stats.SpotifyStats) error {
	summary := table.New(stats.SpotifyStatsColumns...)
	summary.Append(stats.SpotifyStatsRow(username, s))
	if err := store.WriteTable(ctx, SpotifyStatsFile(username), summary); err != nil {
		return err
	}

	for _, st := range spotifyTables() {
		if err := store.WriteTable(ctx, path.Join(ChartsDir, st.name), st.get(lib)); err != nil {
			return err
		}
	}
	return nil
}
