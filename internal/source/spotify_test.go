package source

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	coreerrors "github.com/aevon-lab/mediadash/internal/core/errors"
	"github.com/aevon-lab/mediadash/internal/core/storage/csvfile"
	"github.com/aevon-lab/mediadash/internal/core/table"
	providermocks "github.com/aevon-lab/mediadash/internal/mocks/providers"
	storagemocks "github.com/aevon-lab/mediadash/internal/mocks/storage"
	"github.com/aevon-lab/mediadash/internal/providers/spotify"
	"github.com/aevon-lab/mediadash/internal/stats"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleLibrary() spotify.Library {
	lib := spotify.NewLibrary()
	lib.Recent.Append(table.Row{
		"id": table.String("t1"), "track": table.String("Tum Hi Ho"), "artists": table.String("Arijit Singh"),
		"duration_ms": table.Int(262000), "played_at": table.String("2024-03-01T10:00:00Z"),
	})
	lib.TopTracks[spotify.LongTerm].Append(table.Row{
		"id": table.String("t1"), "track": table.String("Tum Hi Ho"), "artists": table.String("Arijit Singh"),
		"duration_ms": table.Int(262000),
	})
	lib.TopArtists[spotify.LongTerm].Append(table.Row{
		"id": table.String("a1"), "name": table.String("Arijit Singh"), "genres": table.String("filmi, modern bollywood"),
		"popularity": table.Int(90), "followers": table.Int(1000),
	})
	lib.Saved.Append(table.Row{
		"id": table.String("t2"), "track": table.String("Kesariya"), "artists": table.String("Pritam, Arijit Singh"),
		"duration_ms": table.Int(268000), "added_at": table.String("2022-07-17T08:00:00Z"),
	})
	return lib
}

func TestSpotifyBackup_RoundTrip(t *testing.T) {
	store := csvfile.New(t.TempDir())
	ctx := context.Background()
	lib := sampleLibrary()

	s := stats.SpotifyStats{GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), TotalHours: 0.2}
	require.NoError(t, WriteSpotifyBackup(ctx, store, "alice", lib, s))
	require.True(t, store.Exists(SpotifyStatsFile("alice")))
	for _, name := range SpotifyTableFiles() {
		require.True(t, store.Exists(name), name)
	}

	back, err := SpotifyCached(store, "alice").Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, back.Recent.Len())
	require.Equal(t, 1, back.Tracks(spotify.LongTerm).Len())
	require.Equal(t, 0, back.Tracks(spotify.ShortTerm).Len())
	require.Equal(t, 1, back.Saved.Len())

	artist := back.Artists(spotify.LongTerm).Row(0)
	require.True(t, artist.Get("popularity").Equal(table.Int(90)))
	require.Equal(t, "filmi, modern bollywood", artist.Get("genres").Text())
	require.True(t, back.Recent.Row(0).Get("duration_ms").Equal(table.Int(262000)))
	require.NotNil(t, back.BackupHours)
	require.Equal(t, 0.2, *back.BackupHours)
}

func TestSpotifyBackup_NumericLookingNamesSurviveFallback(t *testing.T) {
	store := csvfile.New(t.TempDir())
	ctx := context.Background()

	lib := spotify.NewLibrary()
	track := table.Row{
		"id": table.String("t505"), "track": table.String("505"), "album": table.String("1989"),
		"artists": table.String("311"), "duration_ms": table.Int(253000),
	}
	lib.TopTracks[spotify.LongTerm].Append(track)
	play := track.Clone()
	play["played_at"] = table.String("2024-03-01T10:00:00Z")
	lib.Recent.Append(play)
	lib.TopArtists[spotify.LongTerm].Append(table.Row{
		"id": table.String("a1"), "name": table.String("NaN"), "genres": table.String("1234"),
		"popularity": table.Int(50), "followers": table.Int(10),
	})
	lib.Saved.Append(table.Row{
		"id": table.String("t2"), "track": table.String("22"), "album": table.String("1989"),
		"artists": table.String("311, 2Pac"), "duration_ms": table.Int(230000),
		"added_at": table.String("2023-05-01T08:00:00Z"),
	})

	opts := stats.SpotifyOptions{Now: func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }}
	live, err := stats.CompileSpotify(lib, opts)
	require.NoError(t, err)
	require.NoError(t, WriteSpotifyBackup(ctx, store, "alice", lib, live.Stats))

	back, err := SpotifyCached(store, "alice").Load(ctx)
	require.NoError(t, err)

	fallback, err := stats.CompileSpotify(back, opts)
	require.NoError(t, err)
	require.Equal(t, "505 — 311", fallback.Stats.TopTrackLong)
	require.Equal(t, "NaN", fallback.Stats.TopArtistLong)
	require.Equal(t, "505", fallback.Stats.LastPlayedTrack)
	require.Equal(t, live.Stats.TopTrackLong, fallback.Stats.TopTrackLong)
	require.Equal(t, live.Library.Diversity, fallback.Library.Diversity)
	require.Equal(t, live.Library.TopSavedArtists, fallback.Library.TopSavedArtists)
	require.Equal(t, live.ArtistShares, fallback.ArtistShares)

	require.True(t, back.Artists(spotify.LongTerm).Row(0).Get("popularity").Equal(table.Int(50)), "numeric columns keep their type")

	_, err = json.Marshal(back.Artists(spotify.LongTerm))
	require.NoError(t, err)
	_, err = json.Marshal(fallback)
	require.NoError(t, err)
}

func TestSpotifyCached_SummaryOnly(t *testing.T) {
	store := csvfile.New(t.TempDir())
	ctx := context.Background()

	summary := table.New(stats.SpotifyStatsColumns...)
	summary.Append(stats.SpotifyStatsRow("alice", stats.SpotifyStats{TotalHours: 812.5}))
	require.NoError(t, store.WriteTable(ctx, SpotifyStatsFile("alice"), summary))

	lib, err := SpotifyCached(store, "alice").Load(ctx)
	require.NoError(t, err)
	require.True(t, lib.Tracks(spotify.LongTerm).Empty())

	report, err := stats.CompileSpotify(lib, stats.SpotifyOptions{})
	require.NoError(t, err)
	require.Equal(t, 812.5, report.Stats.TotalHours)
	require.Equal(t, stats.Placeholder, report.Stats.TopTrackLong)
}

func TestSpotifyCached_NoBackup(t *testing.T) {
	_, err := SpotifyCached(csvfile.New(t.TempDir()), "alice").Load(context.Background())
	require.ErrorIs(t, err, coreerrors.ErrNoBackup)
}

func TestSpotifyCached_PartialBackup(t *testing.T) {
	store := csvfile.New(t.TempDir())
	ctx := context.Background()

	recent := table.New(spotify.PlayColumns...)
	recent.Append(table.Row{"id": table.String("t1"), "played_at": table.String("2024-03-01T10:00:00Z")})
	require.NoError(t, store.WriteTable(ctx, "Charts/recently_played.csv", recent))

	lib, err := SpotifyCached(store, "alice").Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, lib.Recent.Len())
	require.True(t, lib.Saved.Empty())
	require.Equal(t, spotify.SavedColumns, lib.Saved.Columns())
}

func TestSpotifyCached_ReadError(t *testing.T) {
	store := storagemocks.NewBackupStore(t)
	store.EXPECT().ReadTable(mock.Anything, "Charts/recently_played.csv").Return(nil, errors.New("permission denied"))

	_, err := SpotifyCached(store, "alice").Load(context.Background())
	require.Error(t, err)
	require.False(t, errors.Is(err, coreerrors.ErrNoBackup))
}

func TestSpotifyLive_FallsBackToBackup(t *testing.T) {
	store := csvfile.New(t.TempDir())
	ctx := context.Background()
	require.NoError(t, WriteSpotifyBackup(ctx, store, "alice", sampleLibrary(), stats.SpotifyStats{}))

	fetcher := providermocks.NewSpotifyFetcher(t)
	fetcher.EXPECT().FetchLibrary(mock.Anything).
		Return(spotify.Library{}, &coreerrors.APIError{StatusCode: 401, Endpoint: "/v1/me/tracks"})

	res := WithFallback(ctx, "spotify", SpotifyLive(fetcher), SpotifyCached(store, "alice"), spotify.NewLibrary)
	require.Equal(t, OriginFallback, res.Origin)
	require.Equal(t, 1, res.Value.Saved.Len())
}

func TestSpotifyLive_EmptyWithoutBackup(t *testing.T) {
	fetcher := providermocks.NewSpotifyFetcher(t)
	fetcher.EXPECT().FetchLibrary(mock.Anything).Return(spotify.Library{}, errors.New("dial tcp: connection refused"))

	res := WithFallback(context.Background(), "spotify", SpotifyLive(fetcher), SpotifyCached(csvfile.New(t.TempDir()), "alice"), spotify.NewLibrary)
	require.Equal(t, OriginEmpty, res.Origin)
	require.ErrorIs(t, res.BackupErr, coreerrors.ErrNoBackup)
	require.True(t, res.Value.Recent.Empty())
	require.NotNil(t, res.Value.TopTracks[spotify.LongTerm])
}
