package spotify

import (
	"encoding/json"
	"testing"

	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTrack(t *testing.T) {
	var track Track
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "t1",
		"name": "Tum Hi Ho",
		"album": {"name": "Aashiqui 2", "images": [{"url": "https://i.scdn.co/a.jpg"}, {"url": "https://i.scdn.co/b.jpg"}]},
		"artists": [{"name": "Arijit Singh"}, {"name": "Mithoon"}],
		"duration_ms": 262000,
		"external_urls": {"spotify": "https://open.spotify.com/track/t1"}
	}`), &track))

	row := NormalizeTrack(track)
	require.Len(t, row, len(TrackColumns))
	require.Equal(t, "Tum Hi Ho", row.Get("track").Text())
	require.Equal(t, "Aashiqui 2", row.Get("album").Text())
	require.Equal(t, "https://i.scdn.co/a.jpg", row.Get("album_image").Text())
	require.Equal(t, "Arijit Singh, Mithoon", row.Get("artists").Text())
	require.True(t, table.Int(262000).Equal(row.Get("duration_ms")))
	require.Equal(t, "https://open.spotify.com/track/t1", row.Get("spotify_url").Text())
}

func TestNormalizeTrack_MissingOptionalFields(t *testing.T) {
	row := NormalizeTrack(Track{ID: "t2", Name: "Untitled", Album: &Album{Name: "Demo"}})
	require.True(t, row.Get("album_image").IsNull(), "no cover image is Null, not an error")
	require.Equal(t, "", row.Get("artists").Text())
	require.True(t, row.Get("duration_ms").IsNull())

	row = NormalizeTrack(Track{ID: "t3"})
	require.Equal(t, table.KindString, row.Get("album").Kind())
	require.True(t, row.Get("album_image").IsNull())
}

func TestNormalizeArtist_Defaults(t *testing.T) {
	row := NormalizeArtist(Artist{ID: "a1", Name: "Alka Yagnik"})
	require.Equal(t, "", row.Get("genres").Text())
	require.True(t, table.Int(0).Equal(row.Get("popularity")))
	require.True(t, table.Int(0).Equal(row.Get("followers")))
	require.True(t, row.Get("image").IsNull())

	pop, total := int64(71), int64(1200)
	row = NormalizeArtist(Artist{
		ID:         "a2",
		Name:       "Pritam",
		Genres:     []string{"filmi", "modern bollywood"},
		Popularity: &pop,
		Followers:  &Followers{Total: &total},
		Images:     []Image{{URL: "https://i.scdn.co/p.jpg"}},
	})
	require.Equal(t, "filmi, modern bollywood", row.Get("genres").Text())
	require.True(t, table.Int(71).Equal(row.Get("popularity")))
	require.True(t, table.Int(1200).Equal(row.Get("followers")))
	require.Equal(t, "https://i.scdn.co/p.jpg", row.Get("image").Text())
}

func TestNormalizePlayAndSaved(t *testing.T) {
	play := NormalizePlay(PlayHistory{Track: Track{ID: "t1"}, PlayedAt: "2024-03-01T10:00:00Z"})
	require.Equal(t, "2024-03-01T10:00:00Z", play.Get("played_at").Text())

	saved := NormalizeSaved(SavedTrack{Track: Track{ID: "t1"}, AddedAt: "2022-01-15T08:00:00Z"})
	require.Equal(t, "2022-01-15T08:00:00Z", saved.Get("added_at").Text())

	missing := NormalizeSaved(SavedTrack{Track: Track{ID: "t1"}})
	require.True(t, missing.Get("added_at").IsNull())
}

func TestTables_KeepColumnOrder(t *testing.T) {
	require.Equal(t, TrackColumns, TrackTable(nil).Columns())
	require.Equal(t, PlayColumns, PlayTable([]PlayHistory{{Track: Track{ID: "x"}}}).Columns())
	require.Equal(t, ArtistColumns, ArtistTable([]Artist{{ID: "a"}}).Columns())
}
