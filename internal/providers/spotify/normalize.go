package spotify

import (
	"strings"

	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/samber/lo"
)

// Column layouts of the normalized tables.
var (
	TrackColumns  = []string{"id", "track", "album", "album_image", "artists", "duration_ms", "spotify_url"}
	PlayColumns   = append(append([]string{}, TrackColumns...), "played_at")
	SavedColumns  = append(append([]string{}, TrackColumns...), "added_at")
	ArtistColumns = []string{"id", "name", "genres", "popularity", "followers", "image", "spotify_url"}

	// TrackTextColumns and ArtistTextColumns always hold strings, whatever
	// the text looks like.
	TrackTextColumns  = []string{"id", "track", "album", "album_image", "artists", "spotify_url", "played_at", "added_at"}
	ArtistTextColumns = []string{"id", "name", "genres", "image", "spotify_url"}
)

// firstImage returns the URL of the first image, or Null.
func firstImage(images []Image) table.Value {
	if len(images) == 0 || images[0].URL == "" {
		return table.Null
	}
	return table.String(images[0].URL)
}

// NormalizeTrack flattens a track. Artist names are joined with ", ".
func NormalizeTrack(t Track) table.Row {
	album, albumImage := table.String(""), table.Null
	if t.Album != nil {
		album = table.String(t.Album.Name)
		albumImage = firstImage(t.Album.Images)
	}
	artists := lo.Map(t.Artists, func(a SimpleArtist, _ int) string { return a.Name })

	return table.Row{
		"id":          table.String(t.ID),
		"track":       table.String(t.Name),
		"album":       album,
		"album_image": albumImage,
		"artists":     table.String(strings.Join(artists, ", ")),
		"duration_ms": table.IntPtr(t.DurationMs),
		"spotify_url": table.String(t.ExternalURLs.Spotify),
	}
}

// NormalizePlay flattens a recently-played item, keeping its played_at.
func NormalizePlay(p PlayHistory) table.Row {
	row := NormalizeTrack(p.Track)
	row["played_at"] = stringOrNull(p.PlayedAt)
	return row
}

// NormalizeSaved flattens a library item. The added_at timestamp comes from
// the saved item, not the track.
func NormalizeSaved(s SavedTrack) table.Row {
	row := NormalizeTrack(s.Track)
	row["added_at"] = stringOrNull(s.AddedAt)
	return row
}

// NormalizeArtist flattens an artist. Missing popularity and follower counts
// default to zero, missing genres to "".
func NormalizeArtist(a Artist) table.Row {
	var popularity, followers int64
	if a.Popularity != nil {
		popularity = *a.Popularity
	}
	if a.Followers != nil && a.Followers.Total != nil {
		followers = *a.Followers.Total
	}
	return table.Row{
		"id":          table.String(a.ID),
		"name":        table.String(a.Name),
		"genres":      table.String(strings.Join(a.Genres, ", ")),
		"popularity":  table.Int(popularity),
		"followers":   table.Int(followers),
		"image":       firstImage(a.Images),
		"spotify_url": table.String(a.ExternalURLs.Spotify),
	}
}

func stringOrNull(s string) table.Value {
	if s == "" {
		return table.Null
	}
	return table.String(s)
}

// TrackTable normalizes a list of tracks.
func TrackTable(tracks []Track) *table.Table {
	return table.FromRows(TrackColumns, lo.Map(tracks, func(t Track, _ int) table.Row { return NormalizeTrack(t) }))
}

// PlayTable normalizes recently-played items.
func PlayTable(plays []PlayHistory) *table.Table {
	return table.FromRows(PlayColumns, lo.Map(plays, func(p PlayHistory, _ int) table.Row { return NormalizePlay(p) }))
}

// ArtistTable normalizes a list of artists.
func ArtistTable(artists []Artist) *table.Table {
	return table.FromRows(ArtistColumns, lo.Map(artists, func(a Artist, _ int) table.Row { return NormalizeArtist(a) }))
}
