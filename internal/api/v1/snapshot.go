package v1

import (
	"fmt"
	"time"

	coreagg "github.com/aevon-lab/mediadash/internal/core/aggregation"
	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/aevon-lab/mediadash/internal/providers/spotify"
	"github.com/aevon-lab/mediadash/internal/stats"
)

// SchemaVersion is bumped whenever a snapshot field changes meaning or is removed.
const SchemaVersion = 1

const (
	ProviderSpotify = "spotify"
	ProviderSteam   = "steam"
)

// SpotifySnapshot is the comprehensive Spotify document consumed by the
// presentation layer. Every table is an array of row objects; absent cells
// are null.
type SpotifySnapshot struct {
	SchemaVersion int       `json:"schema_version"`
	Provider      string    `json:"provider"`
	Origin        string    `json:"origin"`
	GeneratedAt   time.Time `json:"generated_at"`
	Username      string    `json:"username"`

	RecentlyPlayed   *table.Table `json:"recently_played"`
	TopTracksShort   *table.Table `json:"top_tracks_short"`
	TopTracksMedium  *table.Table `json:"top_tracks_medium"`
	TopTracksLong    *table.Table `json:"top_tracks_long"`
	TopArtistsShort  *table.Table `json:"top_artists_short"`
	TopArtistsMedium *table.Table `json:"top_artists_medium"`
	TopArtistsLong   *table.Table `json:"top_artists_long"`
	SavedTracks      *table.Table `json:"saved_tracks"`

	TotalHours   float64             `json:"total_hours"`
	Stats        stats.SpotifyStats  `json:"stats"`
	LibraryStats stats.LibraryStats  `json:"library_stats"`
	ArtistShares []stats.ArtistShare `json:"artist_shares"`
}

// NewSpotifySnapshot assembles the document for one run.
func NewSpotifySnapshot(username, origin string, lib spotify.Library, report stats.SpotifyReport) *SpotifySnapshot {
	return &SpotifySnapshot{
		SchemaVersion:    SchemaVersion,
		Provider:         ProviderSpotify,
		Origin:           origin,
		GeneratedAt:      report.Stats.GeneratedAt,
		Username:         username,
		RecentlyPlayed:   lib.Recent,
		TopTracksShort:   lib.Tracks(spotify.ShortTerm),
		TopTracksMedium:  lib.Tracks(spotify.MediumTerm),
		TopTracksLong:    lib.Tracks(spotify.LongTerm),
		TopArtistsShort:  lib.Artists(spotify.ShortTerm),
		TopArtistsMedium: lib.Artists(spotify.MediumTerm),
		TopArtistsLong:   lib.Artists(spotify.LongTerm),
		SavedTracks:      lib.Saved,
		TotalHours:       report.Stats.TotalHours,
		Stats:            report.Stats,
		LibraryStats:     report.Library,
		ArtistShares:     report.ArtistShares,
	}
}

// Validate ensures the document carries its identifying attributes.
func (s *SpotifySnapshot) Validate() error {
	return validateHeader(s.SchemaVersion, s.Provider, ProviderSpotify, s.Origin, s.Username, s.GeneratedAt)
}

// SteamSnapshot is the comprehensive Steam document.
type SteamSnapshot struct {
	SchemaVersion int       `json:"schema_version"`
	Provider      string    `json:"provider"`
	Origin        string    `json:"origin"`
	GeneratedAt   time.Time `json:"generated_at"`
	Username      string    `json:"username"`
	SteamID       string    `json:"steam_id,omitempty"`

	Stats    stats.SteamStats     `json:"stats"`
	Games    *table.Table         `json:"games"`
	Activity coreagg.GrowthSeries `json:"library_activity"`
}

// NewSteamSnapshot assembles the document for one run.
func NewSteamSnapshot(username, steamID, origin string, report stats.SteamReport) *SteamSnapshot {
	return &SteamSnapshot{
		SchemaVersion: SchemaVersion,
		Provider:      ProviderSteam,
		Origin:        origin,
		GeneratedAt:   report.Stats.GeneratedAt,
		Username:      username,
		SteamID:       steamID,
		Stats:         report.Stats,
		Games:         report.Games,
		Activity:      report.Activity,
	}
}

// Validate ensures the document carries its identifying attributes.
func (s *SteamSnapshot) Validate() error {
	return validateHeader(s.SchemaVersion, s.Provider, ProviderSteam, s.Origin, s.Username, s.GeneratedAt)
}

func validateHeader(version int, provider, wantProvider, origin, username string, generatedAt time.Time) error {
	if version != SchemaVersion {
		return fmt.Errorf("unsupported schema_version %d", version)
	}
	if provider != wantProvider {
		return fmt.Errorf("provider must be %q, got %q", wantProvider, provider)
	}
	switch origin {
	case "live", "fallback", "empty":
	default:
		return fmt.Errorf("origin must be one of live, fallback, empty, got %q", origin)
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if generatedAt.IsZero() {
		return fmt.Errorf("generated_at is required")
	}
	return nil
}
