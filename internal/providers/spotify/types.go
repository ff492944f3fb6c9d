package spotify

// Web API response shapes. Only the fields the dashboard reads are modelled;
// optional nested objects are pointers or slices so absence is observable.

type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

type SimpleArtist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

type Album struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

type Track struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Album        *Album         `json:"album"`
	Artists      []SimpleArtist `json:"artists"`
	DurationMs   *int64         `json:"duration_ms"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
}

type Followers struct {
	Total *int64 `json:"total"`
}

type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres"`
	Popularity   *int64       `json:"popularity"`
	Followers    *Followers   `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// PlayHistory is one item of the recently-played feed.
type PlayHistory struct {
	Track    Track  `json:"track"`
	PlayedAt string `json:"played_at"`
}

// SavedTrack is one item of the user's library.
type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// Paging is the envelope of every list endpoint.
type Paging[T any] struct {
	Items  []T     `json:"items"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Total  int     `json:"total"`
	Next   *string `json:"next"`
}

// TimeRange selects the affinity window of the top-items endpoints.
type TimeRange string

const (
	ShortTerm  TimeRange = "short_term"
	MediumTerm TimeRange = "medium_term"
	LongTerm   TimeRange = "long_term"
)

// TimeRanges lists every range in short-to-long order.
var TimeRanges = []TimeRange{ShortTerm, MediumTerm, LongTerm}
