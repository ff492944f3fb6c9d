package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	coreerrors "github.com/aevon-lab/mediadash/internal/core/errors"
	"github.com/aevon-lab/mediadash/internal/core/pagination"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL  = "https://api.spotify.com"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"

	SavedTracksPageSize = 50
	RecentLimit         = 25
	TopLimit            = 10
)

// Scopes the refresh token must have been granted.
var Scopes = []string{"user-read-recently-played", "user-top-read", "user-library-read"}

// Credentials authorize a headless client through a long-lived refresh token.
// Obtaining the refresh token (the consent flow) happens outside this program.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Validate reports which credential is missing.
func (c Credentials) Validate() error {
	switch {
	case strings.TrimSpace(c.ClientID) == "":
		return fmt.Errorf("spotify client id is required")
	case strings.TrimSpace(c.ClientSecret) == "":
		return fmt.Errorf("spotify client secret is required")
	case strings.TrimSpace(c.RefreshToken) == "":
		return fmt.Errorf("spotify refresh token is required")
	}
	return nil
}

type clientOptions struct {
	baseURL    string
	tokenURL   string
	httpClient *http.Client
	timeout    time.Duration
}

// Option customizes a Client.
type Option func(*clientOptions)

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option { return func(o *clientOptions) { o.baseURL = u } }

// WithTokenURL points the token refresh at a different endpoint.
func WithTokenURL(u string) Option { return func(o *clientOptions) { o.tokenURL = u } }

// WithHTTPClient sets the transport used for both token refresh and API calls.
func WithHTTPClient(hc *http.Client) Option { return func(o *clientOptions) { o.httpClient = hc } }

// WithTimeout bounds every API request.
func WithTimeout(d time.Duration) Option { return func(o *clientOptions) { o.timeout = d } }

// Client is a read-only Spotify Web API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client whose transport refreshes access tokens on demand.
func NewClient(ctx context.Context, creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	o := clientOptions{baseURL: DefaultBaseURL, tokenURL: DefaultTokenURL, timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}

	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: o.tokenURL, AuthStyle: oauth2.AuthStyleInHeader},
		Scopes:       Scopes,
	}
	hc := oauth2.NewClient(ctx, cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken}))
	hc.Timeout = o.timeout

	return NewClientWithHTTP(o.baseURL, hc), nil
}

// NewClientWithHTTP wraps an already-authorized http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := coreerrors.CheckResponse(resp, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// RecentlyPlayed returns the most recent plays, newest first.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) ([]PlayHistory, error) {
	var page Paging[PlayHistory]
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.getJSON(ctx, "/v1/me/player/recently-played", q, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// TopTracks returns the user's top tracks for a time range.
func (c *Client) TopTracks(ctx context.Context, r TimeRange, limit int) ([]Track, error) {
	var page Paging[Track]
	q := url.Values{"time_range": {string(r)}, "limit": {strconv.Itoa(limit)}}
	if err := c.getJSON(ctx, "/v1/me/top/tracks", q, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// TopArtists returns the user's top artists for a time range.
func (c *Client) TopArtists(ctx context.Context, r TimeRange, limit int) ([]Artist, error) {
	var page Paging[Artist]
	q := url.Values{"time_range": {string(r)}, "limit": {strconv.Itoa(limit)}}
	if err := c.getJSON(ctx, "/v1/me/top/artists", q, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// SavedTracksPage returns one page of the user's library.
func (c *Client) SavedTracksPage(ctx context.Context, offset, limit int) ([]SavedTrack, error) {
	var page Paging[SavedTrack]
	q := url.Values{"limit": {strconv.Itoa(limit)}, "offset": {strconv.Itoa(offset)}}
	if err := c.getJSON(ctx, "/v1/me/tracks", q, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// SavedTracks walks the whole library until an empty page comes back.
func (c *Client) SavedTracks(ctx context.Context) ([]SavedTrack, error) {
	return pagination.Paginate[SavedTrack](ctx, c.SavedTracksPage, SavedTracksPageSize)
}
