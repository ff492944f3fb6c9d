package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	coreerrors "github.com/aevon-lab/mediadash/internal/core/errors"
	"github.com/aevon-lab/mediadash/internal/core/table"
	"golang.org/x/sync/singleflight"
)

const DefaultBaseURL = "https://api.steampowered.com"

var steamID64 = regexp.MustCompile(`^7656\d{13}$`)

// Client is a read-only Steam Web API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// App catalog, loaded once per client
	mu           sync.RWMutex
	catalog      map[string]string
	catalogGroup singleflight.Group
}

// NewClient creates a client. An empty baseURL means the public API host.
func NewClient(apiKey, baseURL string, hc *http.Client) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("steam api key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: hc,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.apiKey)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the request URL carries the key
		if uerr, ok := err.(*url.Error); ok {
			err = uerr.Err
		}
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := coreerrors.CheckResponse(resp, path); err != nil {
		return err
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Catalog returns the appid → name map. Concurrent callers share one request;
// a failed load is logged and yields an empty catalog so names are simply left
// as the owned-games payload had them.
func (c *Client) Catalog(ctx context.Context) map[string]string {
	c.mu.RLock()
	cached := c.catalog
	c.mu.RUnlock()
	if cached != nil {
		return cached
	}

	v, _, _ := c.catalogGroup.Do("applist", func() (interface{}, error) {
		var resp appListResponse
		if err := c.getJSON(ctx, "/ISteamApps/GetAppList/v2/", nil, &resp); err != nil {
			slog.Warn("[Steam] Failed to load app catalog", "error", err)
			return map[string]string{}, nil
		}
		catalog := make(map[string]string, len(resp.AppList.Apps))
		for _, app := range resp.AppList.Apps {
			catalog[strconv.FormatInt(app.AppID, 10)] = app.Name
		}
		c.mu.Lock()
		c.catalog = catalog
		c.mu.Unlock()
		return catalog, nil
	})
	return v.(map[string]string)
}

// ResolveSteamID maps a vanity name to a 64-bit Steam ID. Values that already
// are Steam IDs are returned as is.
func (c *Client) ResolveSteamID(ctx context.Context, username string) (string, error) {
	if steamID64.MatchString(username) {
		return username, nil
	}
	var resp vanityResponse
	q := url.Values{"vanityurl": {username}}
	if err := c.getJSON(ctx, "/ISteamUser/ResolveVanityURL/v0001/", q, &resp); err != nil {
		return "", err
	}
	if resp.Response.Success != 1 || resp.Response.SteamID == "" {
		return "", fmt.Errorf("resolve %q: %w", username, coreerrors.ErrUserNotFound)
	}
	return resp.Response.SteamID, nil
}

func (c *Client) games(ctx context.Context, path, steamID string) (*table.Table, error) {
	var resp gamesResponse
	if err := c.getJSON(ctx, path, url.Values{"steamid": {steamID}}, &resp); err != nil {
		return nil, err
	}
	games := RecordTable(GameColumns, resp.Response.Games)
	return ApplyCatalog(games, c.Catalog(ctx)), nil
}

// OwnedGames returns every owned game with its lifetime playtime in minutes.
// A private or empty library is an empty table.
func (c *Client) OwnedGames(ctx context.Context, steamID string) (*table.Table, error) {
	return c.games(ctx, "/IPlayerService/GetOwnedGames/v0001/", steamID)
}

// RecentGames returns the games played in the last two weeks.
func (c *Client) RecentGames(ctx context.Context, steamID string) (*table.Table, error) {
	return c.games(ctx, "/IPlayerService/GetRecentlyPlayedGames/v0001/", steamID)
}

// Badges returns the user's badges.
func (c *Client) Badges(ctx context.Context, steamID string) (*table.Table, error) {
	var resp badgesResponse
	if err := c.getJSON(ctx, "/IPlayerService/GetBadges/v1/", url.Values{"steamid": {steamID}}, &resp); err != nil {
		return nil, err
	}
	return RecordTable(BadgeColumns, resp.Response.Badges), nil
}

// Level returns the user's Steam level; 0 when the profile hides it.
func (c *Client) Level(ctx context.Context, steamID string) (int64, error) {
	var resp levelResponse
	if err := c.getJSON(ctx, "/IPlayerService/GetSteamLevel/v1/", url.Values{"steamid": {steamID}}, &resp); err != nil {
		return 0, err
	}
	if resp.Response.PlayerLevel == nil {
		return 0, nil
	}
	return *resp.Response.PlayerLevel, nil
}
