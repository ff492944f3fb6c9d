package steam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	coreerrors "github.com/aevon-lab/mediadash/internal/core/errors"
	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSteam struct {
	appListCalls atomic.Int32
	failBadges   bool
	hideLevel    bool
}

func (f *fakeSteam) server(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	check := func(r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
	}
	mux.HandleFunc("/ISteamApps/GetAppList/v2/", func(w http.ResponseWriter, r *http.Request) {
		f.appListCalls.Add(1)
		fmt.Fprint(w, `{"applist":{"apps":[{"appid":72850,"name":"The Elder Scrolls V: Skyrim"},{"appid":489830,"name":"The Elder Scrolls V: Skyrim Special Edition"},{"appid":10,"name":"Counter-Strike"}]}}`)
	})
	mux.HandleFunc("/ISteamUser/ResolveVanityURL/v0001/", func(w http.ResponseWriter, r *http.Request) {
		check(r)
		if r.URL.Query().Get("vanityurl") != "Dipto9999" {
			fmt.Fprint(w, `{"response":{"success":42,"message":"No match"}}`)
			return
		}
		fmt.Fprint(w, `{"response":{"steamid":"76561198000000001","success":1}}`)
	})
	mux.HandleFunc("/IPlayerService/GetOwnedGames/v0001/", func(w http.ResponseWriter, r *http.Request) {
		check(r)
		assert.Equal(t, "76561198000000001", r.URL.Query().Get("steamid"))
		fmt.Fprint(w, `{"response":{"game_count":3,"games":[
			{"appid":72850,"playtime_forever":600,"rtime_last_played":1650000000},
			{"appid":489830,"playtime_forever":300,"rtime_last_played":1700000000},
			{"appid":10,"playtime_forever":0,"rtime_last_played":0}
		]}}`)
	})
	mux.HandleFunc("/IPlayerService/GetRecentlyPlayedGames/v0001/", func(w http.ResponseWriter, r *http.Request) {
		check(r)
		fmt.Fprint(w, `{"response":{"total_count":0}}`)
	})
	mux.HandleFunc("/IPlayerService/GetBadges/v1/", func(w http.ResponseWriter, r *http.Request) {
		check(r)
		if f.failBadges {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"response":{"badges":[{"badgeid":1,"appid":72850,"level":3,"completion_time":1600000000,"xp":300,"scarcity":2,"communityitemid":"9876543210123"}],"player_xp":1000,"player_level":12}}`)
	})
	mux.HandleFunc("/IPlayerService/GetSteamLevel/v1/", func(w http.ResponseWriter, r *http.Request) {
		check(r)
		if f.hideLevel {
			fmt.Fprint(w, `{"response":{}}`)
			return
		}
		fmt.Fprint(w, `{"response":{"player_level":12}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, f *fakeSteam) *Client {
	t.Helper()
	srv := f.server(t)
	c, err := NewClient("test-key", srv.URL, srv.Client())
	require.NoError(t, err)
	return c
}

func TestClient_FetchProfile(t *testing.T) {
	f := &fakeSteam{}
	c := newTestClient(t, f)

	p, err := c.FetchProfile(context.Background(), "Dipto9999")
	require.NoError(t, err)
	require.Equal(t, "76561198000000001", p.SteamID)
	require.Equal(t, int64(12), p.PlayerLevel)

	require.Equal(t, 3, p.Owned.Len())
	require.Equal(t, "The Elder Scrolls V: Skyrim", p.Owned.Row(0).Get("name").Text())
	require.Equal(t, "The Elder Scrolls V: Skyrim Special Edition", p.Owned.Row(1).Get("name").Text())
	require.True(t, table.Int(600).Equal(p.Owned.Row(0).Get("playtime_forever")))

	require.Equal(t, 0, p.Recent.Len())
	require.Equal(t, 1, p.Badges.Len())
	require.Equal(t, "9876543210123", p.Badges.Row(0).Get("communityitemid").String())

	require.LessOrEqual(t, f.appListCalls.Load(), int32(2))
	_ = c.Catalog(context.Background())
	calls := f.appListCalls.Load()
	_ = c.Catalog(context.Background())
	require.Equal(t, calls, f.appListCalls.Load(), "catalog is cached after the first load")
}

func TestClient_ResolveSteamID(t *testing.T) {
	c := newTestClient(t, &fakeSteam{})

	id, err := c.ResolveSteamID(context.Background(), "76561198000000099")
	require.NoError(t, err)
	require.Equal(t, "76561198000000099", id, "numeric ids skip the lookup")

	_, err = c.ResolveSteamID(context.Background(), "nobody")
	require.ErrorIs(t, err, coreerrors.ErrUserNotFound)
}

func TestClient_FetchProfileFailsOnEndpointError(t *testing.T) {
	c := newTestClient(t, &fakeSteam{failBadges: true})

	_, err := c.FetchProfile(context.Background(), "Dipto9999")
	require.Error(t, err)
	apiErr, ok := coreerrors.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.NotContains(t, err.Error(), "test-key")
}

func TestClient_HiddenLevelIsZero(t *testing.T) {
	c := newTestClient(t, &fakeSteam{hideLevel: true})
	level, err := c.Level(context.Background(), "76561198000000001")
	require.NoError(t, err)
	require.Zero(t, level)
}

func TestClient_TransportErrorHidesKey(t *testing.T) {
	c, err := NewClient("secret-key", "http://127.0.0.1:1", nil)
	require.NoError(t, err)

	_, err = c.Level(context.Background(), "76561198000000001")
	require.Error(t, err)
	require.NotContains(t, err.Error(), "secret-key")
	require.False(t, errors.Is(err, coreerrors.ErrNoBackup))
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(" ", "", nil)
	require.Error(t, err)
}
