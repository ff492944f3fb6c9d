package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	coreerrors "github.com/aevon-lab/mediadash/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpotify struct {
	mu          sync.Mutex
	savedTotal  int
	offsets     []int
	tokenCalls  int
	failArtists bool
}

func (f *fakeSpotify) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "refresh-me", r.Form.Get("refresh_token"))
		f.mu.Lock()
		f.tokenCalls++
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"access-1","token_type":"Bearer","expires_in":3600}`)
	})

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer access-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/v1/me/player/recently-played", authed(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		writeItems(w, []map[string]interface{}{
			{"played_at": "2024-03-02T09:00:00Z", "track": trackJSON("r1", "Kesariya", 268000, "Arijit Singh")},
			{"played_at": "2024-03-01T09:00:00Z", "track": trackJSON("r2", "Chaleya", 200000, "Arijit Singh", "Shilpa Rao")},
		})
	}))
	mux.HandleFunc("/v1/me/top/tracks", authed(func(w http.ResponseWriter, r *http.Request) {
		rng := r.URL.Query().Get("time_range")
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		writeItems(w, []map[string]interface{}{trackJSON("top-"+rng, "Song "+rng, 180000, "Pritam")})
	}))
	mux.HandleFunc("/v1/me/top/artists", authed(func(w http.ResponseWriter, r *http.Request) {
		if f.failArtists {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeItems(w, []map[string]interface{}{{"id": "a1", "name": "Pritam", "genres": []string{"filmi"}, "external_urls": map[string]string{"spotify": "u"}}})
	}))
	mux.HandleFunc("/v1/me/tracks", authed(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		f.mu.Lock()
		f.offsets = append(f.offsets, offset)
		f.mu.Unlock()

		var items []map[string]interface{}
		for i := offset; i < offset+limit && i < f.savedTotal; i++ {
			items = append(items, map[string]interface{}{
				"added_at": fmt.Sprintf("2022-%02d-15T10:00:00Z", i%12+1),
				"track":    trackJSON(fmt.Sprintf("s%d", i), fmt.Sprintf("Saved %d", i), 200000, "Artist"),
			})
		}
		writeItems(w, items)
	}))
	return mux
}

func trackJSON(id, name string, duration int64, artists ...string) map[string]interface{} {
	as := make([]map[string]string, 0, len(artists))
	for _, a := range artists {
		as = append(as, map[string]string{"name": a})
	}
	return map[string]interface{}{
		"id":            id,
		"name":          name,
		"duration_ms":   duration,
		"album":         map[string]interface{}{"name": "Album " + name, "images": []interface{}{}},
		"artists":       as,
		"external_urls": map[string]string{"spotify": "https://open.spotify.com/track/" + id},
	}
}

func writeItems(w http.ResponseWriter, items []map[string]interface{}) {
	if items == nil {
		items = []map[string]interface{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
}

func newTestClient(t *testing.T, f *fakeSpotify) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(),
		Credentials{ClientID: "id", ClientSecret: "secret", RefreshToken: "refresh-me"},
		WithBaseURL(srv.URL),
		WithTokenURL(srv.URL+"/api/token"),
		WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return c
}

func TestClient_SavedTracksPaginates(t *testing.T) {
	f := &fakeSpotify{savedTotal: 53}
	c := newTestClient(t, f)

	saved, err := c.SavedTracks(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 53)
	require.Equal(t, []int{0, 50, 100}, f.offsets)
	require.Equal(t, "s52", saved[52].Track.ID)
}

func TestClient_FetchLibrary(t *testing.T) {
	f := &fakeSpotify{savedTotal: 100}
	c := newTestClient(t, f)

	lib, err := c.FetchLibrary(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, lib.Recent.Len())
	require.Equal(t, "Arijit Singh, Shilpa Rao", lib.Recent.Row(1).Get("artists").Text())
	require.Equal(t, "2024-03-02T09:00:00Z", lib.Recent.Row(0).Get("played_at").Text())
	for _, r := range TimeRanges {
		require.Equal(t, 1, lib.Tracks(r).Len())
		require.Equal(t, "top-"+string(r), lib.Tracks(r).Row(0).Get("id").Text())
		require.Equal(t, 1, lib.Artists(r).Len())
	}
	require.Equal(t, 100, lib.Saved.Len())
	require.Equal(t, SavedColumns, lib.Saved.Columns())
	require.Equal(t, 1, f.tokenCalls, "token is refreshed once and reused")
}

func TestClient_FetchLibraryFailsOnAnyEndpoint(t *testing.T) {
	f := &fakeSpotify{failArtists: true}
	c := newTestClient(t, f)

	_, err := c.FetchLibrary(context.Background())
	require.Error(t, err)

	apiErr, ok := coreerrors.AsAPIError(err)
	require.True(t, ok)
	require.True(t, apiErr.IsRateLimited())
	require.Equal(t, "/v1/me/top/artists", apiErr.Endpoint)
}

func TestClient_UnauthorizedWithoutToken(t *testing.T) {
	f := &fakeSpotify{}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	c := NewClientWithHTTP(srv.URL, srv.Client())
	_, err := c.RecentlyPlayed(context.Background(), RecentLimit)
	apiErr, ok := coreerrors.AsAPIError(err)
	require.True(t, ok)
	require.True(t, apiErr.IsAuth())
}

func TestCredentials_Validate(t *testing.T) {
	require.Error(t, Credentials{}.Validate())
	require.Error(t, Credentials{ClientID: "a", ClientSecret: "b"}.Validate())
	require.NoError(t, Credentials{ClientID: "a", ClientSecret: "b", RefreshToken: "c"}.Validate())

	_, err := NewClient(context.Background(), Credentials{ClientID: "a"})
	require.Error(t, err)
}
