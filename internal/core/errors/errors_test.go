package errors

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestCheckResponse(t *testing.T) {
	require.NoError(t, CheckResponse(response(http.StatusOK, "{}"), "/v1/me/tracks"))
	require.NoError(t, CheckResponse(response(http.StatusNoContent, ""), "/v1/me/tracks"))

	err := CheckResponse(response(http.StatusUnauthorized, ` {"error":"invalid token"} `), "/v1/me/tracks")
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
	require.Contains(t, err.Error(), "invalid token")

	wrapped := fmt.Errorf("fetch saved tracks: %w", err)
	apiErr, ok := AsAPIError(wrapped)
	require.True(t, ok)
	require.Equal(t, "/v1/me/tracks", apiErr.Endpoint)
	require.True(t, apiErr.IsAuth())
	require.False(t, apiErr.IsRateLimited())
}

func TestAPIError_RateLimited(t *testing.T) {
	err := CheckResponse(response(http.StatusTooManyRequests, ""), "GetOwnedGames")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.True(t, apiErr.IsRateLimited())
	require.Equal(t, "GetOwnedGames: unexpected status 429", apiErr.Error())

	_, ok = AsAPIError(ErrNoBackup)
	require.False(t, ok)
}
