package migrations

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSource_EmbedsRunsSchema(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	require.Equal(t, uint(1), first)

	up, ident, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	require.Equal(t, "create_runs", ident)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	require.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS runs")
	require.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS growth_buckets")

	down, _, err := src.ReadDown(first)
	require.NoError(t, err)
	defer down.Close()
}
