package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aevon-lab/mediadash/internal/charts"
	"github.com/aevon-lab/mediadash/internal/stats"
	"github.com/stretchr/testify/require"
)

func samplePie() *charts.Spec {
	return charts.PieOnly([]stats.ArtistShare{
		{Artist: "Arijit Singh", Rank: 1, Hours: 1.2, Weight: 4320000, Pct: 60, LegendLabel: "Arijit Singh (1.2h)"},
		{Artist: "Pritam", Rank: 2, Hours: 0.8, Weight: 2880000, Pct: 40, LegendLabel: "Pritam (0.8h)"},
	})
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, samplePie()))

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, charts.SchemaURL, out["$schema"])
	require.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestHTML_EmbedsSpec(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, samplePie()))

	page := buf.String()
	require.Contains(t, page, "<title>Top Artists</title>")
	require.Contains(t, page, "vega-embed@6")
	require.Contains(t, page, `vegaEmbed("#vis"`)
	require.Contains(t, page, "Arijit Singh (1.2h)")
	require.Contains(t, page, "vega-lite/v5.json")
}

func TestHTML_EscapesTitle(t *testing.T) {
	spec := &charts.Spec{Title: &charts.Title{Text: "<script>alert(1)</script>'s Dashboard"}}
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, spec))
	require.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestStatic(t *testing.T) {
	empty := charts.PieOnly(nil)
	bars := charts.LibraryGrowth([]stats.GrowthPoint{
		{YearMonth: "2022-01", TracksAdded: 2, HoursAdded: 0.1},
		{YearMonth: "2023-06", TracksAdded: 1, HoursAdded: 0.07},
	}, 600, 200)

	tests := []struct {
		name string
		spec *charts.Spec
	}{
		{name: "pie", spec: samplePie()},
		{name: "bar", spec: bars},
		{name: "placeholder", spec: empty},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var png bytes.Buffer
			require.NoError(t, PNG(&png, tc.spec))
			require.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

			var svg bytes.Buffer
			require.NoError(t, SVG(&svg, tc.spec))
			require.Contains(t, svg.String(), "<svg")
		})
	}
}

func TestExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Charts")
	e := NewExporter(dir)

	paths, err := e.Export("alice_Dashboard", samplePie())
	require.NoError(t, err)
	require.Len(t, paths, len(AllFormats))
	for _, f := range AllFormats {
		info, err := os.Stat(filepath.Join(dir, "alice_Dashboard."+string(f)))
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}

	paths, err = e.Export("alice_PieOnly", samplePie(), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "alice_PieOnly.json")}, paths)
}

func TestExporter_UnknownFormat(t *testing.T) {
	e := NewExporter(t.TempDir())
	paths, err := e.Export("x", samplePie(), FormatJSON, Format("gif"))
	require.Error(t, err)
	require.Len(t, paths, 1)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PNG ")
	require.NoError(t, err)
	require.Equal(t, FormatPNG, f)

	_, err = ParseFormat("gif")
	require.Error(t, err)
}
