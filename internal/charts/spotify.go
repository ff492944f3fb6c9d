package charts

import (
	"fmt"

	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/aevon-lab/mediadash/internal/providers/spotify"
	"github.com/aevon-lab/mediadash/internal/stats"
)

// Layout selects the arrangement of the Spotify dashboard panels.
type Layout string

const (
	LayoutStandard  Layout = "standard"
	LayoutPortrait  Layout = "portrait"
	LayoutLandscape Layout = "landscape"
	LayoutTablet    Layout = "tablet"
)

// Layouts lists every layout in export order.
var Layouts = []Layout{LayoutStandard, LayoutPortrait, LayoutLandscape, LayoutTablet}

// Name is the capitalized form used in exported file names.
func (l Layout) Name() string {
	switch l {
	case LayoutPortrait:
		return "Portrait"
	case LayoutLandscape:
		return "Landscape"
	case LayoutTablet:
		return "Tablet"
	default:
		return "Standard"
	}
}

const lastPlayedLayout = "Jan 02, 2006 at 15:04 UTC"

// AnnualStats shows the extrapolated listening hours and the long-term
// song and artist counts.
func AnnualStats(s stats.SpotifyStats, width, height int) *Spec {
	type line struct {
		Line int    `json:"line"`
		Text string `json:"text"`
		Tip  string `json:"tip"`
	}
	values := []line{
		{Line: 0, Text: fmt.Sprintf("%.1f Hrs Listened", s.TotalHours), Tip: fmt.Sprintf("%.1f hrs estimated annual listening", s.TotalHours)},
		{Line: 1, Text: fmt.Sprintf("%d songs | %d Artists", s.NSongs, s.NArtists), Tip: "Unique tracks and artists in your long-term top lists"},
	}

	return &Spec{
		Title:  &Title{Text: "Annual Stats", Anchor: "start", FontSize: 20},
		Width:  width,
		Height: height,
		Data:   &Data{Values: values},
		Mark:   &Mark{Type: MarkText, Align: "center", Baseline: "middle", FontSize: 22, FontWeight: "bold", Color: SpotifyGreen},
		Encoding: &Encoding{
			Y:       &Channel{Field: "line", Type: Ordinal, Title: Hidden, Axis: Hidden, Sort: "ascending"},
			Text:    Field("text", Nominal),
			Tooltip: []Channel{Tip("tip", Nominal, "", "")},
		},
	}
}

// LastPlayed shows the most recent play with its UTC date and time.
func LastPlayed(recent *table.Table, s stats.SpotifyStats, width, height int) *Spec {
	title, when := "No recent plays", ""
	if !recent.Empty() {
		first := recent.Row(0)
		title = truncate(first.Get("track").Text(), 30, "…")

		at := first.Get("played_at")
		if s.LastPlayedAt != nil {
			at = table.String(*s.LastPlayedAt)
		}
		if ts, ok := at.Timestamp(); ok {
			when = ts.UTC().Format(lastPlayedLayout)
		}
	}

	values := []map[string]string{{"title": title, "time": when}}
	x, y := Value(width-10), Value(height/2)
	return &Spec{
		Title:  &Title{Text: "Last Played", Anchor: "end", FontSize: 20},
		Width:  width,
		Height: height,
		Data:   &Data{Values: values},
		Layer: []*Spec{
			{
				Mark:     &Mark{Type: MarkText, Align: "right", Baseline: "middle", FontSize: 16, FontWeight: "bold", Color: SpotifyGreen, Dy: -12},
				Encoding: &Encoding{X: x, Y: y, Text: Field("title", Nominal)},
			},
			{
				Mark:     &Mark{Type: MarkText, Align: "right", Baseline: "middle", FontSize: 12, Color: "#555", Dy: 10},
				Encoding: &Encoding{X: x, Y: y, Text: Field("time", Nominal)},
			},
		},
	}
}

// SectionTitle is a centered heading spanning the dashboard.
func SectionTitle(text string, width, height int) *Spec {
	return &Spec{
		Width:  width,
		Height: height,
		Data:   &Data{Values: []map[string]string{{"t": text}}},
		Mark:   &Mark{Type: MarkText, Align: "center", Baseline: "middle", FontSize: 24, FontWeight: "bold", Color: Ink},
		Encoding: &Encoding{
			X:    Value(width / 2),
			Y:    Value(height / 2),
			Text: Field("t", Nominal),
		},
	}
}

func spacer(height int) *Spec {
	return &Spec{
		Width:    10,
		Height:   height,
		Data:     &Data{Values: []map[string]int{{"x": 0}}},
		Mark:     &Mark{Type: MarkText},
		Encoding: &Encoding{X: Value(0), Text: Value("")},
	}
}

type songRow struct {
	Rank      int    `json:"rank"`
	Song      string `json:"song"`
	Artist    string `json:"artist"`
	YPos      int    `json:"y_pos"`
	FullTrack string `json:"full_track,omitempty"`
}

// TopSongs lists the first n tracks as a ranked text table.
func TopSongs(tracks *table.Table, n, width, height int) *Spec {
	rows := []songRow{{Rank: 1, Song: "No data"}}
	if !tracks.Empty() {
		rows = rows[:0]
		for i, t := range tracks.Head(n).Rows() {
			name, artists := t.Get("track").Text(), t.Get("artists").Text()
			rows = append(rows, songRow{
				Rank:      i + 1,
				Song:      truncate(name, 28, "…"),
				Artist:    truncate(artists, 26, "…"),
				YPos:      i,
				FullTrack: fmt.Sprintf("%s by %s", name, artists),
			})
		}
	}

	yPos := func(lo, hi int) *Channel {
		return &Channel{Field: "y_pos", Type: Ordinal, Title: Hidden, Axis: Hidden, Scale: &Scale{Range: []interface{}{lo, hi}}}
	}
	return &Spec{
		Title:  &Title{Text: "Top Songs", Anchor: "start", FontSize: 20},
		Width:  width,
		Height: height,
		Data:   &Data{Values: rows},
		Layer: []*Spec{
			{
				Mark:     &Mark{Type: MarkText, Align: "center", Baseline: "middle", FontSize: 14, FontWeight: "bold", Color: Muted},
				Encoding: &Encoding{X: Value(25), Y: yPos(30, height-30), Text: Field("rank", Ordinal)},
			},
			{
				Mark: &Mark{Type: MarkText, Align: "left", Baseline: "middle", FontSize: 13, FontWeight: "bold", Color: SpotifyGreen},
				Encoding: &Encoding{
					X: Value(50), Y: yPos(30, height-30), Text: Field("song", Nominal),
					Tooltip: []Channel{Tip("full_track", Nominal, "Track", "")},
				},
			},
			{
				Mark:     &Mark{Type: MarkText, Align: "left", Baseline: "middle", FontSize: 11, Color: Subtle, Dy: 15},
				Encoding: &Encoding{X: Value(50), Y: yPos(30, height-30), Text: Field("artist", Nominal)},
			},
		},
	}
}

// TopArtistsPie is the share of estimated listening per top artist. The
// legend carries each artist's hours.
func TopArtistsPie(shares []stats.ArtistShare, width, height int) *Spec {
	if len(shares) == 0 {
		return NoData("Top Artists", "", width, height)
	}
	inner := 0
	return &Spec{
		Title:  &Title{Text: "Top Artists", Anchor: "start", FontSize: 20},
		Width:  width,
		Height: height,
		Data:   &Data{Values: shares},
		Mark:   &Mark{Type: MarkArc, InnerRadius: &inner, OuterRadius: 140, Stroke: "white", StrokeWidth: 2},
		Encoding: &Encoding{
			Theta: &Channel{Field: "weight", Type: Quantitative, Stack: true},
			Color: &Channel{
				Field:  "legend_label",
				Type:   Nominal,
				Scale:  &Scale{Scheme: "category10"},
				Legend: &Legend{Orient: "right", Title: "Artist (Hours)", LabelLimit: 150, SymbolSize: 60},
				Sort:   Hidden,
			},
			Tooltip: []Channel{
				Tip("artist", Nominal, "Artist", ""),
				Tip("hours", Quantitative, "Est. Hours", ".1f"),
				Tip("pct", Quantitative, "Share %", ".1f"),
			},
		},
	}
}

// LibraryGrowth charts tracks added to the library per month.
func LibraryGrowth(timeline []stats.GrowthPoint, width, height int) *Spec {
	if len(timeline) == 0 {
		return NoData("Music Discovery Timeline", "No saved tracks timeline data", width, height)
	}
	return &Spec{
		Title:  &Title{Text: "Music Discovery Timeline", Anchor: "start", FontSize: 18},
		Width:  width,
		Height: height,
		Data:   &Data{Values: timeline},
		Mark:   &Mark{Type: MarkBar, Color: SpotifyGreen},
		Encoding: &Encoding{
			X: &Channel{Field: "year_month", Type: Temporal, Title: "Month", Axis: &Axis{LabelAngle: -45}},
			Y: &Channel{Field: "tracks_added", Type: Quantitative, Title: "Tracks Added"},
			Tooltip: []Channel{
				Tip("year_month", Nominal, "Month", ""),
				Tip("tracks_added", Quantitative, "Tracks Added", ""),
				Tip("hours_added", Quantitative, "Hours Added", ".1f"),
			},
		},
	}
}

type comparisonRow struct {
	Artist string `json:"artist"`
	Rank   int    `json:"rank"`
	Count  int    `json:"count"`
	Type   string `json:"type"`
}

// SavedVsTop plots the most-saved artists against the current long-term top
// artists. Top artists are scored n, n-1, ... by rank.
func SavedVsTop(saved []stats.ArtistCount, topArtists *table.Table, n, width, height int) *Spec {
	top := topArtists.Head(n)
	if len(saved) == 0 && top.Empty() {
		return NoData("Saved vs Current Preferences", "No comparison data", width, height)
	}

	var rows []comparisonRow
	for i, a := range saved {
		if i >= n {
			break
		}
		rows = append(rows, comparisonRow{Artist: truncate(a.Artist, 20, "..."), Rank: i + 1, Count: a.SavedTracksCount, Type: "Saved Library"})
	}
	for i, a := range top.Rows() {
		rows = append(rows, comparisonRow{Artist: truncate(a.Get("name").Text(), 20, "..."), Rank: i + 1, Count: n - i, Type: "Current Top"})
	}

	return &Spec{
		Title:  &Title{Text: "Saved vs Current Preferences", Anchor: "start", FontSize: 18},
		Width:  width,
		Height: height,
		Data:   &Data{Values: rows},
		Mark:   &Mark{Type: MarkCircle, Size: 100},
		Encoding: &Encoding{
			X:     &Channel{Field: "rank", Type: Ordinal, Title: "Rank"},
			Y:     &Channel{Field: "count", Type: Quantitative, Title: "Score/Count"},
			Color: &Channel{Field: "type", Type: Nominal, Scale: &Scale{Range: colorRange([]string{SpotifyGreen, Accent})}},
			Tooltip: []Channel{
				Tip("artist", Nominal, "", ""),
				Tip("rank", Ordinal, "", ""),
				Tip("count", Quantitative, "", ""),
				Tip("type", Nominal, "", ""),
			},
		},
	}
}

// SpotifyDashboard assembles every Spotify panel in the given layout.
func SpotifyDashboard(username string, lib spotify.Library, report stats.SpotifyReport, topN int, layout Layout) *Spec {
	if topN <= 0 {
		topN = 10
	}
	annual := AnnualStats(report.Stats, 280, 140)
	last := LastPlayed(lib.Recent, report.Stats, 280, 140)
	favorites := SectionTitle("Favorites", 600, 44)
	songs := TopSongs(lib.Tracks(spotify.LongTerm), topN, 380, 320)
	pie := TopArtistsPie(report.ArtistShares, 380, 320)
	library := SectionTitle("Library", 600, 44)
	growth := LibraryGrowth(report.Library.GrowthTimeline, 600, 200)
	compare := SavedVsTop(report.Library.TopSavedArtists, lib.Artists(spotify.LongTerm), topN, 380, 320)

	titleSize := 28
	var rows []*Spec
	switch layout {
	case LayoutPortrait:
		rows = []*Spec{annual, last, favorites, songs, pie, library, growth, compare}
	case LayoutLandscape:
		rows = []*Spec{
			{HConcat: []*Spec{annual, last}},
			favorites,
			{HConcat: []*Spec{songs, pie, compare}},
			library,
			growth,
		}
	default:
		if layout == LayoutStandard || layout == "" {
			titleSize = 36
		}
		rows = []*Spec{
			{HConcat: []*Spec{annual, last}},
			favorites,
			spacer(24),
			{HConcat: []*Spec{songs, pie}},
			library,
			growth,
			compare,
		}
	}

	return &Spec{
		Schema:  SchemaURL,
		Title:   &Title{Text: fmt.Sprintf("%s's Spotify Dashboard", username), Anchor: "middle", FontSize: titleSize},
		Padding: Padding{Left: 30, Right: 30, Top: 20, Bottom: 20},
		Spacing: 20,
		Center:  true,
		VConcat: rows,
		Config: &Config{
			View:   &ViewConfig{StrokeWidth: 0.5, StrokeOpacity: 0.3},
			Axis:   &FontConfig{LabelFontSize: 11, TitleFontSize: 14},
			Legend: &LegendConfig{LabelFontSize: 10, TitleFontSize: 12, LabelLimit: 120},
		},
	}
}

// PieOnly is the standalone top-artists pie embedded by the web front end.
func PieOnly(shares []stats.ArtistShare) *Spec {
	pie := TopArtistsPie(shares, 380, 320)
	pie.Schema = SchemaURL
	pie.Padding = 20
	pie.Config = &Config{Legend: &LegendConfig{LabelFontSize: 11, TitleFontSize: 12}}
	return pie
}
