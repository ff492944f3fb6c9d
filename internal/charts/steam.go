package charts

import (
	"fmt"

	coreagg "github.com/aevon-lab/mediadash/internal/core/aggregation"
	"github.com/aevon-lab/mediadash/internal/stats"
)

// PlaytimePie is the share of playtime across the top games, colored from
// SteamPalette in playtime order.
func PlaytimePie(top []stats.GameShare, topHours float64, width, height int) *Spec {
	title := fmt.Sprintf("Top %d Games", len(top))
	if len(top) == 0 {
		return NoData(title, "", width, height)
	}
	return &Spec{
		Title: &Title{
			Text:             title,
			Subtitle:         fmt.Sprintf("Total Playtime: %.1f Hours", topHours),
			Anchor:           "middle",
			FontSize:         20,
			SubtitleFontSize: 16,
		},
		Width:  width,
		Height: height,
		Data:   &Data{Values: top},
		Mark:   &Mark{Type: MarkArc, Stroke: "black", StrokeWidth: 1},
		Encoding: &Encoding{
			Theta: Field("playtime_percentage", Quantitative),
			Color: &Channel{
				Field: "name",
				Type:  Nominal,
				Scale: &Scale{Range: colorRange(SteamPalette)},
				Legend: &Legend{
					Orient:        "bottom",
					Direction:     "horizontal",
					Columns:       5,
					Title:         "",
					LabelFontSize: 10,
				},
				Sort: Hidden,
			},
			Tooltip: []Channel{
				Tip("name", Nominal, "Game", ""),
				Tip("playtime_forever", Quantitative, "Time (Hrs)", ".1f"),
				Tip("playtime_percentage", Quantitative, "Playtime (%)", ".2f"),
			},
		},
	}
}

// BigNumber renders a single metric in large type under a title.
func BigNumber(title string, value int64, width, height int) *Spec {
	return &Spec{
		Title:  &Title{Text: title, Anchor: "middle", FontSize: 20},
		Width:  width,
		Height: height,
		Data:   &Data{Values: []map[string]interface{}{{"Metric": title, "Value": value}}},
		Mark:   &Mark{Type: MarkText, Align: "center", Baseline: "middle", FontSize: 80, FontWeight: "bold", Color: Ink},
		Encoding: &Encoding{
			X:    &Channel{Field: "Metric", Type: Nominal, Axis: Hidden},
			Y:    Value(50),
			Text: Field("Value", Quantitative),
		},
	}
}

type activityRow struct {
	Year            string  `json:"year"`
	GamesPlayed     int64   `json:"games_played"`
	Hours           float64 `json:"hours"`
	CumulativeGames int64   `json:"cumulative_games"`
}

// LibraryActivity charts, per year, how many games were last played then.
func LibraryActivity(series coreagg.GrowthSeries, width, height int) *Spec {
	if series.Len() == 0 {
		return NoData("Library Activity", "", width, height)
	}
	rows := make([]activityRow, 0, series.Len())
	for _, b := range series.Buckets {
		rows = append(rows, activityRow{
			Year:            b.Bucket.Label,
			GamesPlayed:     b.Count,
			Hours:           b.Measure.Round(1).InexactFloat64(),
			CumulativeGames: b.CumulativeCount,
		})
	}
	return &Spec{
		Title:  &Title{Text: "Library Activity", Anchor: "start", FontSize: 18},
		Width:  width,
		Height: height,
		Data:   &Data{Values: rows},
		Mark:   &Mark{Type: MarkBar, Color: SteamPalette[0]},
		Encoding: &Encoding{
			X: &Channel{Field: "year", Type: Ordinal, Title: "Last Played"},
			Y: &Channel{Field: "games_played", Type: Quantitative, Title: "Games"},
			Tooltip: []Channel{
				Tip("year", Ordinal, "Year", ""),
				Tip("games_played", Quantitative, "Games", ""),
				Tip("hours", Quantitative, "Hours", ".1f"),
				Tip("cumulative_games", Quantitative, "Games To Date", ""),
			},
		},
	}
}

// SteamDashboard places the player stats beside the playtime pie, with the
// yearly activity chart underneath.
func SteamDashboard(username string, report stats.SteamReport) *Spec {
	s := report.Stats
	playerStats := &Spec{
		Title: &Title{Text: "Player Stats", Anchor: "middle", FontSize: 30},
		VConcat: []*Spec{
			BigNumber("Level", s.PlayerLevel, 300, 150),
			BigNumber("Played", int64(s.PlayedGames), 300, 150),
		},
	}

	return &Spec{
		Schema:  SchemaURL,
		Title:   &Title{Text: fmt.Sprintf("%s's Steam Dashboard", username), Anchor: "middle", FontSize: 40},
		Padding: Padding{Left: 250, Right: 250},
		VConcat: []*Spec{
			{HConcat: []*Spec{playerStats, PlaytimePie(s.TopGames, s.TopGamesHours, 700, 400)}},
			LibraryActivity(report.Activity, 1000, 200),
		},
		Config: &Config{
			View:   &ViewConfig{StrokeWidth: 1.5},
			Axis:   &FontConfig{LabelFontSize: 12, TitleFontSize: 16},
			Legend: &LegendConfig{LabelFontSize: 12, TitleFontSize: 16},
		},
	}
}
