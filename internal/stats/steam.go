package stats

import (
	"fmt"
	"log/slog"
	"time"

	coreagg "github.com/aevon-lab/mediadash/internal/core/aggregation"
	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/aevon-lab/mediadash/internal/providers/steam"
	"github.com/shopspring/decimal"
)

// SteamOptions tunes the Steam compiler.
type SteamOptions struct {
	TopN  int
	Rules []coreagg.ConsolidationRule
	Now   func() time.Time
}

func (o SteamOptions) withDefaults() SteamOptions {
	if o.TopN <= 0 {
		o.TopN = 15
	}
	if o.Rules == nil {
		o.Rules = []coreagg.ConsolidationRule{coreagg.SkyrimRule()}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// GameShare is one slice of the top-games pie.
type GameShare struct {
	AppID              string  `json:"appid"`
	Name               string  `json:"name"`
	PlaytimeHours      float64 `json:"playtime_forever"`
	PlaytimePercentage float64 `json:"playtime_percentage"`
}

// SteamStats is the headline summary of a run.
type SteamStats struct {
	GeneratedAt        time.Time   `json:"generated_at"`
	PlayerLevel        int64       `json:"player_level"`
	OwnedGames         int         `json:"owned_games"`
	PlayedGames        int         `json:"played_games"`
	TotalPlaytimeHours float64     `json:"total_playtime_hours"`
	TopGames           []GameShare `json:"top_games"`
	TopGamesHours      float64     `json:"top_games_hours"`
}

// SteamReport is everything derived from a Profile.
type SteamReport struct {
	Stats    SteamStats           `json:"stats"`
	Games    *table.Table         `json:"games"`
	Activity coreagg.GrowthSeries `json:"activity"`
}

// PrepareSteamTable builds the per-game stats table: badges are joined,
// duplicate catalog entries consolidated, playtime converted to hours, absent
// numeric cells zero-filled, and rows sorted by playtime descending.
func PrepareSteamTable(p steam.Profile, opts SteamOptions) *table.Table {
	opts = opts.withDefaults()
	if p.Owned.Empty() {
		return table.New(steam.GameColumns...)
	}

	games := steam.JoinBadges(p.Owned, p.Badges)
	games = games.Map(func(r table.Row) table.Row {
		r["player_level"] = table.Int(p.PlayerLevel)
		return r
	})

	games, merged := coreagg.ConsolidateAll(games, opts.Rules)
	if merged == 0 {
		slog.Debug("[Steam] No duplicate entries to consolidate")
	}

	games = games.Map(func(r table.Row) table.Row {
		minutes := coreagg.ExtractDecimal(r, "playtime_forever")
		r["playtime_forever"] = table.Float(round(coreagg.HoursFromMinutes(minutes), 2))
		return r
	})
	games = FillNumericNulls(games)
	return SortByPlaytime(games)
}

// SortByPlaytime orders games by playtime_forever, highest first.
func SortByPlaytime(games *table.Table) *table.Table {
	return games.SortBy(func(a, b table.Row) bool {
		return a.Get("playtime_forever").Float64Or(0) > b.Get("playtime_forever").Float64Or(0)
	})
}

// FillNumericNulls replaces Null with 0 in every column whose present values
// are all numeric. Text columns keep their Nulls.
func FillNumericNulls(t *table.Table) *table.Table {
	numeric := make(map[string]bool)
	for _, c := range t.Columns() {
		numeric[c] = true
		for _, v := range t.Column(c) {
			if !v.IsNull() && !v.IsNumeric() {
				numeric[c] = false
				break
			}
		}
	}
	return t.Map(func(r table.Row) table.Row {
		for c, isNum := range numeric {
			if isNum && r.Get(c).IsNull() {
				r[c] = table.Int(0)
			}
		}
		return r
	})
}

// CompileSteam derives the summary from a prepared stats table. The table may
// come from a live fetch or from a backup file.
func CompileSteam(games *table.Table, playerLevel int64, opts SteamOptions) (SteamReport, error) {
	opts = opts.withDefaults()

	var total decimal.Decimal
	played := 0
	for _, r := range games.Rows() {
		h := coreagg.ExtractDecimal(r, "playtime_forever")
		total = total.Add(h)
		if h.IsPositive() {
			played++
		}
	}

	top, topHours := TopGames(games, opts.TopN)
	stats := SteamStats{
		GeneratedAt:        opts.Now().UTC(),
		PlayerLevel:        playerLevel,
		OwnedGames:         games.Len(),
		PlayedGames:        played,
		TotalPlaytimeHours: round(total, 2),
		TopGames:           top,
		TopGamesHours:      topHours,
	}

	activity, err := coreagg.BuildGrowthSeries(games.Rows(), coreagg.GrowthOptions{
		TimeField:    "rtime_last_played",
		MeasureField: "playtime_forever",
		EntityField:  "appid",
		Granularity:  coreagg.GranularityYear,
	})
	if err != nil {
		return SteamReport{}, fmt.Errorf("steam activity growth: %w", err)
	}

	return SteamReport{Stats: stats, Games: games, Activity: activity}, nil
}

// TopGames returns the n games with the most playtime and each one's share of
// their combined playtime.
func TopGames(games *table.Table, n int) ([]GameShare, float64) {
	top := SortByPlaytime(games).Head(n)

	var total decimal.Decimal
	for _, r := range top.Rows() {
		total = total.Add(coreagg.ExtractDecimal(r, "playtime_forever"))
	}

	shares := make([]GameShare, 0, top.Len())
	for _, r := range top.Rows() {
		h := coreagg.ExtractDecimal(r, "playtime_forever")
		pct := decimal.Zero
		if total.IsPositive() {
			pct = h.Div(total).Mul(decimal.NewFromInt(100))
		}
		shares = append(shares, GameShare{
			AppID:              r.Get("appid").String(),
			Name:               r.Get("name").Text(),
			PlaytimeHours:      h.InexactFloat64(),
			PlaytimePercentage: round(pct, 2),
		})
	}
	return shares, round(total, 1)
}

// PlayerLevelFromTable reads the level stored on a backup table, 0 if absent.
func PlayerLevelFromTable(games *table.Table) int64 {
	if games.Empty() {
		return 0
	}
	level, _ := games.Row(0).Get("player_level").Int64()
	return level
}
