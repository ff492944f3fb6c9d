package steam

import (
	"sort"

	"github.com/aevon-lab/mediadash/internal/core/table"
)

// Column layouts of the normalized tables. Extra numeric fields present in a
// payload are appended after these.
var (
	GameColumns  = []string{"appid", "name", "playtime_forever", "rtime_last_played", "img_icon_url"}
	BadgeColumns = []string{"appid", "badgeid", "level", "completion_time", "xp", "scarcity", "communityitemid"}

	// GameKeyColumn identifies a game across tables.
	GameKeyColumn = "appid"

	// GameTextColumns always hold strings, even for titles like "140".
	GameTextColumns = []string{"name", "img_icon_url"}
)

// NormalizeRecord keeps every scalar field of a raw game or badge object.
// Nested objects and arrays are dropped.
func NormalizeRecord(raw map[string]interface{}) table.Row {
	row := make(table.Row, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			continue
		}
		row[k] = table.FromAny(v)
	}
	return row
}

// RecordTable normalizes raw records under the given leading columns.
func RecordTable(columns []string, raws []rawRecord) *table.Table {
	t := table.New(columns...)
	for _, r := range raws {
		t.Append(NormalizeRecord(r))
	}
	return t
}

// ApplyCatalog fills missing game names from the app catalog, keyed by appid.
func ApplyCatalog(games *table.Table, catalog map[string]string) *table.Table {
	if len(catalog) == 0 {
		return games
	}
	return games.Map(func(r table.Row) table.Row {
		if r.Get("name").Text() != "" {
			return r
		}
		if name, ok := catalog[r.Get("appid").String()]; ok {
			r["name"] = table.String(name)
		}
		return r
	})
}

// JoinBadges left-joins badge columns onto games by appid. Columns the game
// row already has win. When a game has several badges the highest level is
// kept, so each game stays a single row.
func JoinBadges(games, badges *table.Table) *table.Table {
	if badges.Empty() {
		return games
	}

	best := make(map[string]table.Row)
	for _, b := range badges.Rows() {
		id := b.Get("appid").String()
		if id == "" {
			continue // community badges carry no appid
		}
		cur, ok := best[id]
		if !ok || b.Get("level").Float64Or(0) > cur.Get("level").Float64Or(0) {
			best[id] = b
		}
	}

	var extra []string
	for _, c := range badges.Columns() {
		if !games.HasColumn(c) {
			extra = append(extra, c)
		}
	}
	sort.SliceStable(extra, func(i, j int) bool { return badgeRank(extra[i]) < badgeRank(extra[j]) })

	out := table.New(append(games.Columns(), extra...)...)
	for _, g := range games.Rows() {
		row := g.Clone()
		if b, ok := best[g.Get("appid").String()]; ok {
			for _, c := range extra {
				row[c] = b.Get(c)
			}
		}
		out.Append(row)
	}
	return out
}

func badgeRank(c string) int {
	for i, bc := range BadgeColumns {
		if bc == c {
			return i
		}
	}
	return len(BadgeColumns)
}
