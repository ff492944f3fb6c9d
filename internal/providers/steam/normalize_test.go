package steam

import (
	"encoding/json"
	"testing"

	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecord_KeepsScalarsOnly(t *testing.T) {
	row := NormalizeRecord(map[string]interface{}{
		"appid":            json.Number("72850"),
		"playtime_forever": json.Number("600"),
		"has_stats":        true,
		"content_descriptorids": []interface{}{
			json.Number("2"),
		},
		"meta": map[string]interface{}{"a": 1},
	})
	require.True(t, table.Int(72850).Equal(row.Get("appid")))
	require.True(t, table.Int(600).Equal(row.Get("playtime_forever")))
	require.True(t, table.Int(1).Equal(row.Get("has_stats")))
	_, ok := row["content_descriptorids"]
	require.False(t, ok)
	_, ok = row["meta"]
	require.False(t, ok)
}

func TestRecordTable_FillsMissingColumns(t *testing.T) {
	tbl := RecordTable(GameColumns, []rawRecord{
		{"appid": json.Number("10"), "playtime_forever": json.Number("5")},
		{"appid": json.Number("20"), "playtime_windows_forever": json.Number("7")},
	})
	require.Equal(t, append(append([]string{}, GameColumns...), "playtime_windows_forever"), tbl.Columns())
	require.True(t, tbl.Row(0).Get("name").IsNull())
	require.True(t, tbl.Row(0).Get("playtime_windows_forever").IsNull())
	require.True(t, tbl.Row(1).Get("playtime_forever").IsNull())
}

func TestApplyCatalog(t *testing.T) {
	games := table.FromRows(GameColumns, []table.Row{
		{"appid": table.Int(72850)},
		{"appid": table.Int(10), "name": table.String("Counter-Strike (owned)")},
		{"appid": table.Int(99)},
	})
	out := ApplyCatalog(games, map[string]string{"72850": "The Elder Scrolls V: Skyrim", "10": "Counter-Strike"})

	require.Equal(t, "The Elder Scrolls V: Skyrim", out.Row(0).Get("name").Text())
	require.Equal(t, "Counter-Strike (owned)", out.Row(1).Get("name").Text(), "payload names win")
	require.True(t, out.Row(2).Get("name").IsNull())
	require.True(t, games.Row(0).Get("name").IsNull(), "input is not mutated")
}

func TestJoinBadges(t *testing.T) {
	games := table.FromRows(GameColumns, []table.Row{
		{"appid": table.Int(72850), "name": table.String("Skyrim"), "playtime_forever": table.Int(600)},
		{"appid": table.Int(10), "name": table.String("CS"), "playtime_forever": table.Int(60)},
	})
	badges := table.FromRows(BadgeColumns, []table.Row{
		{"appid": table.Int(72850), "badgeid": table.Int(1), "level": table.Int(2), "xp": table.Int(200), "scarcity": table.Int(1000)},
		{"appid": table.Int(72850), "badgeid": table.Int(1), "level": table.Int(5), "xp": table.Int(500), "scarcity": table.Int(900)},
		{"badgeid": table.Int(13), "level": table.Int(1), "xp": table.Int(100)},
	})

	out := JoinBadges(games, badges)
	require.Equal(t, 2, out.Len())
	require.Equal(t, []string{"appid", "name", "playtime_forever", "rtime_last_played", "img_icon_url",
		"badgeid", "level", "completion_time", "xp", "scarcity", "communityitemid"}, out.Columns())

	skyrim := out.Row(0)
	require.True(t, table.Int(5).Equal(skyrim.Get("level")))
	require.True(t, table.Int(500).Equal(skyrim.Get("xp")))
	require.True(t, table.Int(600).Equal(skyrim.Get("playtime_forever")))

	cs := out.Row(1)
	require.True(t, cs.Get("level").IsNull())
	require.True(t, cs.Get("xp").IsNull())

	require.Same(t, games, JoinBadges(games, table.New(BadgeColumns...)))
}
