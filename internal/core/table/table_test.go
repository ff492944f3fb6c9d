package table

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTable_AppendKeepsSchemaUniform(t *testing.T) {
	tbl := New("id", "name")
	tbl.Append(Row{"id": Int(1), "name": String("a")})
	tbl.Append(Row{"id": Int(2), "genre": String("rock")})

	require.Equal(t, []string{"id", "name", "genre"}, tbl.Columns())
	require.Equal(t, 2, tbl.Len())

	first := tbl.Row(0)
	require.True(t, first.Get("genre").IsNull(), "older rows are back-filled with Null")

	second := tbl.Row(1)
	require.True(t, second.Get("name").IsNull(), "missing cells are Null, not zero")
	require.Len(t, second, 3)
}

func TestTable_FilterSortHead(t *testing.T) {
	tbl := New("id", "score")
	for i, score := range []int64{5, 9, 1, 7} {
		tbl.Append(Row{"id": Int(int64(i)), "score": Int(score)})
	}

	sorted := tbl.SortBy(func(a, b Row) bool {
		x, _ := a.Get("score").Int64()
		y, _ := b.Get("score").Int64()
		return x > y
	})
	top := sorted.Head(2)
	require.Equal(t, 2, top.Len())
	require.True(t, top.Row(0).Get("score").Equal(Int(9)))
	require.True(t, top.Row(1).Get("score").Equal(Int(7)))

	// original untouched
	require.True(t, tbl.Row(0).Get("score").Equal(Int(5)))

	filtered := tbl.Filter(func(r Row) bool { return r.Get("score").Float64Or(0) > 4 })
	require.Equal(t, 3, filtered.Len())
	require.Equal(t, 2, tbl.Head(2).Len())
	require.Equal(t, 4, tbl.Head(10).Len())
}

func TestTable_MarshalJSON(t *testing.T) {
	tbl := New("id", "image")
	tbl.Append(Row{"id": String("x")})

	data, err := json.Marshal(tbl)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"x","image":null}]`, string(data))

	var empty *Table
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{in: "", want: Null},
		{in: "42", want: Int(42)},
		{in: "-3", want: Int(-3)},
		{in: "2.5", want: Float(2.5)},
		{in: "007", want: String("007")},
		{in: "Skyrim", want: String("Skyrim")},
		{in: "2022-01-15", want: String("2022-01-15")},
		{in: "NaN", want: String("NaN")},
		{in: "+Inf", want: String("+Inf")},
		{in: "-Inf", want: String("-Inf")},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			require.True(t, tc.want.Equal(Parse(tc.in)), "got %v", Parse(tc.in))
		})
	}
}

func TestValue_Timestamp(t *testing.T) {
	want := time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)

	got, ok := String("2022-01-15").Timestamp()
	require.True(t, ok)
	require.True(t, want.Equal(got))

	got, ok = String("2022-01-15T00:00:00Z").Timestamp()
	require.True(t, ok)
	require.True(t, want.Equal(got))

	got, ok = Int(want.Unix()).Timestamp()
	require.True(t, ok)
	require.True(t, want.Equal(got))

	_, ok = Null.Timestamp()
	require.False(t, ok)
	_, ok = Int(0).Timestamp()
	require.False(t, ok)
	_, ok = String("not a date").Timestamp()
	require.False(t, ok)
}

func TestFromAny(t *testing.T) {
	require.True(t, FromAny(float64(72850)).Equal(Int(72850)))
	require.True(t, FromAny(1.5).Equal(Float(1.5)))
	require.True(t, FromAny(nil).IsNull())
	require.True(t, FromAny("a").Equal(String("a")))
	require.True(t, FromAny(json.Number("12")).Equal(Int(12)))
}

func TestValue_JSONRoundTrip(t *testing.T) {
	row := Row{"a": Int(1), "b": Float(0.5), "c": String("x"), "d": Null}
	data, err := json.Marshal(row)
	require.NoError(t, err)

	var back Row
	require.NoError(t, json.Unmarshal(data, &back))
	for k, v := range row {
		require.True(t, v.Equal(back[k]), "column %s", k)
	}
}

func TestValue_MarshalNonFiniteFloat(t *testing.T) {
	row := Row{"nan": Float(math.NaN()), "inf": Float(math.Inf(1)), "ok": Float(1.5)}
	data, err := json.Marshal(row)
	require.NoError(t, err)
	require.JSONEq(t, `{"nan":null,"inf":null,"ok":1.5}`, string(data))
}

func TestTable_WithTextColumns(t *testing.T) {
	tbl := New("track", "duration_ms", "album")
	tbl.Append(Row{"track": Int(505), "duration_ms": Int(253000), "album": Float(1.5)})
	tbl.Append(Row{"track": String("Skyrim"), "duration_ms": Int(1000)})

	got := tbl.WithTextColumns("track", "album", "missing")

	require.Equal(t, []string{"track", "duration_ms", "album"}, got.Columns())
	require.True(t, got.Row(0).Get("track").Equal(String("505")))
	require.True(t, got.Row(0).Get("album").Equal(String("1.5")))
	require.True(t, got.Row(0).Get("duration_ms").Equal(Int(253000)), "numeric columns keep their type")
	require.True(t, got.Row(1).Get("album").IsNull(), "Null stays Null")

	// original untouched
	require.True(t, tbl.Row(0).Get("track").Equal(Int(505)))
}
