package aggregation

import (
	"testing"

	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestExtractDecimal(t *testing.T) {
	tests := []struct {
		name  string
		row   table.Row
		field string
		want  decimal.Decimal
	}{
		{name: "empty field name", row: table.Row{"value": table.Int(1)}, field: "", want: decimal.Zero},
		{name: "missing field", row: table.Row{"value": table.Int(1)}, field: "missing", want: decimal.Zero},
		{name: "null cell", row: table.Row{"value": table.Null}, field: "value", want: decimal.Zero},
		{name: "int", row: table.Row{"value": table.Int(180000)}, field: "value", want: decimal.NewFromInt(180000)},
		{name: "float", row: table.Row{"value": table.Float(12.5)}, field: "value", want: decimal.RequireFromString("12.5")},
		{name: "numeric string", row: table.Row{"value": table.String("3.75")}, field: "value", want: decimal.RequireFromString("3.75")},
		{name: "non numeric string", row: table.Row{"value": table.String("abc")}, field: "value", want: decimal.Zero},
		{name: "nil row", row: nil, field: "value", want: decimal.Zero},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractDecimal(tc.row, tc.field)
			require.True(t, tc.want.Equal(got), "want %s got %s", tc.want, got)
		})
	}
}

func TestHoursConversions(t *testing.T) {
	require.True(t, decimal.NewFromInt(1).Equal(HoursFromMillis(decimal.NewFromInt(3_600_000))))
	require.Equal(t, "0.25", HoursFromMillis(decimal.NewFromInt(900_000)).String())
	require.Equal(t, "2.5", HoursFromMinutes(decimal.NewFromInt(150)).String())
}

func TestDecimalValue(t *testing.T) {
	require.True(t, table.Int(15).Equal(DecimalValue(decimal.NewFromInt(15), true)))
	require.True(t, table.Float(15).Equal(DecimalValue(decimal.NewFromInt(15), false)))
	require.True(t, table.Float(1.5).Equal(DecimalValue(decimal.RequireFromString("1.5"), true)))
}
