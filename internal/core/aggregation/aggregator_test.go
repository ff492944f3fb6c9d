package aggregation

import (
	"testing"

	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/stretchr/testify/require"
)

func TestOperators_Merge(t *testing.T) {
	tests := []struct {
		name      string
		op        string
		primary   table.Value
		secondary table.Value
		want      table.Value
	}{
		{name: "sum ints", op: OpSum, primary: table.Int(10), secondary: table.Int(5), want: table.Int(15)},
		{name: "sum with null secondary", op: OpSum, primary: table.Int(10), secondary: table.Null, want: table.Int(10)},
		{name: "sum with null primary", op: OpSum, primary: table.Null, secondary: table.Int(4), want: table.Int(4)},
		{name: "sum floats", op: OpSum, primary: table.Float(1.5), secondary: table.Int(2), want: table.Float(3.5)},
		{name: "max keeps higher", op: OpMax, primary: table.Int(3), secondary: table.Int(7), want: table.Int(7)},
		{name: "max keeps primary", op: OpMax, primary: table.Int(9), secondary: table.Int(7), want: table.Int(9)},
		{name: "max null primary", op: OpMax, primary: table.Null, secondary: table.Int(7), want: table.Int(7)},
		{name: "average", op: OpAverage, primary: table.Int(2), secondary: table.Int(4), want: table.Float(3)},
		{name: "average odd", op: OpAverage, primary: table.Float(1.5), secondary: table.Float(2), want: table.Float(1.75)},
		{name: "average null secondary", op: OpAverage, primary: table.Float(2.5), secondary: table.Null, want: table.Float(2.5)},
		{name: "left wins", op: OpLeftWins, primary: table.String("Skyrim"), secondary: table.String("Skyrim SE"), want: table.String("Skyrim")},
		{name: "left wins null", op: OpLeftWins, primary: table.Null, secondary: table.String("x"), want: table.Null},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := Operators[tc.op]
			require.True(t, ok)
			got := m.Merge(tc.primary, tc.secondary)
			require.True(t, tc.want.Equal(got), "want %v (%s), got %v (%s)", tc.want, tc.want.Kind(), got, got.Kind())
		})
	}
}

func TestValidOperator(t *testing.T) {
	require.True(t, ValidOperator(OpSum))
	require.True(t, ValidOperator(OpLeftWins))
	require.False(t, ValidOperator("min"))
	require.False(t, ValidOperator(""))
}
