package aggregation

import (
	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/shopspring/decimal"
)

// ExtractDecimal pulls a numeric value from the row by column name.
// Returns decimal.Zero if the column is missing, Null, or not numeric.
func ExtractDecimal(row table.Row, field string) decimal.Decimal {
	if field == "" {
		return decimal.Zero
	}
	return ValueDecimal(row.Get(field))
}

// ValueDecimal converts a single cell to a decimal; absent or non-numeric
// cells become decimal.Zero.
func ValueDecimal(v table.Value) decimal.Decimal {
	switch v.Kind() {
	case table.KindInt:
		i, _ := v.Int64()
		return decimal.NewFromInt(i)
	case table.KindFloat:
		f, _ := v.Float64()
		return decimal.NewFromFloat(f)
	case table.KindString:
		d, err := decimal.NewFromString(v.Text())
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}

// DecimalValue converts d back into a cell. Integral results stay Int when
// asInt is set; everything else becomes Float.
func DecimalValue(d decimal.Decimal, asInt bool) table.Value {
	if asInt && d.IsInteger() {
		return table.Int(d.IntPart())
	}
	return table.Float(d.InexactFloat64())
}

// HoursFromMillis converts a millisecond total to hours.
func HoursFromMillis(ms decimal.Decimal) decimal.Decimal {
	return ms.Div(decimal.NewFromInt(3_600_000))
}

// HoursFromMinutes converts a minute total to hours.
func HoursFromMinutes(min decimal.Decimal) decimal.Decimal {
	return min.Div(decimal.NewFromInt(60))
}
