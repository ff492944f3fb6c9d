package stats

import "github.com/shopspring/decimal"

// round rounds half away from zero to places decimals.
func round(d decimal.Decimal, places int32) float64 {
	return d.Round(places).InexactFloat64()
}

func roundFloat(f float64, places int32) float64 {
	return round(decimal.NewFromFloat(f), places)
}
