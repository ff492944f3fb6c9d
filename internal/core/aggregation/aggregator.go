package aggregation

import (
	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/shopspring/decimal"
)

// Merger defines how a consolidation operator combines two cells.
// To add a new operator: implement this interface and register it in Operators.
type Merger interface {
	Merge(primary, secondary table.Value) table.Value
}

// Operators is the registry of all supported merge operators.
var Operators = map[string]Merger{
	OpSum:      sumMerge{},
	OpMax:      maxMerge{},
	OpAverage:  averageMerge{},
	OpLeftWins: leftWins{},
}

// ValidOperator reports whether op is a registered merge operator.
func ValidOperator(op string) bool {
	_, ok := Operators[op]
	return ok
}

// integral reports whether the merged result should stay an Int.
func integral(a, b table.Value) bool {
	return a.Kind() != table.KindFloat && b.Kind() != table.KindFloat
}

// sumMerge adds both values; Null counts as zero.
type sumMerge struct{}

func (sumMerge) Merge(p, s table.Value) table.Value {
	return DecimalValue(ValueDecimal(p).Add(ValueDecimal(s)), integral(p, s))
}

// maxMerge keeps the larger value; Null counts as zero.
type maxMerge struct{}

func (maxMerge) Merge(p, s table.Value) table.Value {
	return DecimalValue(decimal.Max(ValueDecimal(p), ValueDecimal(s)), integral(p, s))
}

// averageMerge takes the mean of both values. A Null secondary leaves the
// primary unchanged; a Null primary counts as zero.
type averageMerge struct{}

func (averageMerge) Merge(p, s table.Value) table.Value {
	if s.IsNull() {
		return p
	}
	mean := ValueDecimal(p).Add(ValueDecimal(s)).Div(decimal.NewFromInt(2))
	return DecimalValue(mean, false)
}

// leftWins keeps the primary value.
type leftWins struct{}

func (leftWins) Merge(p, _ table.Value) table.Value { return p }
