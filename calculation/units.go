package calculation

import (
	"strings"

	"github.com/shopspring/decimal"
)

type UnitOfMeasure string

const (
	UnitLinearFeet UnitOfMeasure = "LF"
	UnitSquareFeet UnitOfMeasure = "SF"
	UnitCubicFeet  UnitOfMeasure = "CF"
	UnitEach       UnitOfMeasure = "EA"
	UnitPound      UnitOfMeasure = "LB"
	UnitTon        UnitOfMeasure = "TON"
	UnitGallon     UnitOfMeasure = "GAL"
	// UnitSquare is the roofing "square": 100 square feet.
	UnitSquare UnitOfMeasure = "SQ"
)

var AllUnitsOfMeasure = []UnitOfMeasure{
	UnitLinearFeet,
	UnitSquareFeet,
	UnitCubicFeet,
	UnitEach,
	UnitPound,
	UnitTon,
	UnitGallon,
	UnitSquare,
}

// ParseUnitOfMeasure matches case-insensitively and rejects unknown values
// with the exhaustive legal list.
func ParseUnitOfMeasure(s string) (UnitOfMeasure, error) {
	u := UnitOfMeasure(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllUnitsOfMeasure {
		if u == known {
			return u, nil
		}
	}
	return "", newCalculationError("unit", "invalid unit %q, must be one of: %s", s, joinUnits(AllUnitsOfMeasure))
}

func joinUnits(units []UnitOfMeasure) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = string(u)
	}
	return strings.Join(parts, ", ")
}

type conversionKey struct {
	from UnitOfMeasure
	to   UnitOfMeasure
}

// The table is one-directional on purpose. Reverse conversions must be added
// explicitly, not inferred.
var conversions = map[conversionKey]decimal.Decimal{
	// 1 SQ = 100 SF
	{UnitSquare, UnitSquareFeet}: decimal.NewFromInt(100),
	// Linear to area assuming 1 ft width
	{UnitLinearFeet, UnitSquareFeet}: decimal.NewFromInt(1),
}

// Convert converts value between units of measure. Identity conversion is
// always valid; any pair absent from the table fails.
func Convert(value float64, from, to UnitOfMeasure) (decimal.Decimal, error) {
	v := ToDecimal(value)
	if from == to {
		return v, nil
	}
	factor, ok := conversions[conversionKey{from, to}]
	if !ok {
		return decimal.Zero, newCalculationError("unit", "no conversion available from %s to %s", from, to)
	}
	return v.Mul(factor), nil
}
