package calculation

import (
	"github.com/shopspring/decimal"
)

// Result scales. Every public calculation re-quantizes to one of these.
const (
	MoneyPlaces    = 2
	QuantityPlaces = 3
	RatioPlaces    = 4
)

// ToDecimal converts a numeric input to an exact decimal at the boundary.
// NewFromFloat uses the shortest decimal representation that round-trips,
// so a literal like 10.335 comes through as exactly 10.335, never the
// binary float approximation.
func ToDecimal(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// Round quantizes to the given number of places, ties away from zero:
// Round(10.335, 2) == 10.34.
func Round(value decimal.Decimal, places int) decimal.Decimal {
	return value.Round(int32(places))
}
