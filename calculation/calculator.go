package calculation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pure construction formulas. Each validates its inputs before computing and
// returns a *CalculationError on violation. No shared state; safe for
// concurrent use.

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// FloorArea returns length * width in square feet, 2 places.
func FloorArea(lengthFt, widthFt float64) (decimal.Decimal, error) {
	if lengthFt <= 0 || widthFt <= 0 {
		return decimal.Zero, newCalculationError("", "length and width must be positive")
	}
	area := ToDecimal(lengthFt).Mul(ToDecimal(widthFt))
	return Round(area, MoneyPlaces), nil
}

// Volume returns length * width * height in cubic feet, 2 places.
func Volume(lengthFt, widthFt, heightFt float64) (decimal.Decimal, error) {
	if lengthFt <= 0 || widthFt <= 0 || heightFt <= 0 {
		return decimal.Zero, newCalculationError("", "dimensions must be positive")
	}
	volume := ToDecimal(lengthFt).Mul(ToDecimal(widthFt)).Mul(ToDecimal(heightFt))
	return Round(volume, MoneyPlaces), nil
}

// TakeoffTotalQty returns quantity * (1 + wastageFactor), 3 places.
// wastageFactor is a fraction: 0.10 means 10% overage.
func TakeoffTotalQty(quantity, wastageFactor float64) (decimal.Decimal, error) {
	if quantity < 0 {
		return decimal.Zero, newCalculationError("quantity", "quantity cannot be negative")
	}
	if wastageFactor < 0 || wastageFactor > 1 {
		return decimal.Zero, newCalculationError("wastage_factor", "wastage factor must be between 0 and 1")
	}
	total := ToDecimal(quantity).Mul(one.Add(ToDecimal(wastageFactor)))
	return Round(total, QuantityPlaces), nil
}

// TotalCost returns totalQty * unitCost, 2 places.
func TotalCost(totalQty, unitCost float64) (decimal.Decimal, error) {
	if totalQty < 0 || unitCost < 0 {
		return decimal.Zero, newCalculationError("", "quantity and cost cannot be negative")
	}
	total := ToDecimal(totalQty).Mul(ToDecimal(unitCost))
	return Round(total, MoneyPlaces), nil
}

// CostPerSqft returns totalCost / areaSqft, 2 places.
func CostPerSqft(totalCost, areaSqft float64) (decimal.Decimal, error) {
	if areaSqft <= 0 {
		return decimal.Zero, newCalculationError("area", "area must be positive")
	}
	if totalCost < 0 {
		return decimal.Zero, newCalculationError("cost", "cost cannot be negative")
	}
	perSqft := ToDecimal(totalCost).Div(ToDecimal(areaSqft))
	return Round(perSqft, MoneyPlaces), nil
}

// EarnedValue returns budget * (percentComplete / 100), 2 places.
func EarnedValue(budget, percentComplete float64) (decimal.Decimal, error) {
	if budget < 0 {
		return decimal.Zero, newCalculationError("budget", "budget cannot be negative")
	}
	if percentComplete < 0 || percentComplete > 100 {
		return decimal.Zero, newCalculationError("percent_complete", "percent complete must be between 0 and 100")
	}
	ev := ToDecimal(budget).Mul(ToDecimal(percentComplete).Div(hundred))
	return Round(ev, MoneyPlaces), nil
}

// CostVariance returns earnedValue - actualCost, 2 places.
// Positive = under budget, negative = over budget.
func CostVariance(earnedValue, actualCost float64) decimal.Decimal {
	cv := ToDecimal(earnedValue).Sub(ToDecimal(actualCost))
	return Round(cv, MoneyPlaces)
}

// ScheduleVarianceDays returns baselineEnd - actualEnd in whole days.
// Dates are ISO-8601 (YYYY-MM-DD). When actualEnd is empty, asOfDate is used;
// when asOfDate is empty too, today's date applies.
// Positive = ahead of schedule, negative = behind schedule.
func ScheduleVarianceDays(baselineEnd, actualEnd, asOfDate string) (int, error) {
	baseline, err := time.Parse("2006-01-02", baselineEnd)
	if err != nil {
		return 0, newCalculationError("baseline_end_date", "invalid date %q, expected YYYY-MM-DD", baselineEnd)
	}

	var actual time.Time
	switch {
	case actualEnd != "":
		actual, err = time.Parse("2006-01-02", actualEnd)
		if err != nil {
			return 0, newCalculationError("actual_end_date", "invalid date %q, expected YYYY-MM-DD", actualEnd)
		}
	case asOfDate != "":
		actual, err = time.Parse("2006-01-02", asOfDate)
		if err != nil {
			return 0, newCalculationError("as_of_date", "invalid date %q, expected YYYY-MM-DD", asOfDate)
		}
	default:
		now := time.Now().UTC()
		actual = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	return int(baseline.Sub(actual).Hours() / 24), nil
}
