package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", s, err)
	}
	return d
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestMaterialComputeTotals(t *testing.T) {
	m := &MaterialLineItem{
		Quantity:      mustDecimal(t, "100"),
		WastageFactor: mustDecimal(t, "0.10"),
		UnitCost:      mustDecimal(t, "5.50"),
	}
	if err := m.ComputeTotals(); err != nil {
		t.Fatalf("ComputeTotals error: %v", err)
	}
	if m.TotalQty.StringFixed(3) != "110.000" {
		t.Fatalf("expected total_qty 110.000, got %s", m.TotalQty.StringFixed(3))
	}
	if m.TotalCost.StringFixed(2) != "605.00" {
		t.Fatalf("expected total_cost 605.00, got %s", m.TotalCost.StringFixed(2))
	}
}

func TestMaterialComputeTotals_RejectsBadWastage(t *testing.T) {
	m := &MaterialLineItem{
		Quantity:      mustDecimal(t, "100"),
		WastageFactor: mustDecimal(t, "1.5"),
		UnitCost:      mustDecimal(t, "5.50"),
	}
	if err := m.ComputeTotals(); err == nil {
		t.Fatal("wastage factor above 1 expected error")
	}
}

func TestScheduleMilestoneVarianceDays(t *testing.T) {
	baseline := mustDate(t, "2024-12-31")
	actual := mustDate(t, "2024-12-25")

	ms := &ScheduleMilestone{
		BaselineEndDate: baseline,
		ActualEndDate:   &actual,
	}
	days, err := ms.VarianceDays("")
	if err != nil {
		t.Fatalf("VarianceDays error: %v", err)
	}
	if days != 6 {
		t.Fatalf("expected variance 6 days, got %d", days)
	}

	// No actual end yet: variance runs against the as-of date.
	ms.ActualEndDate = nil
	days, err = ms.VarianceDays("2025-01-05")
	if err != nil {
		t.Fatalf("VarianceDays error: %v", err)
	}
	if days != -5 {
		t.Fatalf("expected variance -5 days, got %d", days)
	}
}
