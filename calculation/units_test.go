package calculation

import (
	"errors"
	"strings"
	"testing"
)

func TestConvert_IdentityAlwaysSucceeds(t *testing.T) {
	for _, u := range AllUnitsOfMeasure {
		got, err := Convert(42.5, u, u)
		if err != nil {
			t.Fatalf("Convert(42.5, %s, %s) error: %v", u, u, err)
		}
		if got.String() != "42.5" {
			t.Fatalf("Convert(42.5, %s, %s) expected 42.5, got %s", u, u, got.String())
		}
	}
}

func TestConvert_TableLookups(t *testing.T) {
	got, err := Convert(5, UnitSquare, UnitSquareFeet)
	if err != nil {
		t.Fatalf("Convert(5, SQ, SF) error: %v", err)
	}
	if got.String() != "500" {
		t.Fatalf("Convert(5, SQ, SF) expected 500, got %s", got.String())
	}

	got, err = Convert(12, UnitLinearFeet, UnitSquareFeet)
	if err != nil {
		t.Fatalf("Convert(12, LF, SF) error: %v", err)
	}
	if got.String() != "12" {
		t.Fatalf("Convert(12, LF, SF) expected 12, got %s", got.String())
	}
}

func TestConvert_MissingPairFails(t *testing.T) {
	// The table is directed: SQ->SF exists, SF->SQ does not.
	_, err := Convert(500, UnitSquareFeet, UnitSquare)
	var calcErr *CalculationError
	if !errors.As(err, &calcErr) {
		t.Fatalf("Convert(SF, SQ) expected CalculationError, got %v", err)
	}
	if !strings.Contains(calcErr.Message, "SF") || !strings.Contains(calcErr.Message, "SQ") {
		t.Fatalf("error should name both units, got %q", calcErr.Message)
	}

	if _, err := Convert(1, UnitGallon, UnitTon); err == nil {
		t.Fatal("Convert(GAL, TON) expected error")
	}
}

func TestParseUnitOfMeasure(t *testing.T) {
	cases := []struct {
		in       string
		expected UnitOfMeasure
	}{
		{"LF", UnitLinearFeet},
		{"sf", UnitSquareFeet},
		{" ton ", UnitTon},
		{"Sq", UnitSquare},
	}
	for _, tc := range cases {
		got, err := ParseUnitOfMeasure(tc.in)
		if err != nil {
			t.Fatalf("ParseUnitOfMeasure(%q) error: %v", tc.in, err)
		}
		if got != tc.expected {
			t.Fatalf("ParseUnitOfMeasure(%q) expected %s, got %s", tc.in, tc.expected, got)
		}
	}

	_, err := ParseUnitOfMeasure("METER")
	if err == nil {
		t.Fatal("unknown unit expected error")
	}
	for _, u := range AllUnitsOfMeasure {
		if !strings.Contains(err.Error(), string(u)) {
			t.Fatalf("error should list every legal unit, missing %s: %q", u, err.Error())
		}
	}
}
