package importer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/buildsite_backend/models"
)

const validMaterialsCSV = `category,description,quantity,unit,unit_cost,wastage_factor,vendor
FRAMING,2x4 studs,500,EA,3.25,0.10,Acme Lumber
CONCRETE,Foundation mix,12.5,EA,145.00,,
ROOFING,Architectural shingles,24,SQ,98.50,0.05,Top Roof Supply
`

func TestMaterialParseCSV_ValidBatch(t *testing.T) {
	imp := &MaterialImporter{}
	materials, err := imp.ParseCSV(validMaterialsCSV, "proj-1")
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}
	if len(materials) != 3 {
		t.Fatalf("expected 3 materials, got %d", len(materials))
	}
	if len(imp.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", imp.Warnings)
	}

	first := materials[0]
	if first.ProjectId != "proj-1" {
		t.Fatalf("expected project id proj-1, got %s", first.ProjectId)
	}
	if first.Category != models.MaterialCategoryFraming {
		t.Fatalf("expected FRAMING, got %s", first.Category)
	}
	if first.Quantity.String() != "500" {
		t.Fatalf("expected quantity 500, got %s", first.Quantity)
	}
	if first.WastageFactor.String() != "0.1" {
		t.Fatalf("expected wastage 0.1, got %s", first.WastageFactor)
	}
	if first.Vendor == nil || *first.Vendor != "Acme Lumber" {
		t.Fatalf("expected vendor Acme Lumber, got %v", first.Vendor)
	}
	if materials[1].Vendor != nil {
		t.Fatal("blank vendor must stay nil")
	}
}

func TestMaterialParseCSV_MissingHeadersFailWholeBatch(t *testing.T) {
	csvContent := "category,description\nFRAMING,2x4 studs\n"
	imp := &MaterialImporter{}
	materials, err := imp.ParseCSV(csvContent, "proj-1")
	if materials != nil {
		t.Fatal("header failure must not return rows")
	}

	var impErr *ImportError
	if !errors.As(err, &impErr) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if len(impErr.MissingHeaders) != 3 {
		t.Fatalf("expected 3 missing headers, got %v", impErr.MissingHeaders)
	}
	for _, h := range []string{"quantity", "unit", "unit_cost"} {
		if !strings.Contains(err.Error(), h) {
			t.Fatalf("error should name missing header %s: %q", h, err.Error())
		}
	}
	if impErr.SuccessCount != 0 || impErr.FailureCount != 0 {
		t.Fatal("no rows may be processed on a header failure")
	}
}

func TestMaterialParseCSV_CollectsAllRowErrors(t *testing.T) {
	// Row 3 has an invalid category, row 5 a negative quantity.
	csvContent := `category,description,quantity,unit,unit_cost
FRAMING,Studs,100,EA,3.25
LUMBER,Bad category,10,EA,1.00
CONCRETE,Mix,5,EA,140.00
FRAMING,Bad quantity,-4,EA,2.00
`
	imp := &MaterialImporter{}
	materials, err := imp.ParseCSV(csvContent, "proj-1")

	// All-or-nothing at the parse stage: valid rows are counted but not
	// returned once any row has failed.
	if materials != nil {
		t.Fatal("parse with row errors must not return rows")
	}

	var impErr *ImportError
	if !errors.As(err, &impErr) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if impErr.FailureCount != 2 {
		t.Fatalf("expected exactly 2 row errors, got %d", impErr.FailureCount)
	}
	if impErr.SuccessCount != 2 {
		t.Fatalf("expected 2 valid rows counted, got %d", impErr.SuccessCount)
	}
	if impErr.SuccessCount+impErr.FailureCount != 4 {
		t.Fatal("success and failure counts must sum to total rows")
	}
	if impErr.RowErrors[0].Row != 3 || impErr.RowErrors[1].Row != 5 {
		t.Fatalf("expected errors on rows 3 and 5, got %v", impErr.RowErrors)
	}
	if !strings.Contains(impErr.RowErrors[0].Message, "FRAMING") {
		t.Fatalf("category error should list legal values: %q", impErr.RowErrors[0].Message)
	}
}

func TestMaterialParseCSV_SoftInvalidWastageWarnsAndDefaults(t *testing.T) {
	csvContent := `category,description,quantity,unit,unit_cost,wastage_factor
FRAMING,Studs,100,EA,3.25,banana
DRYWALL,Sheets,50,EA,12.00,1.75
`
	imp := &MaterialImporter{}
	materials, err := imp.ParseCSV(csvContent, "proj-1")
	if err != nil {
		t.Fatalf("soft-invalid wastage must not fail the row: %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(materials))
	}
	for _, m := range materials {
		if !m.WastageFactor.IsZero() {
			t.Fatalf("invalid wastage must fall back to 0, got %s", m.WastageFactor)
		}
	}
	if len(imp.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", imp.Warnings)
	}
	if !strings.Contains(imp.Warnings[0], "row 2") {
		t.Fatalf("warning should reference the row: %q", imp.Warnings[0])
	}
}

func TestMaterialParseCSV_ErrorMessageCapsAtTen(t *testing.T) {
	var b strings.Builder
	b.WriteString("category,description,quantity,unit,unit_cost\n")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "BOGUS,Item %d,1,EA,1.00\n", i)
	}

	imp := &MaterialImporter{}
	_, err := imp.ParseCSV(b.String(), "proj-1")
	var impErr *ImportError
	if !errors.As(err, &impErr) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if impErr.FailureCount != 15 || len(impErr.RowErrors) != 15 {
		t.Fatalf("underlying counts must stay exact, got %d/%d", impErr.FailureCount, len(impErr.RowErrors))
	}
	if got := strings.Count(err.Error(), "\nrow "); got != maxDisplayedErrors {
		t.Fatalf("expected %d displayed messages, got %d", maxDisplayedErrors, got)
	}
	if !strings.Contains(err.Error(), "and 5 more") {
		t.Fatalf("expected overflow note, got %q", err.Error())
	}
}
