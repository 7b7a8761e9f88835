package importer

import (
	"strings"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/buildsite_backend/models"
	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestExportMaterialsCSV(t *testing.T) {
	vendor := "Acme Lumber"
	materials := []models.MaterialLineItem{
		{
			ID:            "mat-1",
			Category:      models.MaterialCategoryFraming,
			Description:   "2x4 studs",
			Quantity:      dec(t, "500"),
			Unit:          models.UnitOfMeasure("EA"),
			WastageFactor: dec(t, "0.1"),
			TotalQty:      dec(t, "550"),
			UnitCost:      dec(t, "3.25"),
			TotalCost:     dec(t, "1787.5"),
			Vendor:        &vendor,
		},
	}

	out, err := ExportMaterialsCSV(materials)
	if err != nil {
		t.Fatalf("ExportMaterialsCSV error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(MaterialExportHeaders, ",") {
		t.Fatalf("unexpected header order: %q", lines[0])
	}
	expected := "mat-1,FRAMING,2x4 studs,500.000,EA,0.1000,550.000,3.25,1787.50,Acme Lumber,,"
	if lines[1] != expected {
		t.Fatalf("expected row %q, got %q", expected, lines[1])
	}
}

func TestExportMaterialsCSV_EmptyInput(t *testing.T) {
	out, err := ExportMaterialsCSV(nil)
	if err != nil {
		t.Fatalf("ExportMaterialsCSV error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestExportScheduleCSV(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2024-01-08")
	end, _ := time.Parse("2006-01-02", "2024-01-19")
	actualStart, _ := time.Parse("2006-01-02", "2024-01-09")

	milestones := []models.ScheduleMilestone{
		{
			ID:                "ms-1",
			Phase:             models.MilestonePhaseSitework,
			Description:       "Clear and grade",
			BaselineStartDate: start,
			BaselineEndDate:   end,
			ActualStartDate:   &actualStart,
		},
	}

	out, err := ExportScheduleCSV(milestones)
	if err != nil {
		t.Fatalf("ExportScheduleCSV error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != strings.Join(ScheduleExportHeaders, ",") {
		t.Fatalf("unexpected header order: %q", lines[0])
	}
	expected := "ms-1,SITEWORK,Clear and grade,2024-01-08,2024-01-19,2024-01-09,,"
	if lines[1] != expected {
		t.Fatalf("expected row %q, got %q", expected, lines[1])
	}
}

func TestParseExportRoundTrip(t *testing.T) {
	imp := &MaterialImporter{}
	materials, err := imp.ParseCSV(validMaterialsCSV, "proj-1")
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}
	for i := range materials {
		if err := materials[i].ComputeTotals(); err != nil {
			t.Fatalf("ComputeTotals error: %v", err)
		}
	}

	out, err := ExportMaterialsCSV(materials)
	if err != nil {
		t.Fatalf("ExportMaterialsCSV error: %v", err)
	}

	// The exported batch parses clean again.
	reimported, err := (&MaterialImporter{}).ParseCSV(out, "proj-1")
	if err != nil {
		t.Fatalf("re-import error: %v", err)
	}
	if len(reimported) != len(materials) {
		t.Fatalf("round trip lost rows: %d vs %d", len(reimported), len(materials))
	}
	for i := range reimported {
		if !reimported[i].Quantity.Equal(materials[i].Quantity) {
			t.Fatalf("row %d quantity drifted: %s vs %s", i, reimported[i].Quantity, materials[i].Quantity)
		}
	}
}
