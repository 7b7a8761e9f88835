package importer

import (
	"errors"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/buildsite_backend/models"
)

const validScheduleCSV = `phase,description,baseline_start_date,baseline_end_date,actual_start_date,actual_end_date
SITEWORK,Clear and grade,2024-01-08,2024-01-19,2024-01-08,2024-01-22
FOUNDATION,Pour footings,2024-01-22,2024-02-09,,
`

func TestScheduleParseCSV_ValidBatch(t *testing.T) {
	imp := &ScheduleImporter{}
	milestones, err := imp.ParseCSV(validScheduleCSV, "proj-1")
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}
	if len(milestones) != 2 {
		t.Fatalf("expected 2 milestones, got %d", len(milestones))
	}

	first := milestones[0]
	if first.Phase != models.MilestonePhaseSitework {
		t.Fatalf("expected SITEWORK, got %s", first.Phase)
	}
	if first.BaselineStartDate.Format("2006-01-02") != "2024-01-08" {
		t.Fatalf("bad baseline start: %v", first.BaselineStartDate)
	}
	if first.ActualEndDate == nil || first.ActualEndDate.Format("2006-01-02") != "2024-01-22" {
		t.Fatalf("bad actual end: %v", first.ActualEndDate)
	}
	if milestones[1].ActualStartDate != nil || milestones[1].ActualEndDate != nil {
		t.Fatal("blank actual dates must stay nil")
	}
}

func TestScheduleParseCSV_MissingHeaders(t *testing.T) {
	imp := &ScheduleImporter{}
	_, err := imp.ParseCSV("phase,description\nSITEWORK,Grade\n", "proj-1")

	var impErr *ImportError
	if !errors.As(err, &impErr) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	for _, h := range []string{"baseline_start_date", "baseline_end_date"} {
		if !strings.Contains(err.Error(), h) {
			t.Fatalf("error should name missing header %s: %q", h, err.Error())
		}
	}
}

func TestScheduleParseCSV_RowValidation(t *testing.T) {
	csvContent := `phase,description,baseline_start_date,baseline_end_date
DEMOLITION,Unknown phase,2024-01-08,2024-01-19
FRAMING,End before start,2024-03-01,2024-02-01
FRAMING,Bad date,01/08/2024,2024-01-19
FRAMING,Fine,2024-02-01,2024-03-01
`
	imp := &ScheduleImporter{}
	milestones, err := imp.ParseCSV(csvContent, "proj-1")
	if milestones != nil {
		t.Fatal("parse with row errors must not return rows")
	}

	var impErr *ImportError
	if !errors.As(err, &impErr) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if impErr.FailureCount != 3 || impErr.SuccessCount != 1 {
		t.Fatalf("expected 3 failures and 1 success, got %d/%d", impErr.FailureCount, impErr.SuccessCount)
	}
	if impErr.RowErrors[0].Row != 2 || impErr.RowErrors[1].Row != 3 || impErr.RowErrors[2].Row != 4 {
		t.Fatalf("unexpected row numbers: %v", impErr.RowErrors)
	}
	if !strings.Contains(impErr.RowErrors[1].Message, "after start date") {
		t.Fatalf("expected date-order message, got %q", impErr.RowErrors[1].Message)
	}
}

func TestScheduleParseCSV_SoftInvalidActualDatesWarn(t *testing.T) {
	csvContent := `phase,description,baseline_start_date,baseline_end_date,actual_end_date
FRAMING,Walls,2024-02-01,2024-03-01,not-a-date
`
	imp := &ScheduleImporter{}
	milestones, err := imp.ParseCSV(csvContent, "proj-1")
	if err != nil {
		t.Fatalf("soft-invalid actual date must not fail the row: %v", err)
	}
	if milestones[0].ActualEndDate != nil {
		t.Fatal("invalid actual date must be ignored")
	}
	if len(imp.Warnings) != 1 || !strings.Contains(imp.Warnings[0], "actual_end_date") {
		t.Fatalf("expected one actual_end_date warning, got %v", imp.Warnings)
	}
}
