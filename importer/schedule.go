package importer

import (
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/buildsite_backend/models"
)

var ScheduleRequiredHeaders = []string{"phase", "description", "baseline_start_date", "baseline_end_date"}
var ScheduleOptionalHeaders = []string{"actual_start_date", "actual_end_date", "notes"}

const dateLayout = "2006-01-02"

// ScheduleImporter parses schedule milestones from a CSV payload. Same batch
// semantics as MaterialImporter: all rows scanned, all-or-nothing result.
type ScheduleImporter struct {
	Warnings []string
}

func (imp *ScheduleImporter) ParseCSV(content string, projectID string) ([]models.ScheduleMilestone, error) {
	imp.Warnings = nil

	index, rows, headerErr := csvRows(content, ScheduleRequiredHeaders)
	if headerErr != nil {
		return nil, headerErr
	}

	milestones := make([]models.ScheduleMilestone, 0, len(rows))
	var rowErrors []RowError
	for _, row := range rows {
		milestone, err := imp.parseRow(row, index, projectID)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: row.Num, Message: err.Error()})
			continue
		}
		milestones = append(milestones, milestone)
	}

	if len(rowErrors) > 0 {
		return nil, &ImportError{
			SuccessCount: len(milestones),
			FailureCount: len(rowErrors),
			RowErrors:    rowErrors,
		}
	}

	return milestones, nil
}

func (imp *ScheduleImporter) parseRow(row csvRow, index map[string]int, projectID string) (models.ScheduleMilestone, error) {
	var milestone models.ScheduleMilestone

	if row.ParseErr != "" {
		return milestone, fmt.Errorf("malformed CSV row: %s", row.ParseErr)
	}

	phase, err := models.ParseMilestonePhase(field(row, index, "phase"))
	if err != nil {
		return milestone, err
	}

	baselineStart, err := time.Parse(dateLayout, field(row, index, "baseline_start_date"))
	if err != nil {
		return milestone, fmt.Errorf("invalid baseline_start_date %q, expected YYYY-MM-DD", field(row, index, "baseline_start_date"))
	}
	baselineEnd, err := time.Parse(dateLayout, field(row, index, "baseline_end_date"))
	if err != nil {
		return milestone, fmt.Errorf("invalid baseline_end_date %q, expected YYYY-MM-DD", field(row, index, "baseline_end_date"))
	}
	if !baselineEnd.After(baselineStart) {
		return milestone, fmt.Errorf("end date must be after start date")
	}

	milestone = models.ScheduleMilestone{
		ProjectId:         projectID,
		Phase:             phase,
		Description:       field(row, index, "description"),
		BaselineStartDate: baselineStart,
		BaselineEndDate:   baselineEnd,
	}

	// Soft-invalid actual dates: warn and leave unset.
	if raw := field(row, index, "actual_start_date"); raw != "" {
		if d, err := time.Parse(dateLayout, raw); err == nil {
			milestone.ActualStartDate = &d
		} else {
			imp.Warnings = append(imp.Warnings, fmt.Sprintf("row %d: invalid actual_start_date %q, ignoring", row.Num, raw))
		}
	}
	if raw := field(row, index, "actual_end_date"); raw != "" {
		if d, err := time.Parse(dateLayout, raw); err == nil {
			milestone.ActualEndDate = &d
		} else {
			imp.Warnings = append(imp.Warnings, fmt.Sprintf("row %d: invalid actual_end_date %q, ignoring", row.Num, raw))
		}
	}
	if v := field(row, index, "notes"); v != "" {
		milestone.Notes = &v
	}

	return milestone, nil
}
