package importer

import (
	"encoding/csv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/buildsite_backend/models"
	"bitbucket.org/mmdatafocus/buildsite_backend/utils"
)

// Fixed export column orders. Decimal fields serialize as exact decimal
// strings at their declared scale, dates as YYYY-MM-DD.
var MaterialExportHeaders = []string{
	"id", "category", "description", "quantity", "unit", "wastage_factor",
	"total_qty", "unit_cost", "total_cost", "vendor", "csi_code", "notes",
}

var ScheduleExportHeaders = []string{
	"id", "phase", "description", "baseline_start_date", "baseline_end_date",
	"actual_start_date", "actual_end_date", "notes",
}

func ExportMaterialsCSV(materials []models.MaterialLineItem) (string, error) {
	if len(materials) == 0 {
		return "", nil
	}

	var b strings.Builder
	writer := csv.NewWriter(&b)
	if err := writer.Write(MaterialExportHeaders); err != nil {
		return "", err
	}

	for _, m := range materials {
		if err := writer.Write(materialExportRow(m)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	return b.String(), writer.Error()
}

func materialExportRow(m models.MaterialLineItem) []string {
	return []string{
		m.ID,
		string(m.Category),
		m.Description,
		m.Quantity.StringFixed(3),
		string(m.Unit),
		m.WastageFactor.StringFixed(4),
		m.TotalQty.StringFixed(3),
		m.UnitCost.StringFixed(2),
		m.TotalCost.StringFixed(2),
		utils.DereferencePtr(m.Vendor, ""),
		utils.DereferencePtr(m.CsiCode, ""),
		utils.DereferencePtr(m.Notes, ""),
	}
}

func ExportScheduleCSV(milestones []models.ScheduleMilestone) (string, error) {
	if len(milestones) == 0 {
		return "", nil
	}

	var b strings.Builder
	writer := csv.NewWriter(&b)
	if err := writer.Write(ScheduleExportHeaders); err != nil {
		return "", err
	}

	for _, ms := range milestones {
		if err := writer.Write(scheduleExportRow(ms)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	return b.String(), writer.Error()
}

func scheduleExportRow(ms models.ScheduleMilestone) []string {
	return []string{
		ms.ID,
		string(ms.Phase),
		ms.Description,
		ms.BaselineStartDate.Format(dateLayout),
		ms.BaselineEndDate.Format(dateLayout),
		dateOrEmpty(ms.ActualStartDate),
		dateOrEmpty(ms.ActualEndDate),
		utils.DereferencePtr(ms.Notes, ""),
	}
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
