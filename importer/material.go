package importer

import (
	"fmt"

	"bitbucket.org/mmdatafocus/buildsite_backend/calculation"
	"bitbucket.org/mmdatafocus/buildsite_backend/models"
	"github.com/shopspring/decimal"
)

var MaterialRequiredHeaders = []string{"category", "description", "quantity", "unit", "unit_cost"}
var MaterialOptionalHeaders = []string{"wastage_factor", "vendor", "notes", "csi_code"}

// MaterialImporter parses material line items from a CSV payload. The
// accumulators are scoped to one ParseCSV call; a fresh importer per request.
type MaterialImporter struct {
	Warnings []string
}

// ParseCSV validates every row and returns the full batch or nothing: any
// row error fails the whole parse with an aggregate ImportError, but errors
// are collected across all rows so the caller sees every invalid row at once.
func (imp *MaterialImporter) ParseCSV(content string, projectID string) ([]models.MaterialLineItem, error) {
	imp.Warnings = nil

	index, rows, headerErr := csvRows(content, MaterialRequiredHeaders)
	if headerErr != nil {
		return nil, headerErr
	}

	// Phase one: a result or an error per row, never aborting the scan.
	materials := make([]models.MaterialLineItem, 0, len(rows))
	var rowErrors []RowError
	for _, row := range rows {
		material, err := imp.parseRow(row, index, projectID)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: row.Num, Message: err.Error()})
			continue
		}
		materials = append(materials, material)
	}

	// Phase two: the batch policy. Parse-stage imports are all-or-nothing;
	// the bulk-create endpoint applies row-level partial success instead.
	if len(rowErrors) > 0 {
		return nil, &ImportError{
			SuccessCount: len(materials),
			FailureCount: len(rowErrors),
			RowErrors:    rowErrors,
		}
	}

	return materials, nil
}

func (imp *MaterialImporter) parseRow(row csvRow, index map[string]int, projectID string) (models.MaterialLineItem, error) {
	var material models.MaterialLineItem

	if row.ParseErr != "" {
		return material, fmt.Errorf("malformed CSV row: %s", row.ParseErr)
	}

	category, err := models.ParseMaterialCategory(field(row, index, "category"))
	if err != nil {
		return material, err
	}

	unit, err := calculation.ParseUnitOfMeasure(field(row, index, "unit"))
	if err != nil {
		return material, err
	}

	quantity, err := decimal.NewFromString(field(row, index, "quantity"))
	if err != nil {
		return material, fmt.Errorf("invalid quantity value %q", field(row, index, "quantity"))
	}
	if !quantity.IsPositive() {
		return material, fmt.Errorf("quantity must be positive")
	}

	unitCost, err := decimal.NewFromString(field(row, index, "unit_cost"))
	if err != nil {
		return material, fmt.Errorf("invalid unit_cost value %q", field(row, index, "unit_cost"))
	}
	if unitCost.IsNegative() {
		return material, fmt.Errorf("unit cost cannot be negative")
	}

	// Soft-invalid optional field: warn and fall back to the default.
	wastageFactor := decimal.Zero
	if raw := field(row, index, "wastage_factor"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() || parsed.GreaterThan(decimal.NewFromInt(1)) {
			imp.Warnings = append(imp.Warnings, fmt.Sprintf("row %d: invalid wastage_factor %q, using 0", row.Num, raw))
		} else {
			wastageFactor = parsed
		}
	}

	material = models.MaterialLineItem{
		ProjectId:     projectID,
		Category:      category,
		Description:   field(row, index, "description"),
		Quantity:      quantity,
		Unit:          unit,
		WastageFactor: wastageFactor,
		UnitCost:      unitCost,
	}
	if v := field(row, index, "vendor"); v != "" {
		material.Vendor = &v
	}
	if v := field(row, index, "notes"); v != "" {
		material.Notes = &v
	}
	if v := field(row, index, "csi_code"); v != "" {
		material.CsiCode = &v
	}

	return material, nil
}
