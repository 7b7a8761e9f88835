package importer

import (
	"fmt"
	"io"

	"bitbucket.org/mmdatafocus/buildsite_backend/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// WriteMaterialsXLSX renders the materials export as a workbook with the same
// columns as the CSV export.
func WriteMaterialsXLSX(w io.Writer, materials []models.MaterialLineItem) error {
	rows := make([][]string, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, materialExportRow(m))
	}
	return writeSheet(w, MaterialExportHeaders, rows)
}

// WriteScheduleXLSX renders the schedule export as a workbook.
func WriteScheduleXLSX(w io.Writer, milestones []models.ScheduleMilestone) error {
	rows := make([][]string, 0, len(milestones))
	for _, ms := range milestones {
		rows = append(rows, scheduleExportRow(ms))
	}
	return writeSheet(w, ScheduleExportHeaders, rows)
}

func writeSheet(w io.Writer, headings []string, rows [][]string) error {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, h)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return f.Close()
}
