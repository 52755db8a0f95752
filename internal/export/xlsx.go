package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportExcel writes the placement report as an Excel workbook with one row
// per requested item.
func ExportExcel(path string, layout Layout) error {
	if len(layout.Result.Entries) == 0 {
		return fmt.Errorf("no results to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Placements"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Name", "Length", "Width", "Kind", "Placed", "Center X", "Center Y", "Rotation", "Error"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, entry := range layout.Result.Entries {
		item := findItem(layout.Plan.Items, entry.Name)
		values := []interface{}{
			entry.Name,
			item.Length,
			item.Width,
			item.Kind.String(),
			entry.Placed,
		}
		if entry.Placed {
			values = append(values, entry.Center[0], entry.Center[1], entry.Rotation, "")
		} else {
			values = append(values, nil, nil, nil, entry.Err)
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	// Summary block below the table
	summaryRow := len(layout.Result.Entries) + 3
	summary := [][2]interface{}{
		{"Room", layout.Plan.Name},
		{"Items requested", len(layout.Result.Entries)},
		{"Items placed", layout.Result.PlacedCount()},
		{"Fully feasible", layout.Result.Feasible()},
	}
	for i, pair := range summary {
		keyCell, err := excelize.CoordinatesToCellName(1, summaryRow+i)
		if err != nil {
			return err
		}
		valCell, err := excelize.CoordinatesToCellName(2, summaryRow+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, keyCell, pair[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, valCell, pair[1]); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
