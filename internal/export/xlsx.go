package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the layout plan as an Excel workbook with a Layout
// sheet listing every packed area and a Summary sheet with the plot totals.
func ExportXLSX(path string, plan Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	const layoutSheet = "Layout"
	if err := f.SetSheetName("Sheet1", layoutSheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}

	headers := []string{"Label", "Kind", "Slots", "X (m)", "Y (m)", "Width (m)", "Height (m)"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(layoutSheet, cell, h); err != nil {
			return err
		}
	}

	for row, ar := range plan.Areas {
		values := []interface{}{ar.Label, ar.Kind.String(), ar.Count, ar.X, ar.Y, ar.W, ar.H}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(layoutSheet, cell, v); err != nil {
				return err
			}
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	verdict := "feasible"
	if !plan.Feasible {
		verdict = "infeasible"
	}
	summary := [][2]interface{}{
		{"Title", plan.Title},
		{"Plot width (m)", plan.PlotW},
		{"Plot height (m)", plan.PlotH},
		{"Verdict", verdict},
		{"Packed areas", len(plan.Areas)},
		{"Vehicle slots", plan.CountInner},
		{"Utilization", plan.UtilRate},
	}
	for row, kv := range summary {
		keyCell, err := excelize.CoordinatesToCellName(1, row+1)
		if err != nil {
			return err
		}
		valCell, err := excelize.CoordinatesToCellName(2, row+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, keyCell, kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, valCell, kv[1]); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
