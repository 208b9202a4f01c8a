package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FitPrint/internal/model"
)

// ExportXLSX writes an Excel report of the layout with a "Placements" sheet
// (one row per print) and a "Summary" sheet.
func ExportXLSX(path string, layout model.Layout) error {
	if len(layout.Pages) == 0 {
		return fmt.Errorf("no pages to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const placements = "Placements"
	if err := f.SetSheetName(f.GetSheetName(0), placements); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	headers := []interface{}{"Page", "Item", "Photo", "Copy", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Rotated"}
	if err := f.SetSheetRow(placements, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetRowStyle(placements, 1, 1, bold); err != nil {
		return err
	}

	row := 2
	for _, page := range layout.Pages {
		for _, p := range page.Items {
			values := []interface{}{
				page.Number, p.Item.ID, p.Item.Label, p.Item.CopyIndex + 1,
				p.X, p.Y, p.Width, p.Height, p.Rotated,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(placements, cell, &values); err != nil {
				return err
			}
			row++
		}
	}
	if err := f.SetColWidth(placements, "B", "C", 20); err != nil {
		return err
	}

	stats := layout.Stats()
	summary := [][]interface{}{
		{"Page width (mm)", layout.PageWidth},
		{"Page height (mm)", layout.PageHeight},
		{"Spacing (mm)", layout.Spacing},
		{"Strategy", string(layout.Strategy)},
		{"Pages", stats.Pages},
		{"Prints placed", stats.TotalItems},
		{"Prints per page", stats.AveragePerPage},
		{"Efficiency (%)", stats.Efficiency},
		{"Rotated prints", stats.RotatedItems},
		{"Rejected prints", stats.RejectedItems},
		{"Unplaced prints", stats.UnplacedItems},
	}
	for i, r := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Summary", cell, &r); err != nil {
			return err
		}
	}
	if err := f.SetColWidth("Summary", "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColStyle("Summary", "A", bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
