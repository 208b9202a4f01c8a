package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/FitPrint/internal/model"
)

// DXF layer names.
const (
	LayerPages  = "PAGES"
	LayerPrints = "PRINTS"
)

// DefaultPageGap is the distance in mm between page outlines in a DXF.
const DefaultPageGap = 20.0

// ExportDXF writes the cut lines of the layout for a plotter or trimmer.
// Every page becomes an outline of its printable area on the PAGES layer,
// laid out left to right with gap mm between pages, and every print a
// rectangle on the PRINTS layer. DXF's y axis points up, so rows are
// mirrored to keep the top of the page on top.
func ExportDXF(path string, layout model.Layout, gap float64) error {
	if len(layout.Pages) == 0 {
		return fmt.Errorf("no pages to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerPages, color.Blue, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	if _, err := d.AddLayer(LayerPrints, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}

	for i, page := range layout.Pages {
		offsetX := float64(i) * (layout.PageWidth + gap)

		if err := d.ChangeLayer(LayerPages); err != nil {
			return err
		}
		if err := dxfRect(d, offsetX, 0, layout.PageWidth, layout.PageHeight); err != nil {
			return err
		}

		if err := d.ChangeLayer(LayerPrints); err != nil {
			return err
		}
		for _, p := range page.Items {
			y := layout.PageHeight - p.Y - p.Height
			if err := dxfRect(d, offsetX+p.X, y, p.Width, p.Height); err != nil {
				return err
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// dxfRect draws an axis-aligned rectangle as four LINE entities.
func dxfRect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%4]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to draw line: %w", err)
		}
	}
	return nil
}
