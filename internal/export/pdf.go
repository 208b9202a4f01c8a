// Package export writes packed layouts to print-ready PDFs, preview sheets,
// QR labels, DXF cut files and Excel reports.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/FitPrint/internal/model"
)

// printColor represents an RGB color for a placed print.
type printColor struct {
	R, G, B int
}

// printColors mirrors the color scheme used in the UI page canvas widget.
var printColors = []printColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// colorIndex assigns every photo a stable color slot in order of first
// appearance, so all copies of a photo share a color.
func colorIndex(layout model.Layout) map[string]int {
	idx := make(map[string]int)
	for _, p := range layout.Pages {
		for _, pi := range p.Items {
			key := photoKey(pi.Item)
			if _, ok := idx[key]; !ok {
				idx[key] = len(idx) % len(printColors)
			}
		}
	}
	return idx
}

// photoKey groups copies of one photo. Items built without a photo fall back
// to their own ID.
func photoKey(it model.Item) string {
	if it.PhotoID != "" {
		return it.PhotoID
	}
	return it.ID
}

// Preview layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPreviewPDF generates a proof document of the layout. Each page is
// drawn as a scaled diagram of the paper with its prints, followed by a
// summary page with overall statistics.
func ExportPreviewPDF(path string, layout model.Layout, paper model.Paper, margin float64) error {
	if len(layout.Pages) == 0 {
		return fmt.Errorf("no pages to export")
	}
	paper = orientToLayout(paper, layout, margin)
	colors := colorIndex(layout)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, page := range layout.Pages {
		pdf.AddPage()
		renderPreviewPage(pdf, layout, page, paper, margin, colors)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, layout, paper, margin)

	return pdf.OutputFileAndClose(path)
}

// orientToLayout turns the paper so its printable area matches the layout's
// page orientation.
func orientToLayout(paper model.Paper, layout model.Layout, margin float64) model.Paper {
	w, h := paper.PrintableArea(margin)
	if math.Abs(w-layout.PageWidth) > 0.5 && math.Abs(h-layout.PageWidth) <= 0.5 {
		return paper.Rotated()
	}
	return paper
}

// renderPreviewPage draws a single layout page on the current PDF page.
func renderPreviewPage(pdf *fpdf.Fpdf, layout model.Layout, page model.Page, paper model.Paper, margin float64, colors map[string]int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Page %d of %d: %s (%.0f x %.0f mm)", page.Number, len(layout.Pages), paper.Name, paper.Width, paper.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Prints: %d | Used area: %.0f mm² | Printable area: %.0f mm² | Efficiency: %.1f%%",
		len(page.Items), page.UsedArea(), layout.PageWidth*layout.PageHeight, page.Efficiency(layout.PageWidth, layout.PageHeight))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/paper.Width, drawHeight/paper.Height)
	canvasW := paper.Width * scale
	canvasH := paper.Height * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Paper
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Printable area
	areaX := offsetX + margin*scale
	areaY := offsetY + margin*scale
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	pdf.Rect(areaX, areaY, layout.PageWidth*scale, layout.PageHeight*scale, "D")
	pdf.SetDashPattern([]float64{}, 0)

	for _, p := range page.Items {
		col := printColors[colors[photoKey(p.Item)]]
		pw := p.Width * scale
		ph := p.Height * scale
		px := areaX + p.X*scale
		py := areaY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Item.Label
			dims := fmt.Sprintf("%.0fx%.0f", p.Width, p.Height)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, paper, offsetX, offsetY, canvasW, canvasH)
	drawPrintsLegend(pdf, page, colors, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds width and height labels outside the paper rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, paper model.Paper, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", paper.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", paper.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPrintsLegend renders one legend entry per photo on the page with its
// copy count.
func drawPrintsLegend(pdf *fpdf.Fpdf, page model.Page, colors map[string]int, startY float64) {
	if len(page.Items) == 0 {
		return
	}

	type entry struct {
		key, label string
		w, h       float64
		count      int
	}
	var entries []*entry
	byKey := make(map[string]*entry)
	for _, p := range page.Items {
		key := photoKey(p.Item)
		if e, ok := byKey[key]; ok {
			e.count++
			continue
		}
		e := &entry{key: key, label: p.Item.Label, w: p.Item.Width, h: p.Item.Height, count: 1}
		byKey[key] = e
		entries = append(entries, e)
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Prints placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, e := range entries {
		col := printColors[colors[e.key]]
		label := fmt.Sprintf("%s (%.0fx%.0f) x%d", e.label, e.w, e.h, e.count)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, layout model.Layout, paper model.Paper, margin float64) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Print Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	stats := layout.Stats()
	summaryItems := []struct {
		label string
		value string
	}{
		{"Pages Used", fmt.Sprintf("%d", stats.Pages)},
		{"Prints Placed", fmt.Sprintf("%d", stats.TotalItems)},
		{"Prints per Page", fmt.Sprintf("%.1f", stats.AveragePerPage)},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", stats.Efficiency)},
		{"Last Page Fill", fmt.Sprintf("%.1f%%", stats.LastPageFillPct)},
		{"Rotated Prints", fmt.Sprintf("%d", stats.RotatedItems)},
	}
	y = drawKeyValues(pdf, summaryItems, y, 10, 7)
	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Page Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 40, 50, 35, 60}
	headers := []string{"Page", "Prints", "Rotated", "Efficiency", "Used / Printable Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, page := range layout.Pages {
		if y > pageHeight-marginBottom-40 {
			pdf.AddPage()
			y = marginTop
		}
		rotated := 0
		for _, p := range page.Items {
			if p.Rotated {
				rotated++
			}
		}
		rowData := []string{
			fmt.Sprintf("%d", page.Number),
			fmt.Sprintf("%d", len(page.Items)),
			fmt.Sprintf("%d", rotated),
			fmt.Sprintf("%.1f%%", page.Efficiency(layout.PageWidth, layout.PageHeight)),
			fmt.Sprintf("%.0f / %.0f mm²", page.UsedArea(), layout.PageWidth*layout.PageHeight),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(layout.Rejected) > 0 || len(layout.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Prints not placed", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, r := range layout.Rejected {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f mm is larger than %.0f x %.0f mm",
				r.Item.Label, r.Item.Width, r.Item.Height, r.MaxWidth, r.MaxHeight)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
		for _, it := range layout.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f mm could not be placed", it.Label, it.Width, it.Height)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Layout Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Paper", fmt.Sprintf("%s (%.0f x %.0f mm)", paper.Name, paper.Width, paper.Height)},
		{"Outer Margin", fmt.Sprintf("%.1f mm", margin)},
		{"Spacing", fmt.Sprintf("%.1f mm", layout.Spacing)},
		{"Strategy", string(layout.Strategy)},
	}
	pdf.SetFont("Helvetica", "", 9)
	drawKeyValues(pdf, settingsItems, y, 9, 5)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by FitPrint - Photo Print Layout", "", 0, "C", false, 0, "")
}

func drawKeyValues(pdf *fpdf.Fpdf, items []struct{ label, value string }, y, fontSize, lineHeight float64) float64 {
	for _, item := range items {
		pdf.SetFont("Helvetica", "", fontSize)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, lineHeight-1, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", fontSize)
		pdf.CellFormat(80, lineHeight-1, item.value, "", 0, "L", false, 0, "")
		y += lineHeight
	}
	pdf.SetFont("Helvetica", "", fontSize)
	return y
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
