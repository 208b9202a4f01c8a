package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FitPrint/internal/model"
)

// Print colors, cycled per photo so copies share a color.
var printColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

// PageCanvas renders one page of a layout: the sheet of paper, its outer
// margin and every print at scale.
type PageCanvas struct {
	widget.BaseWidget
	page      model.Page
	paper     model.Paper
	margin    float64
	colors    map[string]int
	maxWidth  float32
	maxHeight float32
}

// NewPageCanvas creates a canvas that fits the paper into maxW x maxH.
// colors maps photo IDs to palette slots.
func NewPageCanvas(page model.Page, paper model.Paper, margin float64, colors map[string]int, maxW, maxH float32) *PageCanvas {
	pc := &PageCanvas{
		page:      page,
		paper:     paper,
		margin:    margin,
		colors:    colors,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *PageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPageCanvasRenderer(pc)
}

func (pc *PageCanvas) scale() float32 {
	return fitScale(pc.paper.Width, pc.paper.Height, pc.maxWidth, pc.maxHeight)
}

// fitScale returns the factor that fits w x h into maxW x maxH.
func fitScale(w, h float64, maxW, maxH float32) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	scale := maxW / float32(w)
	if s := maxH / float32(h); s < scale {
		scale = s
	}
	return scale
}

type pageCanvasRenderer struct {
	pc      *PageCanvas
	objects []fyne.CanvasObject
}

func newPageCanvasRenderer(pc *PageCanvas) *pageCanvasRenderer {
	r := &pageCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *pageCanvasRenderer) rebuild() {
	r.objects = nil
	pc := r.pc
	scale := pc.scale()

	canvasW := float32(pc.paper.Width) * scale
	canvasH := float32(pc.paper.Height) * scale

	// Paper
	bg := canvas.NewRectangle(color.White)
	bg.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	// Printable area
	m := float32(pc.margin) * scale
	area := canvas.NewRectangle(color.Transparent)
	area.StrokeColor = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
	area.StrokeWidth = 1
	area.Resize(fyne.NewSize(canvasW-2*m, canvasH-2*m))
	area.Move(fyne.NewPos(m, m))
	r.objects = append(r.objects, area)

	for i, p := range pc.page.Items {
		slot, ok := pc.colors[photoKey(p.Item)]
		if !ok {
			slot = i
		}
		col := printColors[slot%len(printColors)]
		pw := float32(p.Width) * scale
		ph := float32(p.Height) * scale
		px := m + float32(p.X)*scale
		py := m + float32(p.Y)*scale

		rect := canvas.NewRectangle(col)
		rect.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(pw, ph))
		rect.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, rect)

		// Label (only if big enough)
		if pw > 30 && ph > 16 {
			text := fmt.Sprintf("%s\n%.0fx%.0f", p.Item.Label, p.Width, p.Height)
			if p.Rotated {
				text += " R"
			}
			label := canvas.NewText(text, color.Black)
			label.TextSize = 10
			label.Move(fyne.NewPos(px+3, py+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *pageCanvasRenderer) Layout(size fyne.Size)        {}
func (r *pageCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *pageCanvasRenderer) Destroy()                     {}
func (r *pageCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *pageCanvasRenderer) MinSize() fyne.Size {
	scale := r.pc.scale()
	return fyne.NewSize(float32(r.pc.paper.Width)*scale, float32(r.pc.paper.Height)*scale)
}

func photoKey(it model.Item) string {
	if it.PhotoID != "" {
		return it.PhotoID
	}
	return it.ID
}

// ColorSlots assigns a palette slot to every photo in the order the photos
// first appear in the layout.
func ColorSlots(layout model.Layout) map[string]int {
	slots := make(map[string]int)
	for _, page := range layout.Pages {
		for _, p := range page.Items {
			key := photoKey(p.Item)
			if _, ok := slots[key]; !ok {
				slots[key] = len(slots)
			}
		}
	}
	return slots
}

// RenderLayoutResults creates a scrollable view of every page of a layout
// with its statistics and any rejected or unplaced prints.
func RenderLayoutResults(layout *model.Layout, paper model.Paper, margin float64) fyne.CanvasObject {
	if layout == nil || (len(layout.Pages) == 0 && len(layout.Rejected) == 0) {
		return widget.NewLabel("No layout yet. Add photos, then click Generate.")
	}

	var items []fyne.CanvasObject

	for _, r := range layout.Rejected {
		warning := widget.NewLabel(fmt.Sprintf(
			"Too large: %s (%.0f x %.0f mm), the page fits at most %.0f x %.0f mm",
			r.Item.Label, r.Item.Width, r.Item.Height, r.MaxWidth, r.MaxHeight,
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	colors := ColorSlots(*layout)
	for _, page := range layout.Pages {
		header := widget.NewLabel(fmt.Sprintf(
			"Page %d: %d prints, %.1f%% used",
			page.Number, len(page.Items), page.Efficiency(layout.PageWidth, layout.PageHeight),
		))
		header.TextStyle = fyne.TextStyle{Bold: true}

		items = append(items, header, NewPageCanvas(page, paper, margin, colors, 500, 500), widget.NewSeparator())
	}

	if len(layout.Unplaced) > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d prints could not be placed.", len(layout.Unplaced),
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	stats := layout.Stats()
	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d prints on %d pages (%.1f per page), %.1f%% paper used, strategy %s",
		stats.TotalItems, stats.Pages, stats.AveragePerPage, stats.Efficiency, layout.Strategy,
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}
