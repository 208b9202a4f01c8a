package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FitPrint/internal/model"
)

func TestFitScale(t *testing.T) {
	if s := fitScale(210, 297, 420, 1000); s != 2 {
		t.Errorf("expected width-bound scale 2, got %v", s)
	}
	if s := fitScale(210, 297, 1000, 297); s != 1 {
		t.Errorf("expected height-bound scale 1, got %v", s)
	}
	if s := fitScale(0, 297, 100, 100); s != 1 {
		t.Errorf("expected fallback scale 1, got %v", s)
	}
}

func TestColorSlots(t *testing.T) {
	layout := model.Layout{Pages: []model.Page{
		{Number: 1, Items: []model.PlacedItem{
			{Item: model.Item{ID: "b-1", PhotoID: "b"}},
			{Item: model.Item{ID: "a-1", PhotoID: "a"}},
		}},
		{Number: 2, Items: []model.PlacedItem{
			{Item: model.Item{ID: "b-2", PhotoID: "b"}},
			{Item: model.Item{ID: "loose"}},
		}},
	}}

	slots := ColorSlots(layout)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %v", slots)
	}
	if slots["b"] != 0 || slots["a"] != 1 || slots["loose"] != 2 {
		t.Errorf("unexpected slots %v", slots)
	}
}

func TestPageCanvas_Renderer(t *testing.T) {
	test.NewApp()

	page := model.Page{Number: 1, Items: []model.PlacedItem{
		{Item: model.Item{ID: "big-1", PhotoID: "big", Label: "Big"}, X: 0, Y: 0, Width: 100, Height: 150},
		{Item: model.Item{ID: "tiny-1", PhotoID: "tiny", Label: "Tiny"}, X: 105, Y: 0, Width: 20, Height: 10},
	}}
	pc := NewPageCanvas(page, model.DefaultPaper(), 10, nil, 210, 297)

	r := test.WidgetRenderer(pc)
	// paper, printable area, two prints and one label; the tiny print is unlabelled
	if n := len(r.Objects()); n != 5 {
		t.Errorf("expected 5 objects, got %d", n)
	}
	if got := r.MinSize(); got != fyne.NewSize(210, 297) {
		t.Errorf("expected min size 210x297, got %v", got)
	}
}

func TestRenderLayoutResults_Empty(t *testing.T) {
	test.NewApp()

	obj := RenderLayoutResults(nil, model.DefaultPaper(), 10)
	if _, ok := obj.(*widget.Label); !ok {
		t.Errorf("expected a placeholder label, got %T", obj)
	}
}
