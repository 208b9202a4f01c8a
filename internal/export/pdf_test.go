package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/FitPrint/internal/model"
)

// buildTestLayout creates a two-page layout on A4 with a 10mm margin.
func buildTestLayout() model.Layout {
	beach := model.Item{ID: "beach-1", PhotoID: "beach", Label: "Beach", Width: 100, Height: 150}
	beach2 := beach
	beach2.ID, beach2.CopyIndex = "beach-2", 1
	dog := model.Item{ID: "dog-1", PhotoID: "dog", Label: "Dog", Width: 120, Height: 80}

	return model.Layout{
		PageWidth:  190,
		PageHeight: 277,
		Spacing:    5,
		Strategy:   model.StrategyBottomLeft,
		Pages: []model.Page{
			{Number: 1, Items: []model.PlacedItem{
				{Item: beach, X: 0, Y: 0, Width: 100, Height: 150},
				{Item: dog, X: 0, Y: 155, Width: 80, Height: 120, Rotated: true},
			}},
			{Number: 2, Items: []model.PlacedItem{
				{Item: beach2, X: 0, Y: 0, Width: 100, Height: 150},
			}},
		},
	}
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("file does not start with a PDF header")
	}
	if len(data) < 500 {
		t.Errorf("PDF file seems too small: %d bytes", len(data))
	}
}

func TestExportPreviewPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.pdf")

	if err := ExportPreviewPDF(path, buildTestLayout(), model.DefaultPaper(), 10); err != nil {
		t.Fatalf("ExportPreviewPDF returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportPreviewPDF_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportPreviewPDF(path, model.Layout{}, model.DefaultPaper(), 10); err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}

func TestExportPreviewPDF_WithRejectedAndUnplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.pdf")

	layout := buildTestLayout()
	layout.Rejected = []model.RejectedItem{
		{Item: model.Item{ID: "r1", Label: "Poster", Width: 500, Height: 700}, MaxWidth: 277, MaxHeight: 190},
	}
	layout.Unplaced = []model.Item{{ID: "u1", Label: "Leftover", Width: 50, Height: 50}}

	if err := ExportPreviewPDF(path, layout, model.DefaultPaper(), 10); err != nil {
		t.Fatalf("ExportPreviewPDF returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportPreviewPDF_ManyPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	layout := buildTestLayout()
	page := layout.Pages[1]
	for i := 3; i <= 40; i++ {
		page.Number = i
		layout.Pages = append(layout.Pages, page)
	}
	if err := ExportPreviewPDF(path, layout, model.DefaultPaper(), 10); err != nil {
		t.Fatalf("ExportPreviewPDF returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestOrientToLayout(t *testing.T) {
	a4 := model.DefaultPaper()

	portrait := orientToLayout(a4, model.Layout{PageWidth: 190, PageHeight: 277}, 10)
	if portrait.Width != 210 || portrait.Height != 297 {
		t.Errorf("expected portrait A4, got %vx%v", portrait.Width, portrait.Height)
	}

	landscape := orientToLayout(a4, model.Layout{PageWidth: 277, PageHeight: 190}, 10)
	if landscape.Width != 297 || landscape.Height != 210 {
		t.Errorf("expected landscape A4, got %vx%v", landscape.Width, landscape.Height)
	}
}

func TestColorIndex_CopiesShareColor(t *testing.T) {
	idx := colorIndex(buildTestLayout())
	if len(idx) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(idx))
	}
	if idx["beach"] != 0 || idx["dog"] != 1 {
		t.Errorf("unexpected color slots: %v", idx)
	}
}

func TestLabelFontSize(t *testing.T) {
	if labelFontSize(50, 50) != 8 || labelFontSize(30, 100) != 7 || labelFontSize(10, 100) != 6 {
		t.Error("unexpected font sizes")
	}
}
