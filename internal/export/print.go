package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	// Decoders for formats fpdf cannot embed directly
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/piwi3910/FitPrint/internal/model"
)

// ExportPrintPDF writes the layout as a print-ready PDF: one page per layout
// page at the real paper size, every print drawn at its position inside the
// outer margin. Rotated prints are turned a quarter. Prints whose photo has
// no readable image get a labelled placeholder frame instead.
func ExportPrintPDF(path string, layout model.Layout, photos []model.Photo, paper model.Paper, margin float64) error {
	if len(layout.Pages) == 0 {
		return fmt.Errorf("no pages to export")
	}
	paper = orientToLayout(paper, layout, margin)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("%d prints on %s", layout.PlacedCount(), paper.Name), true)

	images := newImageCache(pdf, photos)
	for _, page := range layout.Pages {
		pdf.AddPage()
		for _, p := range page.Items {
			x := margin + p.X
			y := margin + p.Y
			name, ok := images.get(p.Item.PhotoID)
			if !ok {
				drawPlaceholder(pdf, p, x, y)
				continue
			}
			drawImage(pdf, name, p, x, y)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render print PDF: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}

// drawImage places a registered image into the print's box. A rotated print
// holds the image turned 90° counter-clockwise around the box's lower-left
// corner.
func drawImage(pdf *fpdf.Fpdf, name string, p model.PlacedItem, x, y float64) {
	opts := fpdf.ImageOptions{}
	if !p.Rotated {
		pdf.ImageOptions(name, x, y, p.Width, p.Height, false, opts, 0, "")
		return
	}
	pdf.TransformBegin()
	pdf.TransformRotate(90, x, y+p.Height)
	pdf.ImageOptions(name, x, y+p.Height, p.Item.Width, p.Item.Height, false, opts, 0, "")
	pdf.TransformEnd()
}

func drawPlaceholder(pdf *fpdf.Fpdf, p model.PlacedItem, x, y float64) {
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, p.Width, p.Height, "FD")

	pdf.SetTextColor(90, 90, 90)
	pdf.SetFont("Helvetica", "", labelFontSize(p.Width, p.Height))
	lines := []string{p.Item.Label, fmt.Sprintf("%.0f x %.0f mm", p.Width, p.Height)}
	for i, line := range lines {
		w := pdf.GetStringWidth(line)
		if w > p.Width-2 {
			continue
		}
		pdf.SetXY(x+(p.Width-w)/2, y+p.Height/2-4+float64(i)*4)
		pdf.CellFormat(w, 4, line, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// imageCache registers every photo image with the PDF once.
type imageCache struct {
	pdf    *fpdf.Fpdf
	paths  map[string]string // photo ID -> file
	loaded map[string]string // photo ID -> registered name, "" when unreadable
}

func newImageCache(pdf *fpdf.Fpdf, photos []model.Photo) *imageCache {
	c := &imageCache{pdf: pdf, paths: make(map[string]string), loaded: make(map[string]string)}
	for _, ph := range photos {
		if ph.Path != "" {
			c.paths[ph.ID] = ph.Path
		}
	}
	return c
}

func (c *imageCache) get(photoID string) (string, bool) {
	if name, ok := c.loaded[photoID]; ok {
		return name, name != ""
	}
	path, ok := c.paths[photoID]
	if !ok {
		return "", false
	}
	name := "photo_" + photoID
	if err := registerImage(c.pdf, name, path); err != nil {
		c.loaded[photoID] = ""
		return "", false
	}
	c.loaded[photoID] = name
	return name, true
}

// registerImage embeds an image file under name. JPEG, PNG and GIF go in as
// they are; other formats are decoded and re-encoded as PNG.
func registerImage(pdf *fpdf.Fpdf, name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var imageType string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		imageType = "JPG"
	case ".png":
		imageType = "PNG"
	case ".gif":
		imageType = "GIF"
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		data = buf.Bytes()
		imageType = "PNG"
	}

	info := pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if info == nil || pdf.Err() {
		// A broken image must not poison the rest of the document.
		pdf.ClearError()
		return fmt.Errorf("failed to embed %s", filepath.Base(path))
	}
	return nil
}
