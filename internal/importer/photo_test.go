package importer

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, testImage(w, h)); err != nil {
		t.Fatal(err)
	}
}

func TestDetectPhotoSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	writePNG(t, path, 600, 300)

	w, h, err := DetectPhotoSize(path, 300)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(w-50.8) > 1e-9 || math.Abs(h-25.4) > 1e-9 {
		t.Errorf("expected 50.8x25.4 mm, got %vx%v", w, h)
	}

	if _, _, err := DetectPhotoSize(path, 0); err == nil {
		t.Error("expected error for zero dpi")
	}
}

func TestPixelSize_BMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, testImage(40, 20)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	w, h, err := PixelSize(path)
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 20 {
		t.Errorf("expected 40x20, got %dx%d", w, h)
	}
}

func TestPixelSize_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("not really a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := PixelSize(path); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestPhotoFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Holiday.png")
	writePNG(t, path, 400, 300)

	p, err := PhotoFromFile(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Holiday" {
		t.Errorf("expected name 'Holiday', got %q", p.Name)
	}
	if p.Width != DefaultPhotoWidth || p.Height != 37.5 {
		t.Errorf("expected 50x37.5, got %vx%v", p.Width, p.Height)
	}
	if p.Copies != 1 || p.Path != path || p.PixelWidth != 400 || p.PixelHeight != 300 {
		t.Errorf("unexpected photo: %+v", p)
	}

	p, err = PhotoFromFile(path, 80)
	if err != nil {
		t.Fatal(err)
	}
	if p.Width != 80 || p.Height != 60 {
		t.Errorf("expected 80x60, got %vx%v", p.Width, p.Height)
	}
}

func TestImportImages(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.png")
	writePNG(t, good, 10, 20)
	broken := filepath.Join(dir, "b.jpg")
	if err := os.WriteFile(broken, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportImages([]string{good, broken, filepath.Join(dir, "readme.txt")}, 30)
	if len(result.Photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(result.Photos))
	}
	if result.Photos[0].Height != 60 {
		t.Errorf("expected height 60, got %v", result.Photos[0].Height)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", result.Warnings)
	}
}

func TestIsImageFile(t *testing.T) {
	for _, name := range []string{"a.JPG", "b.jpeg", "c.png", "d.tif", "e.webp"} {
		if !IsImageFile(name) {
			t.Errorf("expected %s to be an image", name)
		}
	}
	for _, name := range []string{"a.csv", "b", "c.pdf"} {
		if IsImageFile(name) {
			t.Errorf("expected %s not to be an image", name)
		}
	}
}
