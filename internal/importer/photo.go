package importer

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered image decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/piwi3910/FitPrint/internal/model"
)

// DefaultPhotoWidth is the print width in mm given to image files that come
// without a size.
const DefaultPhotoWidth = 50.0

const mmPerInch = 25.4

// ImageExtensions lists the file extensions PhotoFromFile can read.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// IsImageFile reports whether the path has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// PixelSize returns the pixel dimensions of an image file. Only the header is
// decoded.
func PixelSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image header of %s: %w", filepath.Base(path), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("image %s has no pixels", filepath.Base(path))
	}
	return cfg.Width, cfg.Height, nil
}

// DetectPhotoSize returns the size in mm of an image printed at its native
// resolution of dpi pixels per inch.
func DetectPhotoSize(path string, dpi float64) (w, h float64, err error) {
	if dpi <= 0 {
		return 0, 0, fmt.Errorf("dpi must be positive, got %g", dpi)
	}
	pw, ph, err := PixelSize(path)
	if err != nil {
		return 0, 0, err
	}
	return float64(pw) / dpi * mmPerInch, float64(ph) / dpi * mmPerInch, nil
}

// PhotoFromFile creates a one-copy photo for an image file. The print is
// width mm wide (DefaultPhotoWidth when width is not positive) and as tall as
// the image's aspect ratio demands.
func PhotoFromFile(path string, width float64) (model.Photo, error) {
	pw, ph, err := PixelSize(path)
	if err != nil {
		return model.Photo{}, err
	}
	if width <= 0 {
		width = DefaultPhotoWidth
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	photo := model.NewPhoto(name, width, width*float64(ph)/float64(pw), 1)
	photo.Path = path
	photo.PixelWidth = pw
	photo.PixelHeight = ph
	return photo, nil
}

// ImportImages creates a photo for every image file. Files that cannot be
// read are reported as errors; non-image files are skipped with a warning.
func ImportImages(paths []string, width float64) ImportResult {
	result := ImportResult{}
	for _, p := range paths {
		if !IsImageFile(p) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Not an image file, skipped", filepath.Base(p)))
			continue
		}
		photo, err := PhotoFromFile(p, width)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Photos = append(result.Photos, photo)
	}
	return result
}
