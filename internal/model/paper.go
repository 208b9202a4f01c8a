package model

import "math"

// PaperOrientation selects how the paper is turned.
type PaperOrientation string

const (
	OrientationAuto      PaperOrientation = "auto"
	OrientationPortrait  PaperOrientation = "portrait"
	OrientationLandscape PaperOrientation = "landscape"
)

// Paper is a physical sheet size in mm.
type Paper struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PaperSizes lists the built-in paper presets.
var PaperSizes = []Paper{
	{Key: "a4", Name: "A4", Width: 210, Height: 297},
	{Key: "a3", Name: "A3", Width: 297, Height: 420},
	{Key: "a5", Name: "A5", Width: 148, Height: 210},
	{Key: "letter", Name: "US Letter", Width: 216, Height: 279},
	{Key: "legal", Name: "US Legal", Width: 216, Height: 356},
	{Key: "tabloid", Name: "Tabloid", Width: 279, Height: 432},
	{Key: "photo4x6", Name: "Photo 4x6\"", Width: 102, Height: 152},
	{Key: "photo5x7", Name: "Photo 5x7\"", Width: 127, Height: 178},
	{Key: "photo8x10", Name: "Photo 8x10\"", Width: 203, Height: 254},
}

// DefaultPaper returns A4 portrait.
func DefaultPaper() Paper {
	return PaperSizes[0]
}

// FindPaper returns the preset with the given key.
func FindPaper(key string) (Paper, bool) {
	for _, p := range PaperSizes {
		if p.Key == key {
			return p, true
		}
	}
	return Paper{}, false
}

// CustomPaper returns a paper of an arbitrary size.
func CustomPaper(w, h float64) Paper {
	return Paper{Key: "custom", Name: "Custom", Width: w, Height: h}
}

// MatchPaper returns the preset matching the size in either orientation
// within 0.1 mm, or a custom paper when none does.
func MatchPaper(w, h float64) Paper {
	for _, p := range PaperSizes {
		if sameSize(p.Width, p.Height, w, h) || sameSize(p.Width, p.Height, h, w) {
			p.Width, p.Height = w, h
			return p
		}
	}
	return CustomPaper(w, h)
}

func sameSize(w1, h1, w2, h2 float64) bool {
	return math.Abs(w1-w2) < 0.1 && math.Abs(h1-h2) < 0.1
}

// IsPortrait reports whether the paper is taller than wide.
func (p Paper) IsPortrait() bool {
	return p.Height >= p.Width
}

// Rotated returns the paper turned 90 degrees.
func (p Paper) Rotated() Paper {
	p.Width, p.Height = p.Height, p.Width
	return p
}

// Oriented returns the paper turned according to mode. In auto mode a
// portrait sheet is turned landscape when the photos are on average wider
// than tall.
func (p Paper) Oriented(mode PaperOrientation, photos []Photo) Paper {
	switch mode {
	case OrientationPortrait:
		if !p.IsPortrait() {
			return p.Rotated()
		}
	case OrientationLandscape:
		if p.IsPortrait() {
			return p.Rotated()
		}
	default:
		if p.IsPortrait() && AverageAspectRatio(photos) > 1 {
			return p.Rotated()
		}
	}
	return p
}

// PrintableArea returns the paper size minus the outer margin on every side.
// Results are never negative.
func (p Paper) PrintableArea(margin float64) (w, h float64) {
	w = math.Max(0, p.Width-2*margin)
	h = math.Max(0, p.Height-2*margin)
	return w, h
}

// AverageAspectRatio returns the mean width/height ratio of the photos, or 1
// when there are none.
func AverageAspectRatio(photos []Photo) float64 {
	var sum float64
	n := 0
	for _, ph := range photos {
		if ph.Width <= 0 || ph.Height <= 0 {
			continue
		}
		sum += ph.AspectRatio()
		n++
	}
	if n == 0 {
		return 1
	}
	return sum / float64(n)
}
