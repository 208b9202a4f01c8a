package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Photo is a source image with its print size and the number of copies wanted.
type Photo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Path        string  `json:"path,omitempty"` // image file, empty for size-only entries
	Width       float64 `json:"width"`          // mm
	Height      float64 `json:"height"`         // mm
	Copies      int     `json:"copies"`
	PixelWidth  int     `json:"pixel_width,omitempty"`
	PixelHeight int     `json:"pixel_height,omitempty"`

	// LockOrientation prevents the prints of this photo from being rotated.
	LockOrientation bool `json:"lock_orientation,omitempty"`
}

// NewPhoto creates a photo with a generated ID.
func NewPhoto(name string, w, h float64, copies int) Photo {
	return Photo{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  w,
		Height: h,
		Copies: copies,
	}
}

// AspectRatio returns width divided by height, or 1 for a degenerate photo.
func (p Photo) AspectRatio() float64 {
	if p.Height == 0 {
		return 1
	}
	return p.Width / p.Height
}

// SetWidth changes the print width and keeps the aspect ratio.
func (p *Photo) SetWidth(w float64) {
	ratio := p.AspectRatio()
	p.Width = w
	p.Height = w / ratio
}

// SetHeight changes the print height and keeps the aspect ratio.
func (p *Photo) SetHeight(h float64) {
	ratio := p.AspectRatio()
	p.Height = h
	p.Width = h * ratio
}

// ExpandPhotos turns photos into one item per requested copy. Each item keeps
// the photo ID and its copy index. Photos with fewer than one copy yield
// nothing.
func ExpandPhotos(photos []Photo) []Item {
	var items []Item
	for _, p := range photos {
		for c := 0; c < p.Copies; c++ {
			items = append(items, Item{
				ID:              fmt.Sprintf("%s-%d", p.ID, c+1),
				PhotoID:         p.ID,
				CopyIndex:       c,
				Label:           p.Name,
				Width:           p.Width,
				Height:          p.Height,
				LockOrientation: p.LockOrientation,
			})
		}
	}
	return items
}

// TotalCopies returns the number of prints requested across all photos.
func TotalCopies(photos []Photo) int {
	n := 0
	for _, p := range photos {
		if p.Copies > 0 {
			n += p.Copies
		}
	}
	return n
}

// FindPhoto returns a pointer to the photo with the given ID, or nil.
func FindPhoto(photos []Photo, id string) *Photo {
	for i := range photos {
		if photos[i].ID == id {
			return &photos[i]
		}
	}
	return nil
}
