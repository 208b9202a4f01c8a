package model

import "github.com/google/uuid"

// Item is a single print to be laid out. Copies of a photo are expanded into
// separate items before packing.
type Item struct {
	ID              string  `json:"id" msgpack:"id"`
	PhotoID         string  `json:"photo_id,omitempty" msgpack:"photo_id,omitempty"`
	CopyIndex       int     `json:"copy_index" msgpack:"copy_index"`
	Label           string  `json:"label,omitempty" msgpack:"label,omitempty"`
	Width           float64 `json:"width" msgpack:"width"`                                           // mm
	Height          float64 `json:"height" msgpack:"height"`                                         // mm
	LockOrientation bool    `json:"lock_orientation,omitempty" msgpack:"lock_orientation,omitempty"` // never rotate, even when allowed
}

// NewItem creates a standalone item with a generated ID.
func NewItem(label string, w, h float64) Item {
	return Item{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
	}
}

// Area returns the area of the item in square mm.
func (it Item) Area() float64 {
	return it.Width * it.Height
}

// CanRotate reports whether the item may be turned 90 degrees under the given
// rotation policy. Square items never rotate since both orientations are equal.
func (it Item) CanRotate(rotationAllowed bool) bool {
	return rotationAllowed && !it.LockOrientation && it.Width != it.Height
}

// Orientation is a width/height pairing of an item, as authored or rotated.
type Orientation struct {
	Width   float64
	Height  float64
	Rotated bool
}

// Orientations returns the orientations to try for the item, unrotated first.
func (it Item) Orientations(rotationAllowed bool) []Orientation {
	o := []Orientation{{Width: it.Width, Height: it.Height}}
	if it.CanRotate(rotationAllowed) {
		o = append(o, Orientation{Width: it.Height, Height: it.Width, Rotated: true})
	}
	return o
}

// PlacedItem is an item bound to a position on a page. Width and Height are
// the dimensions after rotation.
type PlacedItem struct {
	Item    Item    `json:"item" msgpack:"item"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	Width   float64 `json:"width" msgpack:"width"`
	Height  float64 `json:"height" msgpack:"height"`
	Rotated bool    `json:"rotated" msgpack:"rotated"`
}

// Page holds the placements of one physical sheet in insertion order.
type Page struct {
	Number int          `json:"number" msgpack:"number"`
	Items  []PlacedItem `json:"items" msgpack:"items"`
}

// UsedArea returns the total area covered by prints on the page.
func (p Page) UsedArea() float64 {
	var a float64
	for _, pi := range p.Items {
		a += pi.Width * pi.Height
	}
	return a
}

// Efficiency returns the used percentage of a page of the given size.
func (p Page) Efficiency(pageWidth, pageHeight float64) float64 {
	total := pageWidth * pageHeight
	if total == 0 {
		return 0
	}
	return p.UsedArea() / total * 100.0
}

// RejectedItem is an item that cannot fit an empty page, annotated with the
// largest size the page could have accepted.
type RejectedItem struct {
	Item      Item    `json:"item" msgpack:"item"`
	MaxWidth  float64 `json:"max_width" msgpack:"max_width"`
	MaxHeight float64 `json:"max_height" msgpack:"max_height"`
}

// Layout is the result of one packing request.
type Layout struct {
	PageWidth  float64        `json:"page_width" msgpack:"page_width"`
	PageHeight float64        `json:"page_height" msgpack:"page_height"`
	Spacing    float64        `json:"spacing" msgpack:"spacing"`
	Strategy   Strategy       `json:"strategy" msgpack:"strategy"`
	Pages      []Page         `json:"pages" msgpack:"pages"`
	Rejected   []RejectedItem `json:"rejected,omitempty" msgpack:"rejected,omitempty"`
	Unplaced   []Item         `json:"unplaced,omitempty" msgpack:"unplaced,omitempty"`
}

// PlacedCount returns the number of items placed across all pages.
func (l Layout) PlacedCount() int {
	n := 0
	for _, p := range l.Pages {
		n += len(p.Items)
	}
	return n
}

// TotalEfficiency returns the overall paper utilization across all pages.
func (l Layout) TotalEfficiency() float64 {
	if len(l.Pages) == 0 {
		return 0
	}
	var used float64
	for _, p := range l.Pages {
		used += p.UsedArea()
	}
	total := l.PageWidth * l.PageHeight * float64(len(l.Pages))
	if total == 0 {
		return 0
	}
	return used / total * 100.0
}

// LayoutStats summarizes a layout for display.
type LayoutStats struct {
	TotalItems      int     `json:"total_items"`
	Pages           int     `json:"pages"`
	AveragePerPage  float64 `json:"average_per_page"`
	Efficiency      float64 `json:"efficiency"`
	RejectedItems   int     `json:"rejected_items"`
	UnplacedItems   int     `json:"unplaced_items"`
	RotatedItems    int     `json:"rotated_items"`
	LastPageFillPct float64 `json:"last_page_fill_pct"`
}

// Stats computes summary statistics for the layout.
func (l Layout) Stats() LayoutStats {
	s := LayoutStats{
		TotalItems:    l.PlacedCount(),
		Pages:         len(l.Pages),
		Efficiency:    l.TotalEfficiency(),
		RejectedItems: len(l.Rejected),
		UnplacedItems: len(l.Unplaced),
	}
	if s.Pages > 0 {
		s.AveragePerPage = float64(s.TotalItems) / float64(s.Pages)
		s.LastPageFillPct = l.Pages[s.Pages-1].Efficiency(l.PageWidth, l.PageHeight)
	}
	for _, p := range l.Pages {
		for _, pi := range p.Items {
			if pi.Rotated {
				s.RotatedItems++
			}
		}
	}
	return s
}

// Project is the persisted state of a print job.
type Project struct {
	Name     string          `json:"name"`
	Photos   []Photo         `json:"photos"`
	Paper    Paper           `json:"paper"`
	Settings ProjectSettings `json:"settings"`
	Result   *Layout         `json:"result,omitempty"`
}

// NewProject creates an empty project on A4 paper with default settings.
func NewProject() Project {
	return Project{
		Name:     "Untitled Project",
		Photos:   []Photo{},
		Paper:    DefaultPaper(),
		Settings: DefaultProjectSettings(),
	}
}
