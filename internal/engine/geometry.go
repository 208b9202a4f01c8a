package engine

import "github.com/piwi3910/FitPrint/internal/model"

// epsilon absorbs floating point noise when comparing edges, so prints that
// touch after a computed offset are not reported as overlapping.
const epsilon = 1e-6

// Rect is an axis-aligned rectangle in page coordinates (mm, origin top-left).
type Rect struct {
	X, Y, W, H float64
}

// Point is a candidate origin on a page.
type Point struct {
	X, Y float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Area returns the rectangle area.
func (r Rect) Area() float64 { return r.W * r.H }

// Overlaps returns true if two rectangles overlap. Rectangles that merely
// touch along an edge do not overlap.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W-epsilon && a.X+a.W > b.X+epsilon &&
		a.Y < b.Y+b.H-epsilon && a.Y+a.H > b.Y+epsilon
}

// OccupiedRegion grows a placed rectangle by spacing on its right and bottom
// edges only: the spacing is room that must follow the print.
func OccupiedRegion(placed Rect, spacing float64) Rect {
	return Rect{X: placed.X, Y: placed.Y, W: placed.W + spacing, H: placed.H + spacing}
}

// Inflate grows a rectangle by spacing on all four sides.
func Inflate(r Rect, spacing float64) Rect {
	return Rect{X: r.X - spacing, Y: r.Y - spacing, W: r.W + 2*spacing, H: r.H + 2*spacing}
}

// IsContained returns true if inner lies fully inside outer.
func IsContained(inner, outer Rect) bool {
	return outer.X <= inner.X+epsilon && outer.Y <= inner.Y+epsilon &&
		outer.X+outer.W >= inner.X+inner.W-epsilon &&
		outer.Y+outer.H >= inner.Y+inner.H-epsilon
}

// InBounds returns true if r lies within a page of the given size.
func InBounds(r Rect, pageWidth, pageHeight float64) bool {
	return r.X >= -epsilon && r.Y >= -epsilon &&
		r.X+r.W <= pageWidth+epsilon && r.Y+r.H <= pageHeight+epsilon
}

// Gap returns the clearance between two rectangles: the larger of the
// horizontal and vertical distances, or a negative value when they overlap.
func Gap(a, b Rect) float64 {
	dx := max(b.X-a.Right(), a.X-b.Right())
	dy := max(b.Y-a.Bottom(), a.Y-b.Bottom())
	return max(dx, dy)
}

// PlacedRect returns the page rectangle covered by a placed print.
func PlacedRect(p model.PlacedItem) Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

func near(a, b, tolerance float64) bool {
	d := a - b
	return d <= tolerance && d >= -tolerance
}
