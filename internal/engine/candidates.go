package engine

// CandidatePositions returns the origins worth testing for a w x h print on
// a page holding the placed rectangles. The origin is always considered
// first, followed by the positions immediately right of and below each placed
// print, separated by spacing. Positions that would push the print off the
// page are dropped and duplicates keep their first occurrence.
func CandidatePositions(placed []Rect, spacing, w, h, pageWidth, pageHeight float64) []Point {
	out := make([]Point, 0, 1+2*len(placed))
	seen := make(map[Point]bool, 1+2*len(placed))

	add := func(p Point) {
		if seen[p] {
			return
		}
		if !InBounds(Rect{X: p.X, Y: p.Y, W: w, H: h}, pageWidth, pageHeight) {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	add(Point{X: 0, Y: 0})
	for _, r := range placed {
		add(Point{X: r.X + r.W + spacing, Y: r.Y})
		add(Point{X: r.X, Y: r.Y + r.H + spacing})
	}
	return out
}
