package engine

import (
	"github.com/piwi3910/FitPrint/internal/model"
)

// occupiedFirstFit places the first remaining item, in order, that fits
// anywhere on the page. Every print occupies its size plus spacing on the
// right and bottom, and candidates are taken from the corners of those
// occupied regions. Among the candidates for that item the lowest, then
// leftmost wins.
type occupiedFirstFit struct {
	pageWidth, pageHeight float64
	spacing               float64
	occupied              []Rect
}

func (s *occupiedFirstFit) Name() model.Strategy { return model.StrategyLegacy }

func (s *occupiedFirstFit) Reset(pageWidth, pageHeight, spacing float64) {
	s.pageWidth = pageWidth
	s.pageHeight = pageHeight
	s.spacing = spacing
	s.occupied = s.occupied[:0]
}

func (s *occupiedFirstFit) Select(remaining []model.Item, rotationAllowed bool) (Placement, bool) {
	seen := make(map[shapeKey]bool)
	for i, it := range remaining {
		k := keyOf(it, rotationAllowed)
		if seen[k] {
			continue
		}
		seen[k] = true

		var best Placement
		found := false
		for _, o := range it.Orientations(rotationAllowed) {
			for _, pos := range s.candidates(o.Width, o.Height) {
				r := Rect{X: pos.X, Y: pos.Y, W: o.Width, H: o.Height}
				if !s.fits(r) {
					continue
				}
				score := -(r.Y*rowWeight + r.X)
				if !found || score > best.Score {
					best = Placement{Index: i, Orientation: o, X: pos.X, Y: pos.Y, Score: score}
					found = true
				}
			}
		}
		if found {
			return best, true
		}
	}
	return Placement{}, false
}

// candidates lists the origin plus the right and bottom corners of every
// occupied region. The occupied regions already include the spacing, so the
// candidate generator is called with none.
func (s *occupiedFirstFit) candidates(w, h float64) []Point {
	return CandidatePositions(s.occupied, 0, w, h, s.pageWidth, s.pageHeight)
}

func (s *occupiedFirstFit) fits(r Rect) bool {
	if !InBounds(r, s.pageWidth, s.pageHeight) {
		return false
	}
	region := OccupiedRegion(r, s.spacing)
	for _, o := range s.occupied {
		if Overlaps(o, region) {
			return false
		}
	}
	return true
}

func (s *occupiedFirstFit) Commit(p Placement) {
	s.occupied = append(s.occupied, OccupiedRegion(p.Rect(), s.spacing))
}
