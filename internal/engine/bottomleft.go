package engine

import (
	"math"

	"github.com/piwi3910/FitPrint/internal/model"
)

const (
	// rowWeight makes one mm of height outweigh any horizontal difference
	// on a realistic page.
	rowWeight = 1e6
	// alignBonus is added for each placed print sharing an edge line with
	// the candidate.
	alignBonus = 10.0
	// cornerBonus is added when a placed print lines up on both axes.
	cornerBonus = 50.0
	// alignTolerance is the distance in mm within which edges count as aligned.
	alignTolerance = 1.0
)

// bottomLeftFill evaluates every remaining item, orientation and candidate
// position, preferring the lowest then leftmost spot and rewarding placements
// whose edges line up with prints already on the page.
type bottomLeftFill struct {
	pageWidth, pageHeight float64
	spacing               float64
	placed                []Rect
}

func (s *bottomLeftFill) Name() model.Strategy { return model.StrategyBottomLeft }

func (s *bottomLeftFill) Reset(pageWidth, pageHeight, spacing float64) {
	s.pageWidth = pageWidth
	s.pageHeight = pageHeight
	s.spacing = spacing
	s.placed = s.placed[:0]
}

// occupy marks an existing print as taken. Used to resume packing on a page
// that already holds prints.
func (s *bottomLeftFill) occupy(r Rect) {
	s.placed = append(s.placed, r)
}

func (s *bottomLeftFill) Select(remaining []model.Item, rotationAllowed bool) (Placement, bool) {
	best := Placement{Score: math.Inf(-1)}
	found := false
	seen := make(map[shapeKey]bool)

	for i, it := range remaining {
		k := keyOf(it, rotationAllowed)
		if seen[k] {
			continue
		}
		seen[k] = true

		for _, o := range it.Orientations(rotationAllowed) {
			for _, pos := range CandidatePositions(s.placed, s.spacing, o.Width, o.Height, s.pageWidth, s.pageHeight) {
				r := Rect{X: pos.X, Y: pos.Y, W: o.Width, H: o.Height}
				if !s.fits(r) {
					continue
				}
				score := s.score(r)
				if !found || score > best.Score {
					best = Placement{Index: i, Orientation: o, X: pos.X, Y: pos.Y, Score: score}
					found = true
				}
			}
		}
	}
	return best, found
}

func (s *bottomLeftFill) Commit(p Placement) {
	s.placed = append(s.placed, p.Rect())
}

// fits checks the page bounds and keeps at least spacing between r and every
// placed print.
func (s *bottomLeftFill) fits(r Rect) bool {
	if !InBounds(r, s.pageWidth, s.pageHeight) {
		return false
	}
	for _, p := range s.placed {
		if Overlaps(Inflate(p, s.spacing), r) {
			return false
		}
	}
	return true
}

func (s *bottomLeftFill) score(r Rect) float64 {
	score := -(r.Y*rowWeight + r.X)
	for _, p := range s.placed {
		xAlign := s.alignsX(r, p)
		yAlign := s.alignsY(r, p)
		if xAlign || yAlign {
			score += alignBonus
		}
		if xAlign && yAlign {
			score += cornerBonus
		}
	}
	return score
}

// alignsX reports whether a vertical edge of r lines up with a vertical edge
// of p, either on the same line or flush at the spacing distance.
func (s *bottomLeftFill) alignsX(r, p Rect) bool {
	return near(r.X, p.X, alignTolerance) ||
		near(r.Right(), p.Right(), alignTolerance) ||
		near(r.X, p.Right()+s.spacing, alignTolerance) ||
		near(r.Right()+s.spacing, p.X, alignTolerance)
}

// alignsY is the horizontal-edge counterpart of alignsX.
func (s *bottomLeftFill) alignsY(r, p Rect) bool {
	return near(r.Y, p.Y, alignTolerance) ||
		near(r.Bottom(), p.Bottom(), alignTolerance) ||
		near(r.Y, p.Bottom()+s.spacing, alignTolerance) ||
		near(r.Bottom()+s.spacing, p.Y, alignTolerance)
}
