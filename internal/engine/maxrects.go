package engine

import (
	"math"

	"github.com/piwi3910/FitPrint/internal/model"
)

type fitHeuristic int

const (
	bestShortSideFit fitHeuristic = iota
	bestAreaFit
)

// maxRects tracks the maximal free rectangles of a page. Every print reserves
// its size plus spacing on the trailing edges, and the free space is widened
// by the same spacing so a print may still end flush with the page edge.
type maxRects struct {
	heuristic fitHeuristic
	spacing   float64
	free      []Rect
}

func (s *maxRects) Name() model.Strategy {
	if s.heuristic == bestAreaFit {
		return model.StrategyMaxRectsBAF
	}
	return model.StrategyMaxRectsBSSF
}

func (s *maxRects) Reset(pageWidth, pageHeight, spacing float64) {
	s.spacing = spacing
	s.free = append(s.free[:0], Rect{W: pageWidth + spacing, H: pageHeight + spacing})
}

func (s *maxRects) Select(remaining []model.Item, rotationAllowed bool) (Placement, bool) {
	var best Placement
	bestPrimary, bestSecondary := math.Inf(1), math.Inf(1)
	found := false
	seen := make(map[shapeKey]bool)

	for i, it := range remaining {
		k := keyOf(it, rotationAllowed)
		if seen[k] {
			continue
		}
		seen[k] = true

		for _, o := range it.Orientations(rotationAllowed) {
			w := o.Width + s.spacing
			h := o.Height + s.spacing
			for _, f := range s.free {
				if w > f.W+epsilon || h > f.H+epsilon {
					continue
				}
				primary, secondary := s.fitScore(f, w, h)
				if !found || primary < bestPrimary || (primary == bestPrimary && secondary < bestSecondary) {
					best = Placement{Index: i, Orientation: o, X: f.X, Y: f.Y, Score: -primary}
					bestPrimary, bestSecondary = primary, secondary
					found = true
				}
			}
		}
	}
	return best, found
}

// fitScore ranks a free rectangle for a w x h request; lower is better.
func (s *maxRects) fitScore(f Rect, w, h float64) (primary, secondary float64) {
	leftoverW := f.W - w
	leftoverH := f.H - h
	short := math.Min(leftoverW, leftoverH)
	long := math.Max(leftoverW, leftoverH)
	if s.heuristic == bestAreaFit {
		return f.Area() - w*h, short
	}
	return short, long
}

func (s *maxRects) Commit(p Placement) {
	used := Rect{X: p.X, Y: p.Y, W: p.Orientation.Width + s.spacing, H: p.Orientation.Height + s.spacing}
	s.free = splitFreeRects(s.free, used)
}

// splitFreeRects removes the used area from every free rectangle it overlaps,
// replacing each with up to four maximal strips, then prunes strips that are
// contained in another.
func splitFreeRects(free []Rect, used Rect) []Rect {
	var out []Rect
	for _, f := range free {
		if !Overlaps(f, used) {
			out = append(out, f)
			continue
		}
		// Left strip (full height of original rect)
		if used.X > f.X+epsilon {
			out = append(out, Rect{X: f.X, Y: f.Y, W: used.X - f.X, H: f.H})
		}
		// Right strip (full height of original rect)
		if used.Right() < f.Right()-epsilon {
			out = append(out, Rect{X: used.Right(), Y: f.Y, W: f.Right() - used.Right(), H: f.H})
		}
		// Top strip (full width of original rect)
		if used.Y > f.Y+epsilon {
			out = append(out, Rect{X: f.X, Y: f.Y, W: f.W, H: used.Y - f.Y})
		}
		// Bottom strip (full width of original rect)
		if used.Bottom() < f.Bottom()-epsilon {
			out = append(out, Rect{X: f.X, Y: used.Bottom(), W: f.W, H: f.Bottom() - used.Bottom()})
		}
	}
	return pruneContained(out)
}

// pruneContained removes any rect that is fully contained within another.
// Of two identical rects only the first is kept.
func pruneContained(rects []Rect) []Rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]Rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !IsContained(a, b) {
				continue
			}
			if IsContained(b, a) && j > i {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}
