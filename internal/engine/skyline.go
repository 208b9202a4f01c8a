package engine

import (
	"math"
	"slices"

	"github.com/piwi3910/FitPrint/internal/model"
)

type skylineNode struct {
	x, y, w float64
}

// skyline keeps the upper contour of the prints placed so far as a list of
// horizontal segments and drops each new print onto the lowest segment run
// it fits. As with maxRects, prints reserve trailing spacing and the page is
// widened by spacing.
type skyline struct {
	width, height float64
	spacing       float64
	nodes         []skylineNode
}

func (s *skyline) Name() model.Strategy { return model.StrategySkyline }

func (s *skyline) Reset(pageWidth, pageHeight, spacing float64) {
	s.width = pageWidth + spacing
	s.height = pageHeight + spacing
	s.spacing = spacing
	s.nodes = append(s.nodes[:0], skylineNode{w: s.width})
}

func (s *skyline) Select(remaining []model.Item, rotationAllowed bool) (Placement, bool) {
	var best Placement
	bestY, bestX := math.Inf(1), math.Inf(1)
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
			for n := range s.nodes {
				y, ok := s.fitAt(n, w, h)
				if !ok {
					continue
				}
				x := s.nodes[n].x
				if !found || y < bestY || (y == bestY && x < bestX) {
					best = Placement{Index: i, Orientation: o, X: x, Y: y, Score: -(y*rowWeight + x)}
					bestY, bestX = y, x
					found = true
				}
			}
		}
	}
	return best, found
}

// fitAt returns the resting height of a w x h block whose left edge sits on
// node n, or false when it would cross the page bounds.
func (s *skyline) fitAt(n int, w, h float64) (float64, bool) {
	x := s.nodes[n].x
	if x+w > s.width+epsilon {
		return 0, false
	}
	y := 0.0
	left := w
	for i := n; left > epsilon; i++ {
		if i >= len(s.nodes) {
			return 0, false
		}
		y = math.Max(y, s.nodes[i].y)
		if y+h > s.height+epsilon {
			return 0, false
		}
		left -= s.nodes[i].w
	}
	return y, true
}

func (s *skyline) Commit(p Placement) {
	w := p.Orientation.Width + s.spacing
	h := p.Orientation.Height + s.spacing

	idx := 0
	for idx < len(s.nodes) && s.nodes[idx].x+epsilon < p.X {
		idx++
	}
	s.nodes = slices.Insert(s.nodes, idx, skylineNode{x: p.X, y: p.Y + h, w: w})

	// Shrink or drop the segments now covered by the new one.
	for i := idx + 1; i < len(s.nodes); i++ {
		prevRight := s.nodes[i-1].x + s.nodes[i-1].w
		if s.nodes[i].x >= prevRight-epsilon {
			break
		}
		shrink := prevRight - s.nodes[i].x
		s.nodes[i].x += shrink
		s.nodes[i].w -= shrink
		if s.nodes[i].w > epsilon {
			break
		}
		s.nodes = slices.Delete(s.nodes, i, i+1)
		i--
	}
	s.merge()
}

// merge joins neighbouring segments at the same height.
func (s *skyline) merge() {
	for i := 0; i < len(s.nodes)-1; i++ {
		if math.Abs(s.nodes[i].y-s.nodes[i+1].y) < epsilon {
			s.nodes[i].w += s.nodes[i+1].w
			s.nodes = slices.Delete(s.nodes, i+1, i+2)
			i--
		}
	}
}
