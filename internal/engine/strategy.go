package engine

import (
	"fmt"

	"github.com/piwi3910/FitPrint/internal/model"
)

// Placement is the choice a strategy makes for one step of the page loop:
// which remaining item goes where, and in which orientation.
type Placement struct {
	Index       int // index into the remaining items passed to Select
	Orientation model.Orientation
	X, Y        float64
	Score       float64
}

// Rect returns the page rectangle the placement covers.
func (p Placement) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Orientation.Width, H: p.Orientation.Height}
}

// Strategy decides where the next print goes on the current page. A strategy
// owns the occupancy state of one page at a time: Reset opens an empty page,
// Select proposes the best placement among the remaining items without
// changing state, and Commit records it.
type Strategy interface {
	Name() model.Strategy
	Reset(pageWidth, pageHeight, spacing float64)
	Select(remaining []model.Item, rotationAllowed bool) (Placement, bool)
	Commit(p Placement)
}

// NewStrategy returns the strategy registered under name. An empty name
// selects bottom-left fill.
func NewStrategy(name model.Strategy) (Strategy, error) {
	switch name {
	case model.StrategyBottomLeft, "":
		return &bottomLeftFill{}, nil
	case model.StrategyMaxRectsBSSF:
		return &maxRects{heuristic: bestShortSideFit}, nil
	case model.StrategyMaxRectsBAF:
		return &maxRects{heuristic: bestAreaFit}, nil
	case model.StrategySkyline:
		return &skyline{}, nil
	case model.StrategyLegacy:
		return &occupiedFirstFit{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, name)
	}
}

// shapeKey identifies items that behave identically for placement purposes.
// Copies of the same photo share a key, so only the first is evaluated.
type shapeKey struct {
	w, h      float64
	canRotate bool
}

func keyOf(it model.Item, rotationAllowed bool) shapeKey {
	return shapeKey{w: it.Width, h: it.Height, canRotate: it.CanRotate(rotationAllowed)}
}
