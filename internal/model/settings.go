package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Strategy names a placement heuristic.
type Strategy string

const (
	StrategyBottomLeft   Strategy = "bottom-left"   // Bottom-left fill with edge alignment bonus (default)
	StrategyMaxRectsBSSF Strategy = "maxrects-bssf" // Free-rectangle splitting, best short side fit
	StrategyMaxRectsBAF  Strategy = "maxrects-baf"  // Free-rectangle splitting, best area fit
	StrategySkyline      Strategy = "skyline"       // Bottom-left skyline
	StrategyLegacy       Strategy = "legacy"        // Right/below occupied-region candidates
)

// Strategies lists every supported strategy in display order.
func Strategies() []Strategy {
	return []Strategy{StrategyBottomLeft, StrategyMaxRectsBSSF, StrategyMaxRectsBAF, StrategySkyline, StrategyLegacy}
}

// StrategyNames returns the strategy names for UI dropdowns and flag help.
func StrategyNames() []string {
	s := Strategies()
	names := make([]string, len(s))
	for i, v := range s {
		names[i] = string(v)
	}
	return names
}

// Order names the order items are offered to the placement strategy.
type Order string

const (
	OrderAreaDesc      Order = "area-desc" // Largest area first (default)
	OrderInput         Order = "input"     // As supplied
	OrderHeightDesc    Order = "height-desc"
	OrderWidthDesc     Order = "width-desc"
	OrderPerimeterDesc Order = "perimeter-desc"
	OrderMaxSideDesc   Order = "max-side-desc"
	OrderBalanced      Order = "balanced" // Area bands shuffled with a seeded source
)

// Orders lists every supported order in display order.
func Orders() []Order {
	return []Order{OrderAreaDesc, OrderInput, OrderHeightDesc, OrderWidthDesc, OrderPerimeterDesc, OrderMaxSideDesc, OrderBalanced}
}

// OrderNames returns the order names for UI dropdowns and flag help.
func OrderNames() []string {
	o := Orders()
	names := make([]string, len(o))
	for i, v := range o {
		names[i] = string(v)
	}
	return names
}

// LayoutSettings is the configuration of a single packing request. Page
// dimensions are the printable area, already reduced by any outer margin.
type LayoutSettings struct {
	PageWidth       float64  `json:"page_width" validate:"gt=0"`
	PageHeight      float64  `json:"page_height" validate:"gt=0"`
	Spacing         float64  `json:"spacing" validate:"gte=0"`
	RotationAllowed bool     `json:"rotation_allowed"`
	Strategy        Strategy `json:"strategy" validate:"omitempty,oneof=bottom-left maxrects-bssf maxrects-baf skyline legacy"`
	Order           Order    `json:"order" validate:"omitempty,oneof=area-desc input height-desc width-desc perimeter-desc max-side-desc balanced"`
	Seed            int64    `json:"seed"`
	Consolidate     bool     `json:"consolidate"`
}

var validate = validator.New()

// Validate checks the settings and returns a readable error listing every
// offending field.
func (s LayoutSettings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s %s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// WithDefaults fills empty strategy and order fields.
func (s LayoutSettings) WithDefaults() LayoutSettings {
	if s.Strategy == "" {
		s.Strategy = StrategyBottomLeft
	}
	if s.Order == "" {
		s.Order = OrderAreaDesc
	}
	return s
}

// ProjectSettings holds the user-facing options of a project. They are turned
// into LayoutSettings once the paper and photos are known.
type ProjectSettings struct {
	Orientation     PaperOrientation `json:"orientation"`
	OuterMargin     float64          `json:"outer_margin"` // mm on every side of the paper
	Spacing         float64          `json:"spacing"`      // mm between prints
	RotationAllowed bool             `json:"rotation_allowed"`
	Strategy        Strategy         `json:"strategy"`
	Order           Order            `json:"order"`
	Seed            int64            `json:"seed"`
	Consolidate     bool             `json:"consolidate"`

	// Scaling
	ScaleMode ScaleMode `json:"scale_mode"`
	MinSize   float64   `json:"min_size"` // mm, shortest allowed side after scaling
	MaxSize   float64   `json:"max_size"` // mm, longest allowed side after scaling

	// Import
	DPI          float64 `json:"dpi"`           // used to convert pixel sizes when importing image files
	DefaultWidth float64 `json:"default_width"` // mm, width given to imported photos
}

// DefaultProjectSettings returns the settings used for new projects.
func DefaultProjectSettings() ProjectSettings {
	return ProjectSettings{
		Orientation:     OrientationAuto,
		OuterMargin:     10.0,
		Spacing:         5.0,
		RotationAllowed: true,
		Strategy:        StrategyBottomLeft,
		Order:           OrderAreaDesc,
		Seed:            1,
		ScaleMode:       ScaleNone,
		MinSize:         20.0,
		MaxSize:         200.0,
		DPI:             300.0,
		DefaultWidth:    50.0,
	}
}

// LayoutSettings resolves the paper orientation and printable area for the
// given photos and returns the packing configuration.
func (ps ProjectSettings) LayoutSettings(paper Paper, photos []Photo) LayoutSettings {
	oriented := paper.Oriented(ps.Orientation, photos)
	w, h := oriented.PrintableArea(ps.OuterMargin)
	return LayoutSettings{
		PageWidth:       w,
		PageHeight:      h,
		Spacing:         ps.Spacing,
		RotationAllowed: ps.RotationAllowed,
		Strategy:        ps.Strategy,
		Order:           ps.Order,
		Seed:            ps.Seed,
		Consolidate:     ps.Consolidate,
	}.WithDefaults()
}
