package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/FitPrint/internal/model"
)

// Packer lays items out onto as few pages as it can.
type Packer struct {
	Settings model.LayoutSettings
	strategy Strategy
	log      *zap.Logger
}

// Option configures a Packer.
type Option func(*Packer)

// WithLogger sets the logger used for page and placement decisions.
func WithLogger(l *zap.Logger) Option {
	return func(p *Packer) {
		if l != nil {
			p.log = l
		}
	}
}

// WithStrategy packs with a caller-supplied strategy instead of the one
// named in the settings.
func WithStrategy(st Strategy) Option {
	return func(p *Packer) {
		p.strategy = st
	}
}

// New creates a Packer for the given settings. Empty strategy and order
// fields take their defaults.
func New(settings model.LayoutSettings, opts ...Option) *Packer {
	p := &Packer{Settings: settings.WithDefaults(), log: zap.NewNop()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Pack is shorthand for New(settings, opts...).Pack(items).
func Pack(settings model.LayoutSettings, items []model.Item, opts ...Option) (model.Layout, error) {
	return New(settings, opts...).Pack(items)
}

// Pack places every item and returns the resulting layout.
//
// Invalid settings or item sizes return ErrInvalidInput and an empty layout.
// When any item cannot fit an empty page, nothing is packed: the layout lists
// the rejected items and ErrOversize is returned. If a freshly opened page
// accepts none of the remaining items, packing stops with ErrUnplaceable and
// the layout holds the pages packed so far plus the unplaced items.
func (p *Packer) Pack(items []model.Item) (model.Layout, error) {
	s := p.Settings
	layout := model.Layout{
		PageWidth:  s.PageWidth,
		PageHeight: s.PageHeight,
		Spacing:    s.Spacing,
		Strategy:   s.Strategy,
		Pages:      []model.Page{},
	}

	if err := checkInput(s, items); err != nil {
		return layout, err
	}

	if rejected := Validate(s, items); len(rejected) > 0 {
		layout.Rejected = rejected
		p.log.Info("items exceed the printable area",
			zap.Int("rejected", len(rejected)),
			zap.Float64("page_width", s.PageWidth),
			zap.Float64("page_height", s.PageHeight))
		return layout, fmt.Errorf("%w: %d of %d items", ErrOversize, len(rejected), len(items))
	}

	ordered, err := OrderItems(items, s.Order, s.Seed)
	if err != nil {
		return layout, err
	}
	strategy := p.strategy
	if strategy == nil {
		if strategy, err = NewStrategy(s.Strategy); err != nil {
			return layout, err
		}
	}
	layout.Strategy = strategy.Name()

	pages, unplaced := p.fill(strategy, ordered)
	layout.Pages = pages
	if len(unplaced) > 0 {
		layout.Unplaced = unplaced
		p.log.Error("page loop stopped on an empty page",
			zap.Int("pages", len(pages)),
			zap.Int("unplaced", len(unplaced)),
			zap.String("next_item", unplaced[0].ID))
		return layout, fmt.Errorf("%w: %d items left after page %d", ErrUnplaceable, len(unplaced), len(pages))
	}

	if s.Consolidate {
		layout = Consolidate(layout, s)
	}

	p.log.Debug("packing complete",
		zap.String("strategy", string(layout.Strategy)),
		zap.Int("items", len(items)),
		zap.Int("pages", len(layout.Pages)))
	return layout, nil
}

// fill runs the page loop: keep asking the strategy for the best placement on
// the open page, and open a new page when it has none. It returns the packed
// pages and, if an empty page accepted nothing, the items left over.
func (p *Packer) fill(strategy Strategy, remaining []model.Item) ([]model.Page, []model.Item) {
	s := p.Settings
	pages := []model.Page{}

	for len(remaining) > 0 {
		strategy.Reset(s.PageWidth, s.PageHeight, s.Spacing)
		page := model.Page{Number: len(pages) + 1}
		p.log.Debug("page opened", zap.Int("page", page.Number), zap.Int("remaining", len(remaining)))

		for len(remaining) > 0 {
			pl, ok := strategy.Select(remaining, s.RotationAllowed)
			if !ok {
				break
			}
			strategy.Commit(pl)
			it := remaining[pl.Index]
			page.Items = append(page.Items, model.PlacedItem{
				Item:    it,
				X:       pl.X,
				Y:       pl.Y,
				Width:   pl.Orientation.Width,
				Height:  pl.Orientation.Height,
				Rotated: pl.Orientation.Rotated,
			})
			p.log.Debug("item placed",
				zap.Int("page", page.Number),
				zap.String("item", it.ID),
				zap.Float64("x", pl.X),
				zap.Float64("y", pl.Y),
				zap.Bool("rotated", pl.Orientation.Rotated))
			remaining = removeAt(remaining, pl.Index)
		}

		if len(page.Items) == 0 {
			return pages, remaining
		}
		p.log.Debug("page closed", zap.Int("page", page.Number), zap.Int("items", len(page.Items)))
		pages = append(pages, page)
	}
	return pages, nil
}

// removeAt returns items without the element at i, preserving order. The
// input slice is not modified.
func removeAt(items []model.Item, i int) []model.Item {
	out := make([]model.Item, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
