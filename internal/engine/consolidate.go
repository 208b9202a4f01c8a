package engine

import (
	"github.com/piwi3910/FitPrint/internal/model"
)

// Consolidate tries to empty later pages into earlier ones. Working from the
// last page back, it moves every print of a page into the first earlier page
// with room for it, placed by bottom-left fill around the prints already
// there. A page is only removed when all of its prints move; otherwise the
// layout is left as it was. Pages are renumbered afterwards.
//
// The input layout is not modified.
func Consolidate(layout model.Layout, settings model.LayoutSettings) model.Layout {
	pages := clonePages(layout.Pages)

	for improved := true; improved && len(pages) > 1; {
		improved = false
		for i := len(pages) - 1; i > 0; i-- {
			moved, ok := relocate(pages[i].Items, pages[:i], settings)
			if !ok {
				continue
			}
			copy(pages[:i], moved)
			pages = append(pages[:i], pages[i+1:]...)
			improved = true
			break
		}
	}

	for i := range pages {
		pages[i].Number = i + 1
	}
	layout.Pages = pages
	return layout
}

// relocate places every print onto the target pages and returns the updated
// targets, or false if any print found no room.
func relocate(prints []model.PlacedItem, targets []model.Page, settings model.LayoutSettings) ([]model.Page, bool) {
	out := clonePages(targets)
	for _, pi := range prints {
		placed := false
		for j := range out {
			strategy := &bottomLeftFill{}
			strategy.Reset(settings.PageWidth, settings.PageHeight, settings.Spacing)
			for _, existing := range out[j].Items {
				strategy.occupy(PlacedRect(existing))
			}
			pl, ok := strategy.Select([]model.Item{pi.Item}, settings.RotationAllowed)
			if !ok {
				continue
			}
			out[j].Items = append(out[j].Items, model.PlacedItem{
				Item:    pi.Item,
				X:       pl.X,
				Y:       pl.Y,
				Width:   pl.Orientation.Width,
				Height:  pl.Orientation.Height,
				Rotated: pl.Orientation.Rotated,
			})
			placed = true
			break
		}
		if !placed {
			return nil, false
		}
	}
	return out, true
}

func clonePages(pages []model.Page) []model.Page {
	out := make([]model.Page, len(pages))
	for i, p := range pages {
		out[i] = model.Page{Number: p.Number, Items: append([]model.PlacedItem(nil), p.Items...)}
	}
	return out
}
