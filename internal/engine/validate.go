package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/FitPrint/internal/model"
)

// Validate returns every item that cannot fit an empty page in any permitted
// orientation, in input order. Each rejection carries the largest size the
// page accepts: the page's long and short side when the item may rotate, the
// page as is otherwise. Validate has no side effects.
func Validate(settings model.LayoutSettings, items []model.Item) []model.RejectedItem {
	pw, ph := settings.PageWidth, settings.PageHeight
	var rejected []model.RejectedItem
	for _, it := range items {
		if fitsEmptyPage(it, pw, ph, settings.RotationAllowed) {
			continue
		}
		maxW, maxH := pw, ph
		if settings.RotationAllowed && !it.LockOrientation {
			maxW, maxH = math.Max(pw, ph), math.Min(pw, ph)
		}
		rejected = append(rejected, model.RejectedItem{Item: it, MaxWidth: maxW, MaxHeight: maxH})
	}
	return rejected
}

func fitsEmptyPage(it model.Item, pw, ph float64, rotationAllowed bool) bool {
	for _, o := range it.Orientations(rotationAllowed) {
		if o.Width <= pw+epsilon && o.Height <= ph+epsilon {
			return true
		}
	}
	return false
}

// checkInput rejects settings and items the packer cannot work with.
func checkInput(settings model.LayoutSettings, items []model.Item) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for i, it := range items {
		if !(it.Width > 0) || !(it.Height > 0) || math.IsInf(it.Width, 0) || math.IsInf(it.Height, 0) {
			return fmt.Errorf("%w: item %d (%s) has size %gx%g, both sides must be positive",
				ErrInvalidInput, i, it.ID, it.Width, it.Height)
		}
	}
	return nil
}
