package engine

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/piwi3910/FitPrint/internal/model"
)

// balancedAreaBand is the area difference in square mm below which two
// prints count as the same size in balanced order.
const balancedAreaBand = 100.0

// OrderItems returns a copy of items in the given order. Every order is
// stable: items that compare equal keep their input order. Balanced order
// groups prints of similar area and shuffles each group with a source seeded
// by seed, so the same seed always yields the same order.
func OrderItems(items []model.Item, order model.Order, seed int64) ([]model.Item, error) {
	out := make([]model.Item, len(items))
	copy(out, items)

	var key func(it model.Item) float64
	switch order {
	case model.OrderAreaDesc, "":
		key = func(it model.Item) float64 { return it.Area() }
	case model.OrderInput:
		return out, nil
	case model.OrderHeightDesc:
		key = func(it model.Item) float64 { return it.Height }
	case model.OrderWidthDesc:
		key = func(it model.Item) float64 { return it.Width }
	case model.OrderPerimeterDesc:
		key = func(it model.Item) float64 { return it.Width + it.Height }
	case model.OrderMaxSideDesc:
		key = func(it model.Item) float64 { return math.Max(it.Width, it.Height) }
	case model.OrderBalanced:
		return balancedOrder(out, seed), nil
	default:
		return nil, fmt.Errorf("%w: unknown order %q", ErrInvalidInput, order)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) > key(out[j])
	})
	return out, nil
}

// balancedOrder sorts by area descending, then shuffles every run of items
// whose area lies within balancedAreaBand of the run's largest item.
func balancedOrder(items []model.Item, seed int64) []model.Item {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Area() > items[j].Area()
	})

	rng := rand.New(rand.NewSource(seed))
	for start := 0; start < len(items); {
		end := start + 1
		for end < len(items) && items[start].Area()-items[end].Area() < balancedAreaBand {
			end++
		}
		band := items[start:end]
		rng.Shuffle(len(band), func(i, j int) {
			band[i], band[j] = band[j], band[i]
		})
		start = end
	}
	return items
}
