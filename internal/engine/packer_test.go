package engine

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/piwi3910/FitPrint/internal/model"
)

func item(id string, w, h float64) model.Item {
	return model.Item{ID: id, Label: id, Width: w, Height: h}
}

func settings(pw, ph, spacing float64, rotation bool) model.LayoutSettings {
	return model.LayoutSettings{
		PageWidth:       pw,
		PageHeight:      ph,
		Spacing:         spacing,
		RotationAllowed: rotation,
		Strategy:        model.StrategyBottomLeft,
		Order:           model.OrderAreaDesc,
	}
}

func placedAt(pi model.PlacedItem) [4]float64 {
	return [4]float64{pi.X, pi.Y, pi.Width, pi.Height}
}

func TestPack_SingleItem(t *testing.T) {
	layout, err := Pack(settings(100, 100, 0, false), []model.Item{item("1", 60, 60)})
	require.NoError(t, err)
	require.Len(t, layout.Pages, 1)
	require.Len(t, layout.Pages[0].Items, 1)

	pi := layout.Pages[0].Items[0]
	assert.Equal(t, "1", pi.Item.ID)
	assert.Equal(t, [4]float64{0, 0, 60, 60}, placedAt(pi))
	assert.False(t, pi.Rotated)
	assert.Equal(t, 1, layout.Pages[0].Number)
	assert.Equal(t, model.StrategyBottomLeft, layout.Strategy)
}

func TestPack_NoItems(t *testing.T) {
	layout, err := Pack(settings(100, 100, 0, false), nil)
	require.NoError(t, err)
	assert.Empty(t, layout.Pages)
	assert.Empty(t, layout.Rejected)
	assert.Empty(t, layout.Unplaced)
}

func TestPack_EmptyPagesEncodeAsArray(t *testing.T) {
	empty, err := Pack(settings(100, 100, 0, false), nil)
	require.NoError(t, err)
	oversize, err := Pack(settings(100, 100, 0, false), []model.Item{item("1", 200, 200)})
	require.ErrorIs(t, err, ErrOversize)

	for _, layout := range []model.Layout{empty, oversize} {
		require.NotNil(t, layout.Pages)
		data, err := json.Marshal(layout)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"pages":[]`)
	}
}

func TestPack_FitsWithoutRotationIsNotRejected(t *testing.T) {
	layout, err := Pack(settings(100, 60, 0, false), []model.Item{item("1", 80, 50)})
	require.NoError(t, err)
	assert.Empty(t, layout.Rejected)
	require.Len(t, layout.Pages, 1)
	assert.Equal(t, [4]float64{0, 0, 80, 50}, placedAt(layout.Pages[0].Items[0]))
}

func TestPack_OversizeRejectsWholeRequest(t *testing.T) {
	items := []model.Item{item("1", 20, 20), item("2", 120, 10)}
	layout, err := Pack(settings(100, 60, 0, false), items)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOversize))
	assert.Empty(t, layout.Pages)
	require.Len(t, layout.Rejected, 1)
	assert.Equal(t, "2", layout.Rejected[0].Item.ID)
	assert.Equal(t, 100.0, layout.Rejected[0].MaxWidth)
	assert.Equal(t, 60.0, layout.Rejected[0].MaxHeight)
}

func TestPack_SpacingSideBySide(t *testing.T) {
	// Two 50mm prints and a 5mm gap need 105mm of width.
	items := []model.Item{item("1", 50, 50), item("2", 50, 50)}
	layout, err := Pack(settings(105, 100, 5, true), items)
	require.NoError(t, err)
	require.Len(t, layout.Pages, 1)
	require.Len(t, layout.Pages[0].Items, 2)
	assert.Equal(t, [4]float64{0, 0, 50, 50}, placedAt(layout.Pages[0].Items[0]))
	assert.Equal(t, [4]float64{55, 0, 50, 50}, placedAt(layout.Pages[0].Items[1]))
	assert.Equal(t, "1", layout.Pages[0].Items[0].Item.ID)
	assert.Equal(t, "2", layout.Pages[0].Items[1].Item.ID)
}

func TestPack_SpacingForcesSecondPage(t *testing.T) {
	items := []model.Item{item("1", 50, 50), item("2", 50, 50)}
	layout, err := Pack(settings(100, 100, 5, true), items)
	require.NoError(t, err)
	require.Len(t, layout.Pages, 2)
	assert.Equal(t, [4]float64{0, 0, 50, 50}, placedAt(layout.Pages[1].Items[0]))
}

func TestPack_ExhaustedPageOpensNext(t *testing.T) {
	items := []model.Item{item("1", 40, 40), item("2", 40, 40)}
	layout, err := Pack(settings(50, 50, 0, false), items)
	require.NoError(t, err)
	require.Len(t, layout.Pages, 2)
	for i, p := range layout.Pages {
		assert.Equal(t, i+1, p.Number)
		require.Len(t, p.Items, 1)
		assert.Equal(t, 0.0, p.Items[0].X)
		assert.Equal(t, 0.0, p.Items[0].Y)
	}
	assert.Equal(t, "1", layout.Pages[0].Items[0].Item.ID)
	assert.Equal(t, "2", layout.Pages[1].Items[0].Item.ID)
}

func TestPack_RotationWhenOnlyRotatedFits(t *testing.T) {
	layout, err := Pack(settings(100, 50, 0, true), []model.Item{item("1", 30, 80)})
	require.NoError(t, err)
	require.Len(t, layout.Pages, 1)
	pi := layout.Pages[0].Items[0]
	assert.Equal(t, [4]float64{0, 0, 80, 30}, placedAt(pi))
	assert.True(t, pi.Rotated)
}

func TestPack_LockedOrientationIsRejected(t *testing.T) {
	it := item("1", 30, 80)
	it.LockOrientation = true
	layout, err := Pack(settings(100, 50, 0, true), []model.Item{it})
	assert.ErrorIs(t, err, ErrOversize)
	require.Len(t, layout.Rejected, 1)
	assert.Equal(t, 100.0, layout.Rejected[0].MaxWidth)
	assert.Equal(t, 50.0, layout.Rejected[0].MaxHeight)
}

func TestPack_GlobalSelectionFillsGaps(t *testing.T) {
	// C is smaller and sorted last, but it fills the gap next to A before
	// the page closes; B goes to the next page.
	items := []model.Item{item("A", 70, 70), item("B", 70, 70), item("C", 30, 30)}
	layout, err := Pack(settings(100, 100, 0, false), items)
	require.NoError(t, err)
	require.Len(t, layout.Pages, 2)
	require.Len(t, layout.Pages[0].Items, 2)
	assert.Equal(t, "A", layout.Pages[0].Items[0].Item.ID)
	assert.Equal(t, "C", layout.Pages[0].Items[1].Item.ID)
	assert.Equal(t, [4]float64{70, 0, 30, 30}, placedAt(layout.Pages[0].Items[1]))
	assert.Equal(t, "B", layout.Pages[1].Items[0].Item.ID)
}

func TestPack_LargestAreaGoesFirst(t *testing.T) {
	items := []model.Item{item("A", 20, 20), item("B", 50, 50)}
	layout, err := Pack(settings(100, 100, 0, false), items)
	require.NoError(t, err)
	require.Len(t, layout.Pages, 1)
	assert.Equal(t, "B", layout.Pages[0].Items[0].Item.ID)
	assert.Equal(t, [4]float64{0, 0, 50, 50}, placedAt(layout.Pages[0].Items[0]))
	assert.Equal(t, "A", layout.Pages[0].Items[1].Item.ID)
	assert.Equal(t, [4]float64{50, 0, 20, 20}, placedAt(layout.Pages[0].Items[1]))
}

func TestPack_InvalidInput(t *testing.T) {
	good := []model.Item{item("1", 10, 10)}

	tests := []struct {
		name     string
		settings model.LayoutSettings
		items    []model.Item
	}{
		{"zero page width", settings(0, 100, 0, false), good},
		{"negative page height", settings(100, -1, 0, false), good},
		{"negative spacing", settings(100, 100, -2, false), good},
		{"unknown strategy", func() model.LayoutSettings {
			s := settings(100, 100, 0, false)
			s.Strategy = "spiral"
			return s
		}(), good},
		{"unknown order", func() model.LayoutSettings {
			s := settings(100, 100, 0, false)
			s.Order = "random"
			return s
		}(), good},
		{"zero item width", settings(100, 100, 0, false), []model.Item{item("1", 0, 10)}},
		{"negative item height", settings(100, 100, 0, false), []model.Item{item("1", 10, -5)}},
		{"NaN item size", settings(100, 100, 0, false), []model.Item{item("1", math.NaN(), 10)}},
		{"infinite item size", settings(100, 100, 0, false), []model.Item{item("1", math.Inf(1), 10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := Pack(tt.settings, tt.items)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, layout.Pages)
		})
	}
}

// acceptOnly places one accepted item per page at the origin and refuses
// every other item.
type acceptOnly struct {
	accept map[string]bool
	used   bool
}

func (s *acceptOnly) Name() model.Strategy { return "accept-only" }

func (s *acceptOnly) Reset(_, _, _ float64) { s.used = false }

func (s *acceptOnly) Select(remaining []model.Item, rotationAllowed bool) (Placement, bool) {
	if s.used {
		return Placement{}, false
	}
	for i, it := range remaining {
		if s.accept[it.ID] {
			return Placement{Index: i, Orientation: it.Orientations(rotationAllowed)[0]}, true
		}
	}
	return Placement{}, false
}

func (s *acceptOnly) Commit(Placement) { s.used = true }

func TestPack_UnplaceableReturnsPartialLayout(t *testing.T) {
	st := settings(100, 100, 0, false)
	st.Order = model.OrderInput
	items := []model.Item{item("a", 10, 10), item("b", 10, 10), item("c", 10, 10)}

	layout, err := Pack(st, items, WithStrategy(&acceptOnly{accept: map[string]bool{"a": true, "c": true}}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnplaceable)
	assert.Equal(t, model.Strategy("accept-only"), layout.Strategy)

	require.Len(t, layout.Pages, 2)
	assert.Equal(t, "a", layout.Pages[0].Items[0].Item.ID)
	assert.Equal(t, "c", layout.Pages[1].Items[0].Item.ID)
	require.Len(t, layout.Unplaced, 1)
	assert.Equal(t, "b", layout.Unplaced[0].ID)
}

func TestPack_WithLogger(t *testing.T) {
	layout, err := Pack(settings(100, 100, 0, false), []model.Item{item("1", 10, 10)}, WithLogger(zap.NewExample()), WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, layout.PlacedCount())
}

func TestPack_DoesNotModifyInput(t *testing.T) {
	items := []model.Item{item("small", 10, 10), item("big", 50, 50)}
	_, err := Pack(settings(100, 100, 0, false), items)
	require.NoError(t, err)
	assert.Equal(t, "small", items[0].ID)
	assert.Equal(t, "big", items[1].ID)
}

func TestPack_EveryStrategyPlacesOnEmptyPageAtOrigin(t *testing.T) {
	for _, name := range model.Strategies() {
		t.Run(string(name), func(t *testing.T) {
			s := settings(100, 100, 5, false)
			s.Strategy = name
			layout, err := Pack(s, []model.Item{item("1", 60, 40)})
			require.NoError(t, err)
			assert.Equal(t, name, layout.Strategy)
			assert.Equal(t, [4]float64{0, 0, 60, 40}, placedAt(layout.Pages[0].Items[0]))
		})
	}
}

func TestPack_AlternativeStrategiesFillRightOfFirstPrint(t *testing.T) {
	for _, name := range model.Strategies() {
		t.Run(string(name), func(t *testing.T) {
			s := settings(100, 100, 0, false)
			s.Strategy = name
			layout, err := Pack(s, []model.Item{item("small", 40, 40), item("wide", 60, 40)})
			require.NoError(t, err)
			require.Len(t, layout.Pages, 1)
			require.Len(t, layout.Pages[0].Items, 2)
			assert.Equal(t, "wide", layout.Pages[0].Items[0].Item.ID)
			assert.Equal(t, [4]float64{60, 0, 40, 40}, placedAt(layout.Pages[0].Items[1]))
		})
	}
}

func randomItems(rng *rand.Rand, n int) []model.Item {
	items := make([]model.Item, n)
	for i := range items {
		w := float64(10 + rng.Intn(81))
		h := float64(10 + rng.Intn(81))
		items[i] = model.Item{ID: string(rune('a'+i%26)) + string(rune('0'+i/26)), Width: w, Height: h}
		items[i].LockOrientation = rng.Intn(5) == 0
	}
	return items
}

// checkLayout asserts the layout invariants every strategy must keep.
func checkLayout(t *testing.T, s model.LayoutSettings, items []model.Item, layout model.Layout) {
	t.Helper()

	byID := make(map[string]model.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	seen := make(map[string]bool)
	for pi, page := range layout.Pages {
		assert.Equal(t, pi+1, page.Number)
		assert.NotEmpty(t, page.Items, "page %d is empty", page.Number)

		for i, a := range page.Items {
			assert.False(t, seen[a.Item.ID], "item %s placed twice", a.Item.ID)
			seen[a.Item.ID] = true

			orig, ok := byID[a.Item.ID]
			require.True(t, ok, "unknown item %s", a.Item.ID)
			if a.Rotated {
				assert.True(t, orig.CanRotate(s.RotationAllowed), "item %s rotated illegally", a.Item.ID)
				assert.Equal(t, orig.Width, a.Height)
				assert.Equal(t, orig.Height, a.Width)
			} else {
				assert.Equal(t, orig.Width, a.Width)
				assert.Equal(t, orig.Height, a.Height)
			}

			r := PlacedRect(a)
			assert.True(t, InBounds(r, s.PageWidth, s.PageHeight), "item %s out of bounds: %+v", a.Item.ID, r)

			for _, b := range page.Items[i+1:] {
				gap := Gap(r, PlacedRect(b))
				assert.GreaterOrEqual(t, gap, s.Spacing-1e-6,
					"items %s and %s on page %d are %.3fmm apart", a.Item.ID, b.Item.ID, page.Number, gap)
			}
		}
	}
	assert.Equal(t, len(items), len(seen)+len(layout.Unplaced)+len(layout.Rejected))
}

func TestPack_LayoutInvariants(t *testing.T) {
	for _, name := range model.Strategies() {
		for _, rotation := range []bool{false, true} {
			for seed := int64(1); seed <= 5; seed++ {
				rng := rand.New(rand.NewSource(seed))
				items := randomItems(rng, 40)
				s := settings(210, 297, 3, rotation)
				s.Strategy = name

				layout, err := Pack(s, items)
				require.NoError(t, err, "strategy %s rotation %v seed %d", name, rotation, seed)
				checkLayout(t, s, items, layout)

				again, err := Pack(s, items)
				require.NoError(t, err)
				assert.Equal(t, layout, again, "packing must be deterministic")
			}
		}
	}
}

func TestPack_ConsolidateKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := randomItems(rng, 30)
	s := settings(210, 297, 3, true)

	plain, err := Pack(s, items)
	require.NoError(t, err)

	s.Consolidate = true
	merged, err := Pack(s, items)
	require.NoError(t, err)
	checkLayout(t, s, items, merged)
	assert.LessOrEqual(t, len(merged.Pages), len(plain.Pages))
}
