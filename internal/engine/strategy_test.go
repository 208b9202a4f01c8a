package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FitPrint/internal/model"
)

func TestNewStrategy(t *testing.T) {
	for _, name := range model.Strategies() {
		st, err := NewStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, name, st.Name())
	}

	st, err := NewStrategy("")
	require.NoError(t, err)
	assert.Equal(t, model.StrategyBottomLeft, st.Name())

	_, err = NewStrategy("guillotine")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStrategies_SelectDoesNotChangeState(t *testing.T) {
	remaining := []model.Item{item("a", 30, 20), item("b", 20, 20)}
	for _, name := range model.Strategies() {
		t.Run(string(name), func(t *testing.T) {
			st, err := NewStrategy(name)
			require.NoError(t, err)
			st.Reset(100, 100, 2)

			first, ok := st.Select(remaining, true)
			require.True(t, ok)
			second, ok := st.Select(remaining, true)
			require.True(t, ok)
			assert.Equal(t, first, second)
		})
	}
}

func TestStrategies_ResetClearsPage(t *testing.T) {
	big := []model.Item{item("a", 100, 100)}
	for _, name := range model.Strategies() {
		t.Run(string(name), func(t *testing.T) {
			st, err := NewStrategy(name)
			require.NoError(t, err)
			st.Reset(100, 100, 0)

			pl, ok := st.Select(big, false)
			require.True(t, ok)
			st.Commit(pl)
			_, ok = st.Select(big, false)
			assert.False(t, ok, "full page must accept nothing")

			st.Reset(100, 100, 0)
			_, ok = st.Select(big, false)
			assert.True(t, ok)
		})
	}
}

func TestBottomLeftFill_TiesKeepInputOrder(t *testing.T) {
	st := &bottomLeftFill{}
	st.Reset(100, 100, 0)
	pl, ok := st.Select([]model.Item{item("x", 20, 20), item("y", 20, 20)}, false)
	require.True(t, ok)
	assert.Equal(t, 0, pl.Index)
}

func TestBottomLeftFill_PrefersAlignedPosition(t *testing.T) {
	st := &bottomLeftFill{}
	st.Reset(200, 200, 0)
	st.Commit(Placement{Orientation: model.Orientation{Width: 50, Height: 50}})

	pl, ok := st.Select([]model.Item{item("n", 50, 50)}, false)
	require.True(t, ok)
	assert.Equal(t, 50.0, pl.X)
	assert.Equal(t, 0.0, pl.Y)
	// Flush right of the first print on the same row: row score plus both bonuses.
	assert.Equal(t, -50+alignBonus+cornerBonus, pl.Score)
}

func TestMaxRects_PruneKeepsOneOfIdenticalRects(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	got := pruneContained([]Rect{r, r, {X: 1, Y: 1, W: 2, H: 2}})
	assert.Equal(t, []Rect{r}, got)
}

func TestMaxRects_SplitLeavesNoOverlapWithUsed(t *testing.T) {
	used := Rect{X: 20, Y: 20, W: 30, H: 30}
	free := splitFreeRects([]Rect{{W: 100, H: 100}}, used)
	require.NotEmpty(t, free)
	for _, f := range free {
		assert.False(t, Overlaps(f, used), "free rect %+v overlaps used area", f)
		assert.True(t, IsContained(f, Rect{W: 100, H: 100}))
	}
}

func TestSkyline_MergesEqualHeights(t *testing.T) {
	st := &skyline{}
	st.Reset(100, 100, 0)
	st.Commit(Placement{X: 0, Y: 0, Orientation: model.Orientation{Width: 50, Height: 20}})
	st.Commit(Placement{X: 50, Y: 0, Orientation: model.Orientation{Width: 50, Height: 20}})
	assert.Equal(t, []skylineNode{{x: 0, y: 20, w: 100}}, st.nodes)
}
