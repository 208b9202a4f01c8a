package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 50, H: 50}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"same rect", Rect{X: 0, Y: 0, W: 50, H: 50}, true},
		{"partial overlap", Rect{X: 25, Y: 25, W: 50, H: 50}, true},
		{"contained", Rect{X: 10, Y: 10, W: 5, H: 5}, true},
		{"touching right edge", Rect{X: 50, Y: 0, W: 10, H: 10}, false},
		{"touching bottom edge", Rect{X: 0, Y: 50, W: 10, H: 10}, false},
		{"touching corner", Rect{X: 50, Y: 50, W: 10, H: 10}, false},
		{"apart", Rect{X: 60, Y: 60, W: 10, H: 10}, false},
		{"float noise at edge", Rect{X: 50 - 1e-9, Y: 0, W: 10, H: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, a), "overlap must be symmetric")
		})
	}
}

func TestOccupiedRegion_GrowsTrailingEdgesOnly(t *testing.T) {
	r := OccupiedRegion(Rect{X: 10, Y: 20, W: 30, H: 40}, 5)
	assert.Equal(t, Rect{X: 10, Y: 20, W: 35, H: 45}, r)
}

func TestInflate_GrowsAllSides(t *testing.T) {
	r := Inflate(Rect{X: 10, Y: 20, W: 30, H: 40}, 5)
	assert.Equal(t, Rect{X: 5, Y: 15, W: 40, H: 50}, r)
	assert.Equal(t, Rect{X: 1, Y: 1, W: 1, H: 1}, Inflate(Rect{X: 1, Y: 1, W: 1, H: 1}, 0))
}

func TestIsContained(t *testing.T) {
	outer := Rect{X: 0, Y: 0, W: 100, H: 100}
	assert.True(t, IsContained(Rect{X: 10, Y: 10, W: 20, H: 20}, outer))
	assert.True(t, IsContained(outer, outer))
	assert.False(t, IsContained(Rect{X: 90, Y: 10, W: 20, H: 20}, outer))
	assert.False(t, IsContained(outer, Rect{X: 10, Y: 10, W: 20, H: 20}))
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(Rect{X: 0, Y: 0, W: 100, H: 50}, 100, 50))
	assert.False(t, InBounds(Rect{X: 1, Y: 0, W: 100, H: 50}, 100, 50))
	assert.False(t, InBounds(Rect{X: -1, Y: 0, W: 10, H: 10}, 100, 50))
	assert.False(t, InBounds(Rect{X: 0, Y: 45, W: 10, H: 10}, 100, 50))
}

func TestGap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 50, H: 50}
	assert.Equal(t, 5.0, Gap(a, Rect{X: 55, Y: 0, W: 10, H: 10}))
	assert.Equal(t, 7.0, Gap(a, Rect{X: 0, Y: 57, W: 10, H: 10}))
	assert.Equal(t, 0.0, Gap(a, Rect{X: 50, Y: 0, W: 10, H: 10}))
	assert.Less(t, Gap(a, Rect{X: 40, Y: 40, W: 20, H: 20}), 0.0)
}
