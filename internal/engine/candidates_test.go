package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidatePositions_EmptyPageIsOrigin(t *testing.T) {
	got := CandidatePositions(nil, 5, 20, 20, 100, 100)
	assert.Equal(t, []Point{{X: 0, Y: 0}}, got)
}

func TestCandidatePositions_RightAndBelow(t *testing.T) {
	placed := []Rect{{X: 0, Y: 0, W: 40, H: 30}}
	got := CandidatePositions(placed, 5, 20, 20, 100, 100)
	assert.Equal(t, []Point{{X: 0, Y: 0}, {X: 45, Y: 0}, {X: 0, Y: 35}}, got)
}

func TestCandidatePositions_FiltersOutOfBounds(t *testing.T) {
	placed := []Rect{{X: 0, Y: 0, W: 40, H: 30}}
	// 60 wide does not fit right of the print (45+60 > 100).
	got := CandidatePositions(placed, 5, 60, 20, 100, 100)
	assert.Equal(t, []Point{{X: 0, Y: 0}, {X: 0, Y: 35}}, got)

	// Too large for the page at all.
	assert.Empty(t, CandidatePositions(nil, 0, 120, 20, 100, 100))
}

func TestCandidatePositions_Deduplicates(t *testing.T) {
	placed := []Rect{
		{X: 0, Y: 20, W: 30, H: 10}, // right -> (30,20)
		{X: 30, Y: 0, W: 20, H: 20}, // below -> (30,20)
	}
	got := CandidatePositions(placed, 0, 10, 10, 100, 100)
	assert.Equal(t, []Point{{X: 0, Y: 0}, {X: 30, Y: 20}, {X: 0, Y: 30}, {X: 50, Y: 0}}, got)
}

func TestCandidatePositions_ExactFitAtEdge(t *testing.T) {
	placed := []Rect{{X: 0, Y: 0, W: 50, H: 50}}
	got := CandidatePositions(placed, 0, 50, 50, 100, 100)
	assert.Contains(t, got, Point{X: 50, Y: 0})
	assert.Contains(t, got, Point{X: 0, Y: 50})
}
