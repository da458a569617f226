package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func outline(ids ...uint) []PathwayStep {
	steps := make([]PathwayStep, 0, len(ids))
	for i, id := range ids {
		steps = append(steps, PathwayStep{ID: id, PathwayID: 1, Position: i, Kind: STEP_FORMATION, RefID: id * 10})
	}
	return steps
}

func positions(steps []PathwayStep) map[uint]int {
	out := make(map[uint]int, len(steps))
	for _, s := range steps {
		out[s.ID] = s.Position
	}
	return out
}

func TestReorderStepsMovesAndRenumbersDensely(t *testing.T) {
	steps := outline(1, 2, 3, 4)

	ok := ReorderSteps(steps, 4, 0)
	assert.True(t, ok)

	pos := positions(steps)
	assert.Equal(t, 0, pos[4])
	assert.Equal(t, 1, pos[1])
	assert.Equal(t, 2, pos[2])
	assert.Equal(t, 3, pos[3])
}

func TestReorderStepsKeepsRelativeOrderStable(t *testing.T) {
	steps := outline(1, 2, 3, 4, 5)

	ok := ReorderSteps(steps, 2, 3)
	assert.True(t, ok)

	pos := positions(steps)
	// 1,3,4 keep their relative order around the moved step
	assert.Equal(t, 0, pos[1])
	assert.Equal(t, 1, pos[3])
	assert.Equal(t, 2, pos[4])
	assert.Equal(t, 3, pos[2])
	assert.Equal(t, 4, pos[5])
}

func TestReorderStepsClampsOutOfRangePositions(t *testing.T) {
	tests := []struct {
		name    string
		newPos  int
		wantPos int
	}{
		{name: "negative clamps to front", newPos: -5, wantPos: 0},
		{name: "beyond end clamps to back", newPos: 99, wantPos: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := outline(1, 2, 3)
			ok := ReorderSteps(steps, 2, tt.newPos)
			assert.True(t, ok)
			assert.Equal(t, tt.wantPos, positions(steps)[2])
		})
	}
}

func TestReorderStepsUnknownStep(t *testing.T) {
	steps := outline(1, 2, 3)

	ok := ReorderSteps(steps, 42, 1)
	assert.False(t, ok)

	// untouched
	pos := positions(steps)
	assert.Equal(t, 0, pos[1])
	assert.Equal(t, 1, pos[2])
	assert.Equal(t, 2, pos[3])
}

func TestReorderStepsIsIdempotentOnSamePosition(t *testing.T) {
	steps := outline(1, 2, 3)
	before := positions(steps)

	ok := ReorderSteps(steps, 2, 1)
	assert.True(t, ok)
	assert.Equal(t, before, positions(steps))
}

func TestValidStepKind(t *testing.T) {
	assert.True(t, ValidStepKind(STEP_FORMATION))
	assert.True(t, ValidStepKind(STEP_RESOURCE))
	assert.True(t, ValidStepKind(STEP_ASSESSMENT))
	assert.False(t, ValidStepKind("pathway"))
	assert.False(t, ValidStepKind(""))
}
