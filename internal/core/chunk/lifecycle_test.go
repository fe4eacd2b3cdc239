package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxelgame/internal/core/chunk"
)

func TestCanTransitionAllowsDocumentedEdges(t *testing.T) {
	cases := []struct {
		from, to chunk.LifecycleState
	}{
		{chunk.StatePending, chunk.StateGenerating},
		{chunk.StatePending, chunk.StateUnloading},
		{chunk.StateGenerating, chunk.StateActive},
		{chunk.StateActive, chunk.StateMeshing},
		{chunk.StateMeshing, chunk.StateActive},
		{chunk.StateMeshing, chunk.StateUnloading},
	}
	for _, c := range cases {
		assert.True(t, chunk.CanTransition(c.from, c.to), "%s -> %s should be legal", c.from, c.to)
	}
}

func TestCanTransitionRejectsSkippedStates(t *testing.T) {
	assert.False(t, chunk.CanTransition(chunk.StatePending, chunk.StateActive))
	assert.False(t, chunk.CanTransition(chunk.StatePending, chunk.StateMeshing))
	assert.False(t, chunk.CanTransition(chunk.StateActive, chunk.StateGenerating))
}

func TestUnloadingIsTerminal(t *testing.T) {
	for s := chunk.StatePending; s <= chunk.StateUnloading; s++ {
		assert.False(t, chunk.CanTransition(chunk.StateUnloading, s))
	}
}

func TestStringMatchesKnownStates(t *testing.T) {
	assert.Equal(t, "pending", chunk.StatePending.String())
	assert.Equal(t, "active", chunk.StateActive.String())
	assert.Equal(t, "unknown", chunk.LifecycleState(99).String())
}
