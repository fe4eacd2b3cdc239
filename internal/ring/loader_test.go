package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelgame/internal/core/chunk"
	"voxelgame/internal/ring"
)

func loadAll(t *testing.T, l *ring.Loader, toLoad []chunk.Coord) {
	t.Helper()
	for _, c := range toLoad {
		l.MarkLoaded(c)
	}
}

func TestLoaderInitialUpdateRequestsEveryChunkInRadius(t *testing.T) {
	l := ring.NewLoader(ring.Disk, 1, 2, 0)
	toLoad, toUnload := l.Update(chunk.Coord{0, 0, 0})

	assert.Empty(t, toUnload)
	assert.NotEmpty(t, toLoad)
	for _, c := range toLoad {
		assert.LessOrEqual(t, c.X*c.X+c.Z*c.Z, int32(1))
	}
}

func TestLoaderDoesNotReRequestPendingChunks(t *testing.T) {
	l := ring.NewLoader(ring.Disk, 1, 2, 0)
	first, _ := l.Update(chunk.Coord{0, 0, 0})
	require.NotEmpty(t, first)

	second, _ := l.Update(chunk.Coord{0, 0, 0})
	assert.Empty(t, second, "coords already pending should not be requested again")
}

// Hysteresis: a chunk that has drifted past loadRadius but not past
// unloadRadius must neither be requested again nor marked for unload.
func TestLoaderHysteresisGap(t *testing.T) {
	l := ring.NewLoader(ring.Disk, 2, 4, 0)
	toLoad, _ := l.Update(chunk.Coord{0, 0, 0})
	loadAll(t, l, toLoad)

	// Move center so a previously-loaded chunk at distance ~2 is now
	// outside loadRadius (2) but still inside unloadRadius (4).
	toLoad2, toUnload2 := l.Update(chunk.Coord{1, 0, 0})
	_ = toLoad2

	for _, c := range toUnload2 {
		assert.Greater(t, manhattanCoord(c, chunk.Coord{1, 0, 0}), int32(4))
	}
}

func TestLoaderUnloadsOnceBeyondUnloadRadius(t *testing.T) {
	l := ring.NewLoader(ring.Disk, 1, 1, 0)
	toLoad, _ := l.Update(chunk.Coord{0, 0, 0})
	loadAll(t, l, toLoad)
	require.True(t, l.Loaded(chunk.Coord{1, 0, 0}))

	_, toUnload := l.Update(chunk.Coord{10, 0, 0})
	assertContains(t, toUnload, chunk.Coord{1, 0, 0})
}

// spec §4.2/§8: Update must return (∅, ∅) and do no work when the center
// is unchanged since the previous call.
func TestLoaderUnchangedCenterReturnsEmpty(t *testing.T) {
	l := ring.NewLoader(ring.Disk, 2, 4, 0)
	toLoad, toUnload := l.Update(chunk.Coord{5, 0, -3})
	loadAll(t, l, toLoad)
	require.NotEmpty(t, toLoad)
	require.Empty(t, toUnload)

	toLoad2, toUnload2 := l.Update(chunk.Coord{5, 0, -3})
	assert.Nil(t, toLoad2)
	assert.Nil(t, toUnload2)
}

func TestBallShapeIgnoresVertRadius(t *testing.T) {
	offsets := ring.Ball.Offsets(1, 0)
	found := false
	for _, o := range offsets {
		if o == (chunk.Coord{0, 1, 0}) {
			found = true
		}
	}
	assert.True(t, found, "ball shape should include vertical offsets regardless of vertRadius")
}

func manhattanCoord(a, b chunk.Coord) int32 {
	d := func(x int32) int32 {
		if x < 0 {
			return -x
		}
		return x
	}
	return d(a.X-b.X) + d(a.Y-b.Y) + d(a.Z-b.Z)
}

func assertContains(t *testing.T, coords []chunk.Coord, want chunk.Coord) {
	t.Helper()
	for _, c := range coords {
		if c == want {
			return
		}
	}
	t.Fatalf("expected %v to contain %v", coords, want)
}
