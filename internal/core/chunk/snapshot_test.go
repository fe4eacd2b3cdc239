package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxelgame/internal/core/block"
	"voxelgame/internal/core/chunk"
)

func TestSnapshotReadsOriginChunk(t *testing.T) {
	s := chunk.NewStore()
	origin := chunk.New(chunk.Coord{0, 0, 0})
	origin.Set(5, 5, 5, block.Stone)
	s.Insert(origin)

	snap := chunk.NewSnapshot(s, chunk.Coord{0, 0, 0})
	assert.Equal(t, block.Stone, snap.Get(5, 5, 5))
	assert.Equal(t, block.Air, snap.Get(0, 0, 0))
}

// A local coordinate one step past the origin chunk's boundary resolves
// against the cloned face neighbor, the exact reach the greedy mesher's
// sweep and AO probes need (spec §5: workers read a cloned snapshot, never
// the live store).
func TestSnapshotReadsFaceNeighbor(t *testing.T) {
	s := chunk.NewStore()
	origin := chunk.New(chunk.Coord{0, 0, 0})
	neighbor := chunk.New(chunk.Coord{1, 0, 0})
	neighbor.Set(0, 5, 5, block.Stone)
	s.Insert(origin)
	s.Insert(neighbor)

	snap := chunk.NewSnapshot(s, chunk.Coord{0, 0, 0})
	assert.Equal(t, block.Stone, snap.Get(chunk.Size, 5, 5))
}

// A local coordinate one step past the boundary on two axes at once
// resolves against the diagonal (edge/corner) neighbor.
func TestSnapshotReadsCornerNeighbor(t *testing.T) {
	s := chunk.NewStore()
	origin := chunk.New(chunk.Coord{0, 0, 0})
	corner := chunk.New(chunk.Coord{1, 1, 1})
	corner.Set(0, 0, 0, block.Stone)
	s.Insert(origin)
	s.Insert(corner)

	snap := chunk.NewSnapshot(s, chunk.Coord{0, 0, 0})
	assert.Equal(t, block.Stone, snap.Get(chunk.Size, chunk.Size, chunk.Size))
}

// An unloaded neighbor resolves as air, same as Store.GetBlock against an
// unloaded chunk.
func TestSnapshotUnloadedNeighborIsAir(t *testing.T) {
	s := chunk.NewStore()
	s.Insert(chunk.New(chunk.Coord{0, 0, 0}))

	snap := chunk.NewSnapshot(s, chunk.Coord{0, 0, 0})
	assert.Equal(t, block.Air, snap.Get(-1, 0, 0))
}

// Writes to the store after a snapshot is taken must not be visible
// through it — the whole point of a snapshot is isolation from concurrent
// mutation while a worker meshes off of it.
func TestSnapshotIsIsolatedFromLaterStoreWrites(t *testing.T) {
	s := chunk.NewStore()
	origin := chunk.New(chunk.Coord{0, 0, 0})
	s.Insert(origin)

	snap := chunk.NewSnapshot(s, chunk.Coord{0, 0, 0})
	s.SetBlock(5, 5, 5, block.Stone)

	assert.Equal(t, block.Air, snap.Get(5, 5, 5))
	assert.Equal(t, block.Stone, s.GetBlock(5, 5, 5))
}
