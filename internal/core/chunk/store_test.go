package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelgame/internal/core/block"
	"voxelgame/internal/core/chunk"
)

func TestStoreRoundTrip(t *testing.T) {
	s := chunk.NewStore()
	s.Insert(chunk.New(chunk.Coord{0, 0, 0}))

	ok := s.SetBlock(5, 5, 5, block.Stone)
	require.True(t, ok)
	assert.Equal(t, block.Stone, s.GetBlock(5, 5, 5))
}

func TestStoreGetBlockUnloadedChunkReturnsAir(t *testing.T) {
	s := chunk.NewStore()
	assert.Equal(t, block.Air, s.GetBlock(100, 100, 100))
}

func TestStoreSetBlockUnloadedChunkIsNoop(t *testing.T) {
	s := chunk.NewStore()
	ok := s.SetBlock(100, 100, 100, block.Stone)
	assert.False(t, ok)
}

func TestWorldToChunkNegativeCoords(t *testing.T) {
	c, local := chunk.WorldToChunk(-1, -1, -1)
	assert.Equal(t, chunk.Coord{-1, -1, -1}, c)
	assert.Equal(t, [3]int{chunk.Size - 1, chunk.Size - 1, chunk.Size - 1}, local)
}

// A write to a boundary voxel must dirty the mesh of the neighboring chunk
// sharing that face, since a greedy mesh may have merged faces across it.
func TestSetBlockBoundaryDirtiesNeighbor(t *testing.T) {
	s := chunk.NewStore()
	origin := chunk.New(chunk.Coord{0, 0, 0})
	neighbor := chunk.New(chunk.Coord{1, 0, 0})
	s.Insert(origin)
	s.Insert(neighbor)

	neighbor.MeshDirty = false

	ok := s.SetBlock(chunk.Size-1, 0, 0, block.Stone)
	require.True(t, ok)
	assert.True(t, neighbor.MeshDirty, "writing the last local voxel on +X should dirty the +X neighbor")
}

func TestSetBlockInteriorDoesNotDirtyNeighbors(t *testing.T) {
	s := chunk.NewStore()
	origin := chunk.New(chunk.Coord{0, 0, 0})
	neighbor := chunk.New(chunk.Coord{1, 0, 0})
	s.Insert(origin)
	s.Insert(neighbor)
	neighbor.MeshDirty = false

	mid := int32(chunk.Size / 2)
	s.SetBlock(mid, mid, mid, block.Stone)
	assert.False(t, neighbor.MeshDirty)
}

// spec §4.1: set_block "stamps all three dirty bits on the owning chunk" on
// every accepted write, even one that rewrites the same value.
func TestSetBlockStampsAllDirtyBitsEvenOnSameValue(t *testing.T) {
	s := chunk.NewStore()
	origin := chunk.New(chunk.Coord{0, 0, 0})
	s.Insert(origin)

	require.True(t, s.SetBlock(5, 5, 5, block.Stone))
	origin.VoxelsDirty, origin.MeshDirty, origin.PhysicsDirty = false, false, false

	require.True(t, s.SetBlock(5, 5, 5, block.Stone))
	assert.True(t, origin.VoxelsDirty)
	assert.True(t, origin.MeshDirty)
	assert.True(t, origin.PhysicsDirty)
}

func TestGetDirtyChunksReportsOnlyDirty(t *testing.T) {
	s := chunk.NewStore()
	clean := chunk.New(chunk.Coord{0, 0, 0})
	clean.VoxelsDirty, clean.MeshDirty, clean.PhysicsDirty = false, false, false
	s.Insert(clean)

	dirty := chunk.New(chunk.Coord{1, 0, 0})
	dirty.MeshDirty = true
	s.Insert(dirty)

	got := s.GetDirtyChunks()
	require.Len(t, got, 1)
	assert.Equal(t, chunk.Coord{1, 0, 0}, got[0].Coord)
}
