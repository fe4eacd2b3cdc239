package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelgame/internal/core/block"
	"voxelgame/internal/core/chunk"
)

func isolatedBlockGetter(bx, by, bz int, t block.Type) chunk.BlockGetter {
	return func(x, y, z int) block.Type {
		if x == bx && y == by && z == bz {
			return t
		}
		return block.Air
	}
}

func TestGenerateMeshSingleBlockIsSixFaces(t *testing.T) {
	m := chunk.NewMesher()
	mesh := m.GenerateMesh(isolatedBlockGetter(1, 1, 1, block.Stone))

	require.Equal(t, 36, mesh.Opaque.Length, "a fully exposed cube should emit 6 quads of 6 indices each")
	assert.Len(t, mesh.Positions, 6*4*3)
	assert.Len(t, mesh.UVs, 6*4*2)
	assert.Len(t, mesh.AO, 6*4)
	assert.Zero(t, mesh.Transparent.Length)
}

func TestGenerateMeshIndexCountIsMultipleOfSix(t *testing.T) {
	m := chunk.NewMesher()
	get := func(x, y, z int) block.Type {
		if (x+y+z)%3 == 0 {
			return block.Stone
		}
		return block.Air
	}
	mesh := m.GenerateMesh(get)

	assert.Zero(t, mesh.Opaque.Length%6, "every emitted quad contributes exactly 6 indices")
	assert.Zero(t, len(mesh.Positions)%3)
	assert.Equal(t, len(mesh.Positions)/3, len(mesh.UVs)/2)
	assert.Equal(t, len(mesh.Positions)/3, len(mesh.AO))
}

func TestGenerateMeshAdjacentSolidBlocksHideSharedFace(t *testing.T) {
	m := chunk.NewMesher()
	get := func(x, y, z int) block.Type {
		if (x == 1 || x == 2) && y == 1 && z == 1 {
			return block.Stone
		}
		return block.Air
	}
	mesh := m.GenerateMesh(get)

	// Two adjacent cubes have 10 exposed faces total (12 - 2 shared),
	// greedy-merged along the shared axis but never fewer than the true
	// exposed-face count in index terms for non-mergeable faces.
	require.NotZero(t, mesh.Opaque.Length)
	assert.Less(t, mesh.Opaque.Length, 2*36, "shared face between adjacent blocks must not be emitted twice")
}
