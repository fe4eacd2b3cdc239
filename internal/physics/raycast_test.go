package physics_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelgame/internal/core/block"
	"voxelgame/internal/physics"
)

func singleBlockGetter(bx, by, bz int32, t block.Type) physics.BlockGetter {
	return func(x, y, z int32) block.Type {
		if x == bx && y == by && z == bz {
			return t
		}
		return block.Air
	}
}

func TestRaycastHitsSingleBlock(t *testing.T) {
	get := singleBlockGetter(5, 0, 0, block.Stone)
	result := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10, get)

	require.True(t, result.Hit)
	assert.Equal(t, [3]int32{5, 0, 0}, result.BlockPos)
	assert.InDelta(t, 4.5, result.Distance, 0.01)
}

func TestRaycastMissesBeyondMaxDistance(t *testing.T) {
	get := singleBlockGetter(50, 0, 0, block.Stone)
	result := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10, get)
	assert.False(t, result.Hit)
}

func TestRaycastMissesEmptyWorld(t *testing.T) {
	get := func(x, y, z int32) block.Type { return block.Air }
	result := physics.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 100, get)
	assert.False(t, result.Hit)
}

func TestRaycastNilGetterIsMiss(t *testing.T) {
	result := physics.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 10, nil)
	assert.False(t, result.Hit)
}

func TestGetPlacementPositionIsAdjacentToHitFace(t *testing.T) {
	get := singleBlockGetter(5, 0, 0, block.Stone)
	result := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10, get)
	require.True(t, result.Hit)

	place := physics.GetPlacementPosition(result)
	assert.Equal(t, [3]int32{4, 0, 0}, place, "placement sits on the face the ray entered through")
}
