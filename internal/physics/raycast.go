// Package physics provides raycasting for block interaction
package physics

import (
	"math"

	"voxelgame/internal/core/block"
	"voxelgame/internal/core/schema"

	"github.com/go-gl/mathgl/mgl32"
)

// maxSteps bounds the DDA traversal so a ray fired with direction ~0 or at
// a world with a very large maxDistance can never loop forever — 256 steps
// covers a loaded ring many times over (spec §4.10 edge case).
const maxSteps = 256

// BlockGetter resolves a block at world coordinates. Typically backed by
// chunk.Store.GetBlock.
type BlockGetter func(x, y, z int32) block.Type

// RaycastResult contains information about a raycast hit
type RaycastResult struct {
	Hit       bool
	Position  mgl32.Vec3  // Hit position
	BlockPos  [3]int32    // Block coordinates
	Normal    mgl32.Vec3  // Surface normal
	Face      schema.Face // Face the ray entered through
	BlockType block.Type  // Type of block hit
	Distance  float32     // Distance to hit
}

// Raycast performs an Amanatides-Woo DDA walk from origin in direction, up
// to maxDistance or maxSteps voxel crossings, whichever comes first.
func Raycast(origin, direction mgl32.Vec3, maxDistance float32, getBlock BlockGetter) RaycastResult {
	result := RaycastResult{}

	if getBlock == nil {
		return result
	}

	dir := direction.Normalize()

	x := int32(math.Floor(float64(origin.X())))
	y := int32(math.Floor(float64(origin.Y())))
	z := int32(math.Floor(float64(origin.Z())))

	stepX := int32(1)
	if dir.X() < 0 {
		stepX = -1
	}
	stepY := int32(1)
	if dir.Y() < 0 {
		stepY = -1
	}
	stepZ := int32(1)
	if dir.Z() < 0 {
		stepZ = -1
	}

	var tMaxX, tMaxY, tMaxZ float32
	var tDeltaX, tDeltaY, tDeltaZ float32

	if dir.X() != 0 {
		if stepX > 0 {
			tMaxX = (float32(x+1) - origin.X()) / dir.X()
		} else {
			tMaxX = (float32(x) - origin.X()) / dir.X()
		}
		tDeltaX = float32(math.Abs(1.0 / float64(dir.X())))
	} else {
		tMaxX = 1e30
		tDeltaX = 1e30
	}

	if dir.Y() != 0 {
		if stepY > 0 {
			tMaxY = (float32(y+1) - origin.Y()) / dir.Y()
		} else {
			tMaxY = (float32(y) - origin.Y()) / dir.Y()
		}
		tDeltaY = float32(math.Abs(1.0 / float64(dir.Y())))
	} else {
		tMaxY = 1e30
		tDeltaY = 1e30
	}

	if dir.Z() != 0 {
		if stepZ > 0 {
			tMaxZ = (float32(z+1) - origin.Z()) / dir.Z()
		} else {
			tMaxZ = (float32(z) - origin.Z()) / dir.Z()
		}
		tDeltaZ = float32(math.Abs(1.0 / float64(dir.Z())))
	} else {
		tMaxZ = 1e30
		tDeltaZ = 1e30
	}

	var lastFace schema.Face
	var lastNormal mgl32.Vec3

	distance := float32(0)
	for steps := 0; distance < maxDistance && steps < maxSteps; steps++ {
		t := getBlock(x, y, z)
		if !t.IsAir() && t.IsSolid() {
			result.Hit = true
			result.BlockPos = [3]int32{x, y, z}
			result.Position = origin.Add(dir.Mul(distance))
			result.Normal = lastNormal
			result.Face = lastFace
			result.BlockType = t
			result.Distance = distance
			return result
		}

		if tMaxX < tMaxY {
			if tMaxX < tMaxZ {
				x += stepX
				distance = tMaxX
				tMaxX += tDeltaX
				if stepX > 0 {
					lastFace = schema.FaceNegX
					lastNormal = mgl32.Vec3{-1, 0, 0}
				} else {
					lastFace = schema.FacePosX
					lastNormal = mgl32.Vec3{1, 0, 0}
				}
			} else {
				z += stepZ
				distance = tMaxZ
				tMaxZ += tDeltaZ
				if stepZ > 0 {
					lastFace = schema.FaceNegZ
					lastNormal = mgl32.Vec3{0, 0, -1}
				} else {
					lastFace = schema.FacePosZ
					lastNormal = mgl32.Vec3{0, 0, 1}
				}
			}
		} else {
			if tMaxY < tMaxZ {
				y += stepY
				distance = tMaxY
				tMaxY += tDeltaY
				if stepY > 0 {
					lastFace = schema.FaceNegY
					lastNormal = mgl32.Vec3{0, -1, 0}
				} else {
					lastFace = schema.FacePosY
					lastNormal = mgl32.Vec3{0, 1, 0}
				}
			} else {
				z += stepZ
				distance = tMaxZ
				tMaxZ += tDeltaZ
				if stepZ > 0 {
					lastFace = schema.FaceNegZ
					lastNormal = mgl32.Vec3{0, 0, -1}
				} else {
					lastFace = schema.FacePosZ
					lastNormal = mgl32.Vec3{0, 0, 1}
				}
			}
		}
	}

	return result
}

// GetPlacementPosition returns the block coordinate adjacent to the hit
// face, where a newly placed block would sit.
func GetPlacementPosition(hit RaycastResult) [3]int32 {
	pos := hit.BlockPos
	off := hit.Face.Offset()
	pos[0] += int32(off[0])
	pos[1] += int32(off[1])
	pos[2] += int32(off[2])
	return pos
}
