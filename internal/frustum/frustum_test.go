package frustum_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"voxelgame/internal/frustum"
)

func testVP() mgl32.Mat4 {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, 0.1, 100.0)
	return proj.Mul4(view)
}

func TestIntersectsBoxDirectlyAhead(t *testing.T) {
	f := frustum.FromMatrix(testVP())
	box := frustum.AABB{Min: mgl32.Vec3{-1, -1, -11}, Max: mgl32.Vec3{1, 1, -9}}
	assert.True(t, f.Intersects(box))
}

func TestIntersectsBoxBehindCameraIsExcluded(t *testing.T) {
	f := frustum.FromMatrix(testVP())
	box := frustum.AABB{Min: mgl32.Vec3{-1, -1, 9}, Max: mgl32.Vec3{1, 1, 11}}
	assert.False(t, f.Intersects(box))
}

func TestIntersectsBoxFarOffToTheSideIsExcluded(t *testing.T) {
	f := frustum.FromMatrix(testVP())
	box := frustum.AABB{Min: mgl32.Vec3{500, -1, -11}, Max: mgl32.Vec3{502, 1, -9}}
	assert.False(t, f.Intersects(box))
}

func TestIntersectsBoxStraddlingNearPlaneIsIncluded(t *testing.T) {
	f := frustum.FromMatrix(testVP())
	// Straddles the camera origin along view direction: part of the box
	// is beyond the near plane even though its center is behind it.
	box := frustum.AABB{Min: mgl32.Vec3{-1, -1, -5}, Max: mgl32.Vec3{1, 1, 5}}
	assert.True(t, f.Intersects(box))
}
