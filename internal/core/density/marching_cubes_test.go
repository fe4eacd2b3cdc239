package density_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelgame/internal/core/chunk"
	"voxelgame/internal/core/density"
)

// An all-solid chunk has no iso-surface crossing any cell — every corner
// is above IsoLevel so marching cubes must emit nothing.
func TestGenerateAllSolidProducesEmptyMesh(t *testing.T) {
	d := density.New(chunk.Coord{0, 0, 0})
	for z := 0; z <= density.Size; z++ {
		for y := 0; y <= density.Size; y++ {
			for x := 0; x <= density.Size; x++ {
				d.SetSample(x, y, z, 255, 1)
			}
		}
	}

	mesh := density.Generate(d, density.BlendNearest)
	assert.Empty(t, mesh.Vertices)
}

// A freshly-created chunk defaults to minimum density (fully air) and is
// equally surface-free.
func TestGenerateAllAirProducesEmptyMesh(t *testing.T) {
	d := density.New(chunk.Coord{0, 0, 0})
	mesh := density.Generate(d, density.BlendNearest)
	assert.Empty(t, mesh.Vertices)
}

// A single solid corner against seven air corners in one cell produces
// exactly one triangle (marching cubes case 1).
func TestGenerateSingleCornerProducesOneTriangle(t *testing.T) {
	d := density.New(chunk.Coord{0, 0, 0})
	d.SetSample(0, 0, 0, 255, 1)

	mesh := density.Generate(d, density.BlendNearest)
	assert.Len(t, mesh.Vertices, 3, "one solid corner among seven air corners should emit exactly one triangle")
}

func TestVerticesAreAlwaysTriangles(t *testing.T) {
	d := density.New(chunk.Coord{0, 0, 0})
	for z := 0; z <= density.Size; z++ {
		for y := 0; y <= density.Size; y++ {
			for x := 0; x <= density.Size; x++ {
				if (x+y+z)%2 == 0 {
					d.SetSample(x, y, z, 255, 1)
				}
			}
		}
	}

	mesh := density.Generate(d, density.BlendNearest)
	assert.Zero(t, len(mesh.Vertices)%3)
}

// The single solid corner at the origin should produce a normal pointing
// away from that corner (outward from solid), not into it — spec §4.5
// point 2: "negate so it points outward from solid".
func TestGenerateSingleCornerNormalPointsAwayFromSolidCorner(t *testing.T) {
	d := density.New(chunk.Coord{0, 0, 0})
	d.SetSample(0, 0, 0, 255, 1)

	mesh := density.Generate(d, density.BlendNearest)
	require.Len(t, mesh.Vertices, 3)

	solidCorner := mgl32.Vec3{0, 0, 0}
	for _, v := range mesh.Vertices {
		toVertex := v.Position.Sub(solidCorner)
		assert.Greater(t, toVertex.Dot(v.Normal), float32(0),
			"normal must point away from the solid corner, not into it")
	}
}
