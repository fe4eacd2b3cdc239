package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxelgame/internal/core/chunk"
	"voxelgame/internal/core/density"
)

func TestDistanceToDensityPolarity(t *testing.T) {
	// Deep underground (large negative distance) must land well above
	// IsoLevel (solid, spec §3: ">threshold counts as solid"); clearly
	// above the surface must land well below it (air) — inverting this
	// sign makes every density chunk generate inside-out.
	assert.Greater(t, distanceToDensity(-10), density.IsoLevel)
	assert.Less(t, distanceToDensity(10), density.IsoLevel)
}

func TestDistanceToDensityClamps(t *testing.T) {
	assert.Equal(t, uint8(255), distanceToDensity(-100))
	assert.Equal(t, uint8(0), distanceToDensity(100))
}

func TestMaterialAtSurfaceIsDirtBelowIsStone(t *testing.T) {
	assert.Equal(t, densityMaterialDirt, materialAt(10, 10))
	assert.Equal(t, densityMaterialStone, materialAt(0, 10))
}

func TestDensityGeneratorProducesSolidBelowSurface(t *testing.T) {
	dg := NewDensityGenerator(1)
	c := density.New(chunk.Coord{0, 0, 0})
	dg.GenerateChunk(c)

	// Somewhere deep in the chunk's vertical span the terrain must be
	// solid, or the whole chunk generated as open air.
	foundSolid := false
	for y := 0; y <= density.Size; y++ {
		if c.SampleAt(5, y, 5) > density.IsoLevel {
			foundSolid = true
			break
		}
	}
	assert.True(t, foundSolid, "a freshly generated terrain column should contain solid density somewhere")
}
