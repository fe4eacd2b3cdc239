package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxelgame/internal/core/block"
	"voxelgame/internal/core/chunk"
)

func TestGenerateChunkIsDeterministic(t *testing.T) {
	g1 := NewGenerator(42)
	g2 := NewGenerator(42)

	c1 := chunk.New(chunk.Coord{X: 0, Y: 0, Z: 0})
	c2 := chunk.New(chunk.Coord{X: 0, Y: 0, Z: 0})

	g1.GenerateChunk(c1)
	g2.GenerateChunk(c2)

	for x := 0; x < chunk.Size; x++ {
		for y := 0; y < chunk.Size; y++ {
			for z := 0; z < chunk.Size; z++ {
				assert.Equal(t, c1.Get(x, y, z), c2.Get(x, y, z), "mismatch at (%d,%d,%d)", x, y, z)
			}
		}
	}
}

func TestGenerateChunkMarksGenerated(t *testing.T) {
	g := NewGenerator(1)
	c := chunk.New(chunk.Coord{X: 0, Y: 0, Z: 0})
	assert.False(t, c.Generated)
	g.GenerateChunk(c)
	assert.True(t, c.Generated)
}

func TestGenerateChunkBedrockAtWorldFloor(t *testing.T) {
	g := NewGenerator(1)
	c := chunk.New(chunk.Coord{X: 0, Y: 0, Z: 0})
	g.GenerateChunk(c)
	assert.Equal(t, block.Bedrock, c.Get(0, 0, 0))
}

func TestGenerateChunkHighAltitudeSlabIsAllAir(t *testing.T) {
	g := NewGenerator(1)
	c := chunk.New(chunk.Coord{X: 0, Y: 10, Z: 0}) // world Y in [320, 352)
	g.GenerateChunk(c)
	for x := 0; x < chunk.Size; x++ {
		for z := 0; z < chunk.Size; z++ {
			for y := 0; y < chunk.Size; y++ {
				assert.Equal(t, block.Air, c.Get(x, y, z))
			}
		}
	}
}

func TestGetBiomeNameIsStable(t *testing.T) {
	g := NewGenerator(5)
	a := g.GetBiomeName(100, 200)
	b := g.GetBiomeName(100, 200)
	assert.Equal(t, a, b)
}
