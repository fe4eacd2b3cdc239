package noise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxelgame/internal/core/noise"
)

func TestValueNoise2DIsDeterministic(t *testing.T) {
	a := noise.ValueNoise2D(12.5, -7.25, 42)
	b := noise.ValueNoise2D(12.5, -7.25, 42)
	assert.Equal(t, a, b)
}

func TestValueNoise2DDiffersAcrossSeeds(t *testing.T) {
	a := noise.ValueNoise2D(1, 1, 1)
	b := noise.ValueNoise2D(1, 1, 2)
	assert.NotEqual(t, a, b)
}

func TestValueNoise2DStaysInUnitRange(t *testing.T) {
	for _, seed := range []uint32{0, 1, 99} {
		v := noise.ValueNoise2D(3.3, 9.9, seed)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestFractalValueNoise2DIsDeterministic(t *testing.T) {
	a := noise.FractalValueNoise2D(5, 5, 7)
	b := noise.FractalValueNoise2D(5, 5, 7)
	assert.Equal(t, a, b)
}
