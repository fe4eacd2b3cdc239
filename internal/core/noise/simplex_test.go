package noise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxelgame/internal/core/noise"
)

func TestSimplexNoise2DIsDeterministic(t *testing.T) {
	s := noise.NewSimplexNoise(7)
	a := s.Noise2D(3.1, -4.2)
	b := s.Noise2D(3.1, -4.2)
	assert.Equal(t, a, b)
}

func TestSimplexNoise2DDiffersAcrossSeeds(t *testing.T) {
	a := noise.NewSimplexNoise(1).Noise2D(5, 5)
	b := noise.NewSimplexNoise(2).Noise2D(5, 5)
	assert.NotEqual(t, a, b)
}

func TestSimplexNoise3DIsDeterministic(t *testing.T) {
	s := noise.NewSimplexNoise(11)
	a := s.Noise3D(1, 2, 3)
	b := s.Noise3D(1, 2, 3)
	assert.Equal(t, a, b)
}

func TestFBMSample2DStaysNearUnitRange(t *testing.T) {
	s := noise.NewSimplexNoise(1)
	f := noise.NewFBM(noise.DefaultFBMConfig())
	for x := 0.0; x < 10; x++ {
		v := f.Sample2D(s, x, x*2)
		assert.GreaterOrEqual(t, v, -1.5)
		assert.LessOrEqual(t, v, 1.5)
	}
}

func TestFBMRidged2DIsNonNegative(t *testing.T) {
	s := noise.NewSimplexNoise(1)
	cfg := noise.DefaultFBMConfig()
	cfg.Octaves = 4
	f := noise.NewFBM(cfg)
	for x := 0.0; x < 10; x++ {
		v := f.Ridged2D(s, x, x*3)
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestFBMTurbulence2DIsNonNegative(t *testing.T) {
	s := noise.NewSimplexNoise(1)
	f := noise.NewFBM(noise.DefaultFBMConfig())
	for x := 0.0; x < 10; x++ {
		v := f.Turbulence2D(s, x, x*1.5)
		assert.GreaterOrEqual(t, v, 0.0)
	}
}
