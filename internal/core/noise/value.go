package noise

// hash3 mixes three integer coordinates and a seed into a well-distributed
// 32-bit value. Multiply-xor-shift, same shape as lattice hashes used for
// deterministic terrain noise.
func hash3(x, y, z int32, seed uint32) uint32 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + uint32(z)*2246822519 + seed*3266489917
	h = (h ^ (h >> 15)) * 2246822519
	h = (h ^ (h >> 13)) * 3266489917
	h = h ^ (h >> 16)
	return h
}

// smooth is the Perlin smoothstep, t*t*(3-2t).
func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// latticeValue maps a lattice point to [-1, 1], deterministic in (x, z, seed).
func latticeValue(x, z int32, seed uint32) float64 {
	h := hash3(x, 0, z, seed)
	return float64(h)/float64(1<<31) - 1
}

// ValueNoise2D samples bilinearly-interpolated lattice-hash value noise at
// (x, z). The lattice spacing is 1 unit; callers scale x/z by a frequency
// before calling. Deterministic: same (x, z, seed) always yields the same
// value, with no internal RNG state.
func ValueNoise2D(x, z float64, seed uint32) float64 {
	x0 := int32(x)
	z0 := int32(z)
	if x < 0 && float64(x0) != x {
		x0--
	}
	if z < 0 && float64(z0) != z {
		z0--
	}
	x1, z1 := x0+1, z0+1

	tx := smooth(x - float64(x0))
	tz := smooth(z - float64(z0))

	v00 := latticeValue(x0, z0, seed)
	v10 := latticeValue(x1, z0, seed)
	v01 := latticeValue(x0, z1, seed)
	v11 := latticeValue(x1, z1, seed)

	top := lerp(v00, v10, tx)
	bottom := lerp(v01, v11, tx)
	return lerp(top, bottom, tz)
}

// FractalValueNoise2D sums three octaves of ValueNoise2D with fixed weights
// 0.6/0.25/0.15 (spec §4.3), each octave doubling frequency. Output stays in
// [-1, 1] since the weights sum to 1.
func FractalValueNoise2D(x, z float64, seed uint32) float64 {
	const (
		w0, w1, w2 = 0.6, 0.25, 0.15
		f0, f1, f2 = 1.0, 2.0, 4.0
	)
	return w0*ValueNoise2D(x*f0, z*f0, seed) +
		w1*ValueNoise2D(x*f1, z*f1, seed+1) +
		w2*ValueNoise2D(x*f2, z*f2, seed+2)
}
