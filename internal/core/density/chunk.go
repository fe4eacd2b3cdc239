// Package density implements the density-schema sibling to the block
// schema: a chunk of continuous scalar field samples meshed with marching
// cubes instead of cube faces, for terrain that wants overhangs, caves, and
// smooth slopes a block grid can't represent.
package density

import (
	"voxelgame/internal/core/chunk"
	"voxelgame/internal/core/schema"
)

// Size matches chunk.Size so density and block chunks tile the same world
// grid and can sit side by side.
const Size = chunk.Size

// samplesPerAxis is Size+1: marching cubes needs a sample at both ends of
// every cell, so a chunk of Size^3 cells needs (Size+1)^3 density samples.
const samplesPerAxis = Size + 1

const sampleCount = samplesPerAxis * samplesPerAxis * samplesPerAxis

// IsoLevel is the density value marched against: samples above IsoLevel
// are "inside" (solid), at/below are "outside" (air) — spec §3: "128 is
// the iso-surface default; >threshold counts as solid".
const IsoLevel uint8 = 128

// Chunk holds one chunk's worth of density and material samples in
// parallel flat arrays, mirroring the block chunk's palette-over-indices
// split but without a palette: density values are rarely uniform enough
// for palette compression to pay for itself.
type Chunk struct {
	Coord chunk.Coord

	Density  []uint8 // sampleCount entries
	Material []uint8 // sampleCount entries, valid only where Density > IsoLevel nearby

	Dirty bool
}

// New creates a Chunk with every sample at minimum density (fully outside
// the surface — air), since make()'s zero value already leaves Density at
// 0 for every sample.
func New(c chunk.Coord) *Chunk {
	return &Chunk{
		Coord:    c,
		Density:  make([]uint8, sampleCount),
		Material: make([]uint8, sampleCount),
	}
}

func sampleIndex(x, y, z int) int {
	return y*samplesPerAxis*samplesPerAxis + z*samplesPerAxis + x
}

func inSampleBounds(x, y, z int) bool {
	return x >= 0 && x < samplesPerAxis && y >= 0 && y < samplesPerAxis && z >= 0 && z < samplesPerAxis
}

// SampleAt returns the density sample at local coordinates, or 0 (fully
// outside/air) if out of bounds.
func (d *Chunk) SampleAt(x, y, z int) uint8 {
	if !inSampleBounds(x, y, z) {
		return 0
	}
	return d.Density[sampleIndex(x, y, z)]
}

// MaterialSampleAt returns the material id at local coordinates.
func (d *Chunk) MaterialSampleAt(x, y, z int) uint8 {
	if !inSampleBounds(x, y, z) {
		return 0
	}
	return d.Material[sampleIndex(x, y, z)]
}

// SetSample writes a density + material sample and marks the chunk dirty.
func (d *Chunk) SetSample(x, y, z int, density, material uint8) {
	if !inSampleBounds(x, y, z) {
		return
	}
	idx := sampleIndex(x, y, z)
	if d.Density[idx] == density && d.Material[idx] == material {
		return
	}
	d.Density[idx] = density
	d.Material[idx] = material
	d.Dirty = true
}

// IsSolid implements schema.Schema: a point is solid if its nearest sample
// is above the iso-level.
func (d *Chunk) IsSolid(p schema.Coord) bool {
	return d.SampleAt(p.X, p.Y, p.Z) > IsoLevel
}

// MaterialAt implements schema.Schema.
func (d *Chunk) MaterialAt(p schema.Coord) uint8 {
	return d.MaterialSampleAt(p.X, p.Y, p.Z)
}

// SurfaceSign implements schema.Schema: negative is inside the surface,
// matching block.View's convention so mesher/raycaster code can treat both
// schemas identically. Density counts solid *upward* from IsoLevel, so the
// sign has to flip relative to a plain density-minus-threshold difference.
// The difference is divided by IsoLevel so the result lies in [-1, 1].
func (d *Chunk) SurfaceSign(p schema.Coord) float32 {
	return (float32(IsoLevel) - float32(d.SampleAt(p.X, p.Y, p.Z))) / float32(IsoLevel)
}

// Name implements schema.Schema.
func (d *Chunk) Name() string {
	return "density"
}

var _ schema.Schema = (*Chunk)(nil)
