package block

import "voxelgame/internal/core/schema"

// View adapts a flat block-id lookup function into a schema.Schema, so the
// greedy mesher and raycaster can walk a block-chunk the same way they walk
// a density chunk.
type View struct {
	At func(p schema.Coord) Type
}

// IsSolid implements schema.Schema.
func (v View) IsSolid(p schema.Coord) bool {
	return v.At(p).IsSolid()
}

// MaterialAt implements schema.Schema.
func (v View) MaterialAt(p schema.Coord) uint8 {
	def := GetDefinition(v.At(p))
	return uint8(def.Material)
}

// SurfaceSign implements schema.Schema. Block chunks have no continuous
// density field, so the sign is just the binary solid/empty split shifted
// to straddle zero, matching the density schema's "negative is inside"
// convention (spec §9).
func (v View) SurfaceSign(p schema.Coord) float32 {
	if v.At(p).IsSolid() {
		return -1
	}
	return 1
}

// Name implements schema.Schema.
func (v View) Name() string {
	return "block"
}

var _ schema.Schema = View{}
