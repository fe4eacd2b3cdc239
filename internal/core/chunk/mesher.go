// Package chunk provides mesh generation for voxel chunks
package chunk

import (
	"voxelgame/internal/core/block"
)

// atlasGridSize is the number of cells per row/column of the shared block
// texture atlas; block.Definition.TextureTop/Side/Bottom index into this
// grid row-major.
const atlasGridSize = 8

// atlasRect returns the UV rect of one atlas cell. A merged quad's four
// corners are mapped straight onto this rect regardless of the quad's grid
// extent: since block MeshData carries no per-vertex material/layer
// channel, texture identity has to live entirely in the UVs, which leaves
// no room to also repeat the texture once per voxel across a greedy-merged
// run — a wide merged quad shows the atlas cell stretched across it rather
// than tiled. See DESIGN.md for why this trade was made.
func atlasRect(id int) (u0, v0, u1, v1 float32) {
	cell := float32(1) / float32(atlasGridSize)
	col := id % atlasGridSize
	row := id / atlasGridSize
	u0 = float32(col) * cell
	v0 = float32(row) * cell
	return u0, v0, u0 + cell, v0 + cell
}

// BlockGetter resolves a block at coordinates local to the chunk being
// meshed, but may be queried outside [0,Size) — callers (the store, via the
// pipeline) are expected to resolve those against neighboring chunks so
// greedy runs can merge across a chunk boundary's visible face correctly.
type BlockGetter func(x, y, z int) block.Type

// Range describes a contiguous slice of a MeshData's Indices belonging to
// one submesh.
type Range struct {
	Start  int
	Length int
}

// Bounds is a local (grid-space) axis-aligned box covering every vertex
// position in a MeshData. It has not been translated to world space yet —
// the registry adds the chunk's world origin before storing it for
// frustum culling.
type Bounds struct {
	Min, Max [3]float32
}

// MeshData holds the flat position/uv/AO/index buffers produced by
// GenerateMesh. Opaque and Transparent mark disjoint ranges of a single
// shared Indices buffer so the renderer can draw opaque geometry first and
// blend transparent geometry after, from one set of vertex buffers.
//
// Normals and per-vertex material ids are deliberately absent: a block
// mesh carries only position+uv+ao. Normals and material ids are reserved
// for the density/marching-cubes schema (internal/core/density), which
// needs them for smooth per-triangle shading that a blocky, axis-aligned
// block mesh has no use for.
type MeshData struct {
	Positions []float32 // 3 floats per vertex
	UVs       []float32 // 2 floats per vertex
	AO        []float32 // 1 float per vertex, in [0,1]
	Indices   []uint32

	Opaque      Range
	Transparent Range

	Bounds Bounds
}

type cell struct {
	present bool
	typ     block.Type
	ao      [4]uint8
}

// meshBuilder accumulates vertex/index data while sweeping; GenerateMesh
// hands its finished state to build() once every axis and custom mesh has
// been emitted.
type meshBuilder struct {
	positions []float32
	uvs       []float32
	ao        []float32

	opaqueIdx      []uint32
	transparentIdx []uint32

	min, max [3]float32
	hasAny   bool
}

func (b *meshBuilder) push(p [3]float32, uv [2]float32, ao float32) uint32 {
	idx := uint32(len(b.positions) / 3)
	b.positions = append(b.positions, p[0], p[1], p[2])
	b.uvs = append(b.uvs, uv[0], uv[1])
	b.ao = append(b.ao, ao)
	b.trackBounds(p)
	return idx
}

func (b *meshBuilder) trackBounds(p [3]float32) {
	if !b.hasAny {
		b.min, b.max = p, p
		b.hasAny = true
		return
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.min[i] {
			b.min[i] = p[i]
		}
		if p[i] > b.max[i] {
			b.max[i] = p[i]
		}
	}
}

func (b *meshBuilder) indices(transparent bool) *[]uint32 {
	if transparent {
		return &b.transparentIdx
	}
	return &b.opaqueIdx
}

func (b *meshBuilder) build() *MeshData {
	indices := make([]uint32, 0, len(b.opaqueIdx)+len(b.transparentIdx))
	indices = append(indices, b.opaqueIdx...)
	indices = append(indices, b.transparentIdx...)
	return &MeshData{
		Positions:   b.positions,
		UVs:         b.uvs,
		AO:          b.ao,
		Indices:     indices,
		Opaque:      Range{Start: 0, Length: len(b.opaqueIdx)},
		Transparent: Range{Start: len(b.opaqueIdx), Length: len(b.transparentIdx)},
		Bounds:      Bounds{Min: b.min, Max: b.max},
	}
}

// Mesher converts a chunk's voxel data into renderable geometry using
// greedy meshing: for each of the six axis-aligned directions it sweeps
// slice-by-slice, builds a 2D visibility mask, and merges adjacent mask
// cells that share a block type and AO pattern into a single quad instead
// of one quad per voxel face.
type Mesher struct{}

// NewMesher creates a Mesher. It carries no state; meshers are safe to
// share across goroutines.
func NewMesher() *Mesher {
	return &Mesher{}
}

// GenerateMesh builds greedy-merged geometry for one chunk plus cross-mesh
// quads for any HasCustomMesh blocks (flowers, tall grass, campfires).
func (m *Mesher) GenerateMesh(get BlockGetter) *MeshData {
	b := &meshBuilder{}
	for axis := 0; axis < 3; axis++ {
		m.sweep(get, axis, false, b)
		m.sweep(get, axis, true, b)
	}
	m.addCustomMeshes(get, b)
	return b.build()
}

func occludes(t block.Type) bool {
	return t.IsSolid() && !t.IsTransparent()
}

// shouldDraw reports whether the face owned by owner, facing neighbor,
// should be emitted. Two voxels of the same type never need an internal
// face (water next to water, glass next to glass); any opaque solid
// neighbor occludes the face entirely.
func shouldDraw(owner, neighbor block.Type) bool {
	if owner.IsAir() {
		return false
	}
	if neighbor.IsAir() {
		return true
	}
	if owner == neighbor {
		return false
	}
	return !occludes(neighbor)
}

func (m *Mesher) sweep(get BlockGetter, axis int, backFace bool, b *meshBuilder) {
	u := (axis + 1) % 3
	v := (axis + 2) % 3

	mask := make([]cell, Size*Size)

	var x [3]int
	var q [3]int
	q[axis] = 1

	for x[axis] = -1; x[axis] < Size; x[axis]++ {
		n := 0
		for x[v] = 0; x[v] < Size; x[v]++ {
			for x[u] = 0; x[u] < Size; x[u]++ {
				// Either voxel may lie one step outside the chunk; get
				// resolves it against the neighbor, but only a face owned
				// by an in-chunk voxel is emitted.
				a := get(x[0], x[1], x[2])
				bx, by, bz := x[0]+q[0], x[1]+q[1], x[2]+q[2]
				bType := get(bx, by, bz)

				var owner block.Type
				var dir bool
				var ownerPos [3]int
				switch {
				case x[axis] >= 0 && shouldDraw(a, bType):
					owner, dir, ownerPos = a, false, x
				case x[axis] < Size-1 && shouldDraw(bType, a):
					owner, dir, ownerPos = bType, true, [3]int{bx, by, bz}
				default:
					n++
					continue
				}
				if dir != backFace {
					n++
					continue
				}
				mask[n] = cell{present: true, typ: owner, ao: faceAO(get, ownerPos, axis, dir)}
				n++
			}
		}
		m.mergeMask(mask, u, v, axis, x[axis]+1, backFace, b)
	}
}

func (m *Mesher) mergeMask(mask []cell, u, v, axis, plane int, backFace bool, b *meshBuilder) {
	n := 0
	for j := 0; j < Size; j++ {
		for i := 0; i < Size; {
			c := mask[n]
			if !c.present {
				i++
				n++
				continue
			}
			w := 1
			for i+w < Size && mask[n+w].present && mask[n+w].typ == c.typ && mask[n+w].ao == c.ao {
				w++
			}
			h := 1
		heightLoop:
			for j+h < Size {
				for k := 0; k < w; k++ {
					m2 := mask[n+k+h*Size]
					if !m2.present || m2.typ != c.typ || m2.ao != c.ao {
						break heightLoop
					}
				}
				h++
			}

			emitQuad(b, u, v, axis, plane, i, j, w, h, backFace, c.typ, c.ao)

			for l := 0; l < h; l++ {
				for k := 0; k < w; k++ {
					mask[n+k+l*Size] = cell{}
				}
			}
			i += w
			n += w
		}
	}
}

func faceAO(get BlockGetter, ownerPos [3]int, axis int, dir bool) [4]uint8 {
	u := (axis + 1) % 3
	v := (axis + 2) % 3
	sign := 1
	if dir {
		sign = -1
	}
	var normal [3]int
	normal[axis] = sign

	corners := [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	var ao [4]uint8
	for i, c := range corners {
		var uOff, vOff [3]int
		uOff[u] = c[0]
		vOff[v] = c[1]

		side1 := get(ownerPos[0]+normal[0]+uOff[0], ownerPos[1]+normal[1]+uOff[1], ownerPos[2]+normal[2]+uOff[2]).IsSolid()
		side2 := get(ownerPos[0]+normal[0]+vOff[0], ownerPos[1]+normal[1]+vOff[1], ownerPos[2]+normal[2]+vOff[2]).IsSolid()
		corner := get(ownerPos[0]+normal[0]+uOff[0]+vOff[0], ownerPos[1]+normal[1]+uOff[1]+vOff[1], ownerPos[2]+normal[2]+uOff[2]+vOff[2]).IsSolid()
		ao[i] = vertexAO(side1, side2, corner)
	}
	return ao
}

func emitQuad(b *meshBuilder, u, v, axis, plane, i, j, w, h int, backFace bool, t block.Type, ao [4]uint8) {
	def := block.GetDefinition(t)

	var normal [3]float32
	normal[axis] = 1
	if backFace {
		normal[axis] = -1
	}

	texID := def.TextureSide
	if normal[1] > 0 {
		texID = def.TextureTop
	} else if normal[1] < 0 {
		texID = def.TextureBottom
	}
	u0, v0, u1, v1 := atlasRect(texID)

	corner := func(ui, vi int) [3]float32 {
		var p [3]float32
		p[axis] = float32(plane)
		p[u] = float32(i + ui)
		p[v] = float32(j + vi)
		return p
	}

	positions := [4][3]float32{corner(0, 0), corner(w, 0), corner(w, h), corner(0, h)}
	uvs := [4][2]float32{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}

	// Flip winding on the back-facing sweep so the quad stays
	// counter-clockwise as seen from outside the solid volume.
	order := [4]int{0, 1, 2, 3}
	if backFace {
		order = [4]int{0, 3, 2, 1}
	}

	idx := b.indices(def.Transparent)
	var base [4]uint32
	for n, k := range order {
		base[n] = b.push(positions[k], uvs[k], float32(ao[k])/3.0)
	}
	*idx = append(*idx, base[0], base[1], base[2], base[0], base[2], base[3])
}

// addCustomMeshes emits two intersecting cross-quads for every HasCustomMesh
// block (flowers, tall grass, campfires) instead of cube faces.
func (m *Mesher) addCustomMeshes(get BlockGetter, b *meshBuilder) {
	for z := 0; z < Size; z++ {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				t := get(x, y, z)
				def := block.GetDefinition(t)
				if !def.HasCustomMesh {
					continue
				}
				addCrossMesh(b, x, y, z, def)
			}
		}
	}
}

func addCrossMesh(b *meshBuilder, x, y, z int, def block.Definition) {
	fx, fy, fz := float32(x), float32(y), float32(z)
	const inset = 0.15

	quads := [2][4][3]float32{
		{
			{fx + inset, fy, fz + inset},
			{fx + 1 - inset, fy, fz + 1 - inset},
			{fx + 1 - inset, fy + 1, fz + 1 - inset},
			{fx + inset, fy + 1, fz + inset},
		},
		{
			{fx + 1 - inset, fy, fz + inset},
			{fx + inset, fy, fz + 1 - inset},
			{fx + inset, fy + 1, fz + 1 - inset},
			{fx + 1 - inset, fy + 1, fz + inset},
		},
	}
	u0, v0, u1, v1 := atlasRect(def.TextureSide)
	uvs := [4][2]float32{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}

	for _, quad := range quads {
		var base [4]uint32
		for k, p := range quad {
			base[k] = b.push(p, uvs[k], 1.0)
		}
		b.transparentIdx = append(b.transparentIdx,
			base[0], base[1], base[2], base[0], base[2], base[3],
			base[2], base[1], base[0], base[3], base[2], base[0],
		)
	}
}
