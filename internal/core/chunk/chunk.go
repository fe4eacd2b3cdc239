// Package chunk implements the voxel store: cubic chunks of blocks, the
// palette that compresses them, and the store that owns the whole loaded
// set.
package chunk

import (
	"sync"

	"voxelgame/internal/core/block"
	"voxelgame/internal/core/schema"
)

// Size is the edge length of a chunk in blocks. Chunks are cubic (spec §3),
// unlike the teacher's full-column 16x64x16 chunks, so the world now has a
// vertical chunk axis too.
const Size = 32

const blockCount = Size * Size * Size

// Coord is a chunk's position in chunk-space (world position divided by
// Size, floor-divided so negative coordinates behave).
type Coord struct {
	X, Y, Z int32
}

// Add returns the coordinate offset by (dx, dy, dz).
func (c Coord) Add(dx, dy, dz int32) Coord {
	return Coord{c.X + dx, c.Y + dy, c.Z + dz}
}

// Chunk holds one Size^3 volume of blocks behind a palette. The palette
// keeps memory flat for the common case of mostly-uniform chunks (all-air,
// all-stone) while indices stay a fixed-width array for O(1) lookup.
type Chunk struct {
	mu sync.RWMutex

	Coord Coord

	palette      []block.Type
	paletteIndex map[block.Type]uint16
	indices      []uint16 // len == blockCount, one palette index per voxel

	// HeightMap caches the topmost solid Y per column, refreshed on write.
	// It is a generation/lighting convenience, not authoritative state.
	HeightMap []int16

	// Three independent dirty bits (spec §3): a change to voxel data does
	// not by itself imply the render mesh or physics shape are stale, and
	// vice versa (a neighbor edit can dirty mesh/physics without touching
	// this chunk's own voxels).
	VoxelsDirty  bool
	MeshDirty    bool
	PhysicsDirty bool

	Generated bool

	// State is the chunk's position in the load/generate/mesh/unload
	// lifecycle (spec §4.9). The world loop advances it through
	// CanTransition-checked edges as pipeline jobs complete.
	State LifecycleState

	// GPU handle fields. Nothing in this module sets them: the render
	// registry keeps uploaded handles in its own registry.Entry.
	VAO, VBO, EBO uint32
	VertexCount   int32
}

// New creates an empty (all-air) chunk at the given coordinate, in
// StatePending: a load has been requested but nothing has generated it yet.
func New(c Coord) *Chunk {
	ch := &Chunk{
		Coord:        c,
		palette:      []block.Type{block.Air},
		paletteIndex: map[block.Type]uint16{block.Air: 0},
		indices:      make([]uint16, blockCount),
		HeightMap:    make([]int16, Size*Size),
		State:        StatePending,
	}
	for i := range ch.HeightMap {
		ch.HeightMap[i] = -1
	}
	return ch
}

func localIndex(x, y, z int) int {
	return y*Size*Size + z*Size + x
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size && z >= 0 && z < Size
}

// paletteIdx returns the palette index for t, appending a new palette entry
// if it hasn't been seen in this chunk before. Append-only: entries are
// never removed, so existing indices stay valid across writes.
func (c *Chunk) paletteIdx(t block.Type) uint16 {
	if idx, ok := c.paletteIndex[t]; ok {
		return idx
	}
	idx := uint16(len(c.palette))
	c.palette = append(c.palette, t)
	c.paletteIndex[t] = idx
	return idx
}

// Get returns the block type at local coordinates. Out-of-bounds reads
// return Air rather than panicking, since mesher/raycaster neighbor probes
// routinely step outside a chunk's own volume.
func (c *Chunk) Get(x, y, z int) block.Type {
	if !inBounds(x, y, z) {
		return block.Air
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.palette[c.indices[localIndex(x, y, z)]]
}

// Set writes a block, unconditionally stamping all three dirty bits (spec
// §3/§4.1: "writes the cell, stamps all three dirty bits on the owning
// chunk"), and reports whether the write was in bounds. Dirtying does not
// depend on whether the value or collidability actually changed — a
// same-value write still marks the chunk stale, since the spec's dirty
// bits track "has this chunk been written since last clear", not "did this
// write change anything".
func (c *Chunk) Set(x, y, z int, t block.Type) bool {
	if !inBounds(x, y, z) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := localIndex(x, y, z)
	c.indices[idx] = c.paletteIdx(t)
	c.VoxelsDirty = true
	c.MeshDirty = true
	c.PhysicsDirty = true
	c.updateHeightMap(x, y, z, t)
	return true
}

func (c *Chunk) updateHeightMap(x, y, z int, t block.Type) {
	hi := z*Size + x
	if t.IsAir() {
		if int(c.HeightMap[hi]) == y {
			c.HeightMap[hi] = -1
			for yy := y - 1; yy >= 0; yy-- {
				if !c.palette[c.indices[localIndex(x, yy, z)]].IsAir() {
					c.HeightMap[hi] = int16(yy)
					break
				}
			}
		}
		return
	}
	if int(c.HeightMap[hi]) < y {
		c.HeightMap[hi] = int16(y)
	}
}

// ClearDirty resets all three dirty bits, called once the registry has
// finished consuming them (new mesh uploaded, new collision shape built).
func (c *Chunk) ClearDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.VoxelsDirty, c.MeshDirty, c.PhysicsDirty = false, false, false
}

// IsEmpty reports whether the chunk's palette contains only air — a cheap
// skip for meshing/upload.
func (c *Chunk) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.palette) == 1 && c.palette[0] == block.Air
}

// View returns a schema.Schema adapter over this chunk for the mesher and
// raycaster, which only know about the polymorphic interface.
func (c *Chunk) View() block.View {
	return block.View{At: func(p schema.Coord) block.Type {
		return c.Get(p.X, p.Y, p.Z)
	}}
}

// GetHeight returns the topmost solid Y in local column (x, z), or -1 if
// the column is empty.
func (c *Chunk) GetHeight(x, z int) int {
	if x < 0 || x >= Size || z < 0 || z >= Size {
		return -1
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int(c.HeightMap[z*Size+x])
}

// SerializedChunk is the persisted form of a chunk: the palette plus the raw
// index array, avoiding repeating full block.Type values per voxel.
type SerializedChunk struct {
	CX, CY, CZ int32
	Palette    []block.Type
	Indices    []uint16
}

// Serialize snapshots the chunk for persistence.
func (c *Chunk) Serialize() SerializedChunk {
	c.mu.RLock()
	defer c.mu.RUnlock()
	palette := make([]block.Type, len(c.palette))
	copy(palette, c.palette)
	indices := make([]uint16, len(c.indices))
	copy(indices, c.indices)
	return SerializedChunk{
		CX: c.Coord.X, CY: c.Coord.Y, CZ: c.Coord.Z,
		Palette: palette, Indices: indices,
	}
}

// Deserialize rebuilds a chunk from its serialized form.
func Deserialize(s SerializedChunk) *Chunk {
	c := New(Coord{s.CX, s.CY, s.CZ})
	c.palette = append([]block.Type(nil), s.Palette...)
	c.paletteIndex = make(map[block.Type]uint16, len(c.palette))
	for i, t := range c.palette {
		c.paletteIndex[t] = uint16(i)
	}
	c.indices = append([]uint16(nil), s.Indices...)
	for z := 0; z < Size; z++ {
		for x := 0; x < Size; x++ {
			for y := Size - 1; y >= 0; y-- {
				if !c.palette[c.indices[localIndex(x, y, z)]].IsAir() {
					c.HeightMap[z*Size+x] = int16(y)
					break
				}
			}
		}
	}
	c.Generated = true
	return c
}
