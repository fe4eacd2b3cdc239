package chunk

import (
	"sync"

	"voxelgame/internal/core/block"
	"voxelgame/pkg/math"
)

// Store owns the set of currently loaded chunks and is the single source of
// truth for block reads/writes (spec §4.1, the Voxel Store). It knows
// nothing about generation, meshing, or rendering — those are the pipeline
// and registry's job; the store only holds state and propagates dirt.
type Store struct {
	mu     sync.RWMutex
	chunks map[Coord]*Chunk
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{chunks: make(map[Coord]*Chunk)}
}

// Insert adds a chunk to the store, replacing any existing chunk at the
// same coordinate.
func (s *Store) Insert(c *Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[c.Coord] = c
}

// Remove evicts the chunk at c, returning it (or nil if absent).
func (s *Store) Remove(c Coord) *Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.chunks[c]
	if !ok {
		return nil
	}
	delete(s.chunks, c)
	return ch
}

// GetChunk returns the chunk at c, or nil if not loaded.
func (s *Store) GetChunk(c Coord) *Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunks[c]
}

// Has reports whether a chunk is currently loaded at c.
func (s *Store) Has(c Coord) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.chunks[c]
	return ok
}

// Count returns the number of loaded chunks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// WorldToChunk splits a world block coordinate into a chunk coordinate and
// the block's local position within that chunk, using Euclidean
// floor-division so negative coordinates resolve correctly (spec §3).
func WorldToChunk(wx, wy, wz int32) (Coord, [3]int) {
	cx := math.FloorDiv(wx, Size)
	cy := math.FloorDiv(wy, Size)
	cz := math.FloorDiv(wz, Size)
	lx := int(math.ModInt32(wx, Size))
	ly := int(math.ModInt32(wy, Size))
	lz := int(math.ModInt32(wz, Size))
	return Coord{cx, cy, cz}, [3]int{lx, ly, lz}
}

// GetBlock returns the block at world coordinates, or Air if the owning
// chunk isn't loaded.
func (s *Store) GetBlock(wx, wy, wz int32) block.Type {
	c, local := WorldToChunk(wx, wy, wz)
	ch := s.GetChunk(c)
	if ch == nil {
		return block.Air
	}
	return ch.Get(local[0], local[1], local[2])
}

// SetBlock writes a block at world coordinates, stamping all three of the
// owning chunk's dirty bits (spec §4.1). If the owning chunk is not loaded,
// it is a no-op and returns false. On a boundary voxel (local coord 0 or
// Size-1 on any axis) the neighboring chunk sharing that face is also
// marked mesh-dirty, since its greedy mesh may have merged across the
// boundary (spec §3 edge case: "a write on a chunk boundary dirties both
// chunks sharing that face").
func (s *Store) SetBlock(wx, wy, wz int32, t block.Type) bool {
	c, local := WorldToChunk(wx, wy, wz)
	ch := s.GetChunk(c)
	if ch == nil {
		return false
	}
	ch.Set(local[0], local[1], local[2], t)

	lx, ly, lz := local[0], local[1], local[2]
	if lx == 0 {
		s.dirtyNeighbor(c.Add(-1, 0, 0))
	} else if lx == Size-1 {
		s.dirtyNeighbor(c.Add(1, 0, 0))
	}
	if ly == 0 {
		s.dirtyNeighbor(c.Add(0, -1, 0))
	} else if ly == Size-1 {
		s.dirtyNeighbor(c.Add(0, 1, 0))
	}
	if lz == 0 {
		s.dirtyNeighbor(c.Add(0, 0, -1))
	} else if lz == Size-1 {
		s.dirtyNeighbor(c.Add(0, 0, 1))
	}
	return true
}

func (s *Store) dirtyNeighbor(c Coord) {
	if ch := s.GetChunk(c); ch != nil {
		ch.mu.Lock()
		ch.MeshDirty = true
		ch.mu.Unlock()
	}
}

// GetDirtyChunks returns every loaded chunk with at least one dirty bit
// set, for the pipeline to pick up on the next tick.
func (s *Store) GetDirtyChunks() []*Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Chunk
	for _, c := range s.chunks {
		c.mu.RLock()
		dirty := c.VoxelsDirty || c.MeshDirty || c.PhysicsDirty
		c.mu.RUnlock()
		if dirty {
			out = append(out, c)
		}
	}
	return out
}

// LoadedCoords returns the coordinates of every loaded chunk.
func (s *Store) LoadedCoords() []Coord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Coord, 0, len(s.chunks))
	for c := range s.chunks {
		out = append(out, c)
	}
	return out
}

// Clear removes every chunk from the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = make(map[Coord]*Chunk)
}
