package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxelgame/internal/core/chunk"
	"voxelgame/internal/pool"
)

func TestChunkPoolAcquireReleaseReuse(t *testing.T) {
	p := pool.NewChunkPool(4)

	c1 := p.Acquire(chunk.Coord{0, 0, 0})
	assert.EqualValues(t, 1, p.Allocations())
	assert.Zero(t, p.Reuses())

	p.Release(c1)
	assert.Equal(t, 1, p.Pooled())

	c2 := p.Acquire(chunk.Coord{1, 0, 0})
	assert.EqualValues(t, 1, p.Allocations(), "a freed chunk must be recycled instead of allocating a new one")
	assert.EqualValues(t, 1, p.Reuses())
	assert.Equal(t, chunk.Coord{1, 0, 0}, c2.Coord, "a reused chunk must be reset to its new coordinate")
}

func TestChunkPoolDropsBeyondCapacity(t *testing.T) {
	p := pool.NewChunkPool(1)
	p.Release(chunk.New(chunk.Coord{0, 0, 0}))
	p.Release(chunk.New(chunk.Coord{1, 0, 0}))

	assert.Equal(t, 1, p.Pooled(), "pool must not retain more than maxPooled entries")
}

func TestMeshPoolAcquireClearsRecycledBuffers(t *testing.T) {
	mp := pool.NewMeshPool(4)
	m := mp.Acquire()
	m.Positions = append(m.Positions, 1, 2, 3)
	m.Opaque = chunk.Range{Start: 0, Length: 6}
	mp.Release(m)

	reused := mp.Acquire()
	assert.EqualValues(t, 1, mp.Reuses())
	assert.Empty(t, reused.Positions, "a recycled mesh buffer must be cleared before reuse")
	assert.Zero(t, reused.Opaque.Length, "a recycled mesh buffer must clear its submesh ranges before reuse")
}
