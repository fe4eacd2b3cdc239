package world_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelgame/internal/applog"
	"voxelgame/internal/core/block"
	"voxelgame/internal/generation/terrain"
	"voxelgame/internal/world"
)

// fakeDevice is a registry.GPUDevice that hands out incrementing handles
// without touching a real GL context.
type fakeDevice struct {
	next uint32
}

func (f *fakeDevice) UploadMesh(vertices []float32, indices []uint32) (uint32, uint32, error) {
	f.next++
	vbo := f.next
	f.next++
	ebo := f.next
	return vbo, ebo, nil
}

func (f *fakeDevice) FreeMesh(vbo, ebo uint32) {}

func newTestWorld() *world.World {
	cfg := world.Config{
		Seed:             1,
		LoadRadius:       1,
		UnloadRadius:     2,
		VerticalRadius:   1,
		PipelineWorkers:  2,
		MaxLoadsPerTick:  64,
		MaxMeshesPerTick: 64,
		TerrainConfig:    terrain.DefaultConfig(),
	}
	return world.New(cfg, &fakeDevice{}, applog.New(applog.Silent))
}

func TestTickEventuallyLoadsAndMeshesChunks(t *testing.T) {
	w := newTestWorld()
	defer w.Close()

	require.Eventually(t, func() bool {
		w.Tick(0, 64, 0)
		stats := w.GetStats()
		return stats.ChunksLoaded > 0 && stats.MeshesReady > 0
	}, 5*time.Second, time.Millisecond)
}

func TestSpawnHeightForcesGenerationAndIsStable(t *testing.T) {
	w := newTestWorld()
	defer w.Close()

	h1 := w.SpawnHeight(0, 0)
	h2 := w.SpawnHeight(0, 0)
	assert.Equal(t, h1, h2)
	assert.Greater(t, h1, int32(0))
}

func TestSetBlockThenGetBlockRoundTrips(t *testing.T) {
	w := newTestWorld()
	defer w.Close()

	w.SpawnHeight(0, 0) // force the origin chunk to exist
	changed := w.SetBlock(0, 10, 0, block.Stone)
	assert.True(t, changed)
	assert.Equal(t, block.Stone, w.GetBlock(0, 10, 0))
}
