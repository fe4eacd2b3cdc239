// Package world ties the voxel store, ring loader, job pipeline, pools, and
// GPU registry together into the tick loop the engine drives every frame.
package world

import (
	"voxelgame/internal/applog"
	"voxelgame/internal/core/block"
	"voxelgame/internal/core/chunk"
	"voxelgame/internal/frustum"
	"voxelgame/internal/generation/terrain"
	"voxelgame/internal/physics"
	"voxelgame/internal/pipeline"
	"voxelgame/internal/pool"
	"voxelgame/internal/registry"
	"voxelgame/internal/ring"

	"github.com/go-gl/mathgl/mgl32"
)

// Config controls the world's tick behavior; fields map directly onto
// config.World/config.Performance so main.go can build one straight off
// the loaded config file.
type Config struct {
	Seed             int64
	LoadRadius       int32
	UnloadRadius     int32
	VerticalRadius   int32
	VerticalBall     bool // true selects ring.Ball instead of ring.Disk
	PipelineWorkers  int
	MaxLoadsPerTick  int
	MaxMeshesPerTick int
	TerrainConfig    terrain.GeneratorConfig
}

// World owns the full generate -> mesh -> upload -> cull pipeline for
// block-schema chunks.
type World struct {
	cfg Config
	log *applog.Logger

	store     *chunk.Store
	loader    *ring.Loader
	jobs      *pipeline.Pipeline
	chunkPool *pool.ChunkPool
	meshPool  *pool.MeshPool
	registry  *registry.Registry
	generator *terrain.Generator
	mesher    *chunk.Mesher
}

// New creates a World backed by a GPU device (typically *render.Engine)
// for the registry to upload meshes through.
func New(cfg Config, device registry.GPUDevice, log *applog.Logger) *World {
	shape := ring.Disk
	if cfg.VerticalBall {
		shape = ring.Ball
	}

	w := &World{
		cfg:       cfg,
		log:       log,
		store:     chunk.NewStore(),
		loader:    ring.NewLoader(shape, cfg.LoadRadius, cfg.UnloadRadius, cfg.VerticalRadius),
		chunkPool: pool.NewChunkPool(512),
		meshPool:  pool.NewMeshPool(256),
		registry:  registry.New(device),
		generator: terrain.NewGenerator(cfg.Seed),
		mesher:    chunk.NewMesher(),
	}
	w.generator.SetConfig(cfg.TerrainConfig)
	w.jobs = pipeline.New(cfg.PipelineWorkers, w.doWork)
	return w
}

// doWork is the pipeline's Work function: it runs on a worker goroutine,
// never touching the GL context (spec §4.6).
func (w *World) doWork(j pipeline.Job) (any, error) {
	switch j.Kind {
	case pipeline.OpGenerate:
		coord := j.Coord.(chunk.Coord)
		ch := w.chunkPool.Acquire(coord)
		if chunk.CanTransition(ch.State, chunk.StateGenerating) {
			ch.State = chunk.StateGenerating
		}
		w.generator.GenerateChunk(ch)
		return ch, nil
	case pipeline.OpMesh:
		// Mesh workers read a pre-cloned Snapshot, never the live
		// store (spec §5): the store read happened synchronously on
		// the caller's goroutine when this job was pushed.
		snap := j.Payload.(*chunk.Snapshot)
		fresh := w.mesher.GenerateMesh(snap.Get)
		mesh := w.meshPool.Acquire()
		mesh.Positions = append(mesh.Positions, fresh.Positions...)
		mesh.UVs = append(mesh.UVs, fresh.UVs...)
		mesh.AO = append(mesh.AO, fresh.AO...)
		mesh.Indices = append(mesh.Indices, fresh.Indices...)
		mesh.Opaque = fresh.Opaque
		mesh.Transparent = fresh.Transparent
		mesh.Bounds = fresh.Bounds
		return mesh, nil
	}
	return nil, nil
}

// Tick advances the world by one frame: it re-centers the ring loader on
// the viewer's position, pushes newly-desired chunks into the pipeline,
// drains completed generate/mesh jobs, and uploads finished meshes to the
// GPU registry. It must be called from the thread that owns the GL
// context, since Drain's mesh results are uploaded inline.
func (w *World) Tick(viewerWorldX, viewerWorldY, viewerWorldZ int32) {
	center, _ := chunk.WorldToChunk(viewerWorldX, viewerWorldY, viewerWorldZ)

	toLoad, toUnload := w.loader.Update(center)

	for i, c := range toUnload {
		if i >= w.cfg.MaxLoadsPerTick*4 {
			break // bound unload churn same as load churn, just more generous
		}
		if ch := w.store.Remove(c); ch != nil {
			if chunk.CanTransition(ch.State, chunk.StateUnloading) {
				ch.State = chunk.StateUnloading
			}
			w.chunkPool.Release(ch)
		}
		w.registry.Remove(c)
		w.loader.MarkUnloaded(c)
	}

	// Every chunk this tick asks the pipeline to load or re-mesh is one
	// batch (spec §4.6): Stats reports its wall-clock span once every job
	// in it has completed.
	var batch []pipeline.Job

	for i, c := range toLoad {
		if i >= w.cfg.MaxLoadsPerTick {
			break
		}
		batch = append(batch, pipeline.Job{Kind: pipeline.OpGenerate, Coord: c})
	}

	for _, ch := range w.store.GetDirtyChunks() {
		if ch.MeshDirty {
			if chunk.CanTransition(ch.State, chunk.StateMeshing) {
				ch.State = chunk.StateMeshing
			}
			snap := chunk.NewSnapshot(w.store, ch.Coord)
			batch = append(batch, pipeline.Job{Kind: pipeline.OpMesh, Coord: ch.Coord, Payload: snap})
			ch.MeshDirty = false
		}
	}

	if len(batch) > 0 {
		w.jobs.PushBatch(batch)
	}

	meshed := 0
	for _, r := range w.jobs.Drain() {
		if r.Err != nil {
			if w.log != nil {
				w.log.Error("world", "job failed: %v", r.Err)
			}
			continue
		}

		switch r.Kind {
		case pipeline.OpGenerate:
			ch := r.Payload.(*chunk.Chunk)
			coord := r.Coord.(chunk.Coord)
			if chunk.CanTransition(ch.State, chunk.StateActive) {
				ch.State = chunk.StateActive
			}
			w.store.Insert(ch)
			w.loader.MarkLoaded(coord)
			if chunk.CanTransition(ch.State, chunk.StateMeshing) {
				ch.State = chunk.StateMeshing
			}
			// Follow-on work from this tick's own generate results, not
			// part of the batch the tick started with — pushed
			// individually rather than folded into `batch` above.
			snap := chunk.NewSnapshot(w.store, coord)
			w.jobs.Push(pipeline.Job{Kind: pipeline.OpMesh, Coord: coord, Payload: snap})
		case pipeline.OpMesh:
			if meshed >= w.cfg.MaxMeshesPerTick {
				// Over this tick's upload budget. MeshDirty was cleared
				// when the job was pushed, so set it again: next tick's
				// GetDirtyChunks pass re-queues the chunk for meshing.
				if ch := w.store.GetChunk(r.Coord.(chunk.Coord)); ch != nil {
					ch.MeshDirty = true
				}
				continue
			}
			coord := r.Coord.(chunk.Coord)
			mesh := r.Payload.(*chunk.MeshData)
			if err := w.registry.Upload(coord, mesh); err != nil && w.log != nil {
				w.log.Error("world", "upload %v failed: %v", coord, err)
			}
			if ch := w.store.GetChunk(coord); ch != nil && chunk.CanTransition(ch.State, chunk.StateActive) {
				ch.State = chunk.StateActive
			}
			w.meshPool.Release(mesh)
			meshed++
		}
	}
}

// CullVisible returns every registered chunk entry whose bounds intersect
// the given frustum, for the renderer's draw pass.
func (w *World) CullVisible(f frustum.Frustum) []*registry.Entry {
	return w.registry.CullChunks(f)
}

// GetBlock returns the block at world coordinates.
func (w *World) GetBlock(x, y, z int32) block.Type {
	return w.store.GetBlock(x, y, z)
}

// SetBlock writes a block at world coordinates, returning whether it
// actually changed anything.
func (w *World) SetBlock(x, y, z int32, t block.Type) bool {
	return w.store.SetBlock(x, y, z, t)
}

// Raycast performs a block raycast against the world's store.
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32) physics.RaycastResult {
	return physics.Raycast(origin, direction, maxDistance, w.store.GetBlock)
}

// SpawnHeight returns a safe spawn Y above the terrain at (x, z), forcing
// generation of the origin region first if it isn't loaded yet.
func (w *World) SpawnHeight(x, z int32) int32 {
	coord, _ := chunk.WorldToChunk(x, 0, z)
	if !w.store.Has(coord) {
		ch := w.chunkPool.Acquire(coord)
		w.generator.GenerateChunk(ch)
		w.store.Insert(ch)
		w.loader.MarkLoaded(coord)
	}
	height := -1
	for y := int32(chunk.Size - 1); y >= 0; y-- {
		if w.store.GetBlock(x, coord.Y*chunk.Size+y, z).IsSolid() {
			height = int(coord.Y*chunk.Size + y)
			break
		}
	}
	if height < 0 {
		height = 64
	}
	return int32(height) + 4
}

// Stats summarizes the world's current load for HUD/debug display.
type Stats struct {
	ChunksLoaded int
	MeshesReady  int
	PipelinePending int
}

// GetStats reports current pipeline/store/registry sizes.
func (w *World) GetStats() Stats {
	return Stats{
		ChunksLoaded:    w.store.Count(),
		MeshesReady:     w.registry.Count(),
		PipelinePending: w.jobs.Pending(),
	}
}

// Close stops the job pipeline, waiting for in-flight work to finish.
func (w *World) Close() {
	w.jobs.Stop()
}
