// Package registry owns the GPU-side mesh for every chunk the renderer
// knows about: buffer handles, draw counts, and the bounding box used for
// frustum culling. Workers never touch this package directly — it's
// updated only from the thread that owns the GL context, after draining
// the pipeline.
package registry

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"voxelgame/internal/core/chunk"
	"voxelgame/internal/frustum"
)

// GPUDevice is the minimal surface the registry needs from a render
// backend to upload/free mesh data. internal/render implements this; the
// registry itself never calls into gl directly, so it can be exercised
// without a window.
type GPUDevice interface {
	UploadMesh(vertices []float32, indices []uint32) (vbo, ebo uint32, err error)
	FreeMesh(vbo, ebo uint32)
}

// Entry is one chunk's uploaded GPU state.
type Entry struct {
	Coord chunk.Coord

	OpaqueVBO, OpaqueEBO             uint32
	OpaqueIndexCount                 int32
	TransparentVBO, TransparentEBO   uint32
	TransparentIndexCount            int32

	Bounds frustum.AABB
}

// Registry maps chunk coordinates to their uploaded GPU entry.
type Registry struct {
	device GPUDevice

	mu      sync.RWMutex
	entries map[chunk.Coord]*Entry
}

// New creates a Registry backed by the given device.
func New(device GPUDevice) *Registry {
	return &Registry{device: device, entries: make(map[chunk.Coord]*Entry)}
}

// Upload replaces (or creates) the GPU entry for a chunk's mesh data. If an
// entry already exists for that coordinate, its old buffers are freed only
// after the new entry has replaced it — this is the atomic swap spec §4.6
// calls for: the old mesh stays drawable right up until the new one
// successfully uploads.
//
// mesh's Positions/UVs/AO arrive as three separate slices (spec §3's mesh
// output contract); the registry interleaves them into the single
// position+uv+ao vertex layout the GPU side actually wants, then uploads
// the Opaque and Transparent index ranges as two independent draws, each
// with its own copy of that interleaved vertex data.
func (r *Registry) Upload(coord chunk.Coord, mesh *chunk.MeshData) error {
	var entry Entry
	entry.Coord = coord

	vertices := interleave(mesh.Positions, mesh.UVs, mesh.AO)

	if mesh.Opaque.Length > 0 {
		idx := mesh.Indices[mesh.Opaque.Start : mesh.Opaque.Start+mesh.Opaque.Length]
		vbo, ebo, err := r.device.UploadMesh(vertices, idx)
		if err != nil {
			return err
		}
		entry.OpaqueVBO, entry.OpaqueEBO = vbo, ebo
		entry.OpaqueIndexCount = int32(len(idx))
	}
	if mesh.Transparent.Length > 0 {
		idx := mesh.Indices[mesh.Transparent.Start : mesh.Transparent.Start+mesh.Transparent.Length]
		vbo, ebo, err := r.device.UploadMesh(vertices, idx)
		if err != nil {
			return err
		}
		entry.TransparentVBO, entry.TransparentEBO = vbo, ebo
		entry.TransparentIndexCount = int32(len(idx))
	}

	const s = float32(chunk.Size)
	origin := mgl32.Vec3{float32(coord.X) * s, float32(coord.Y) * s, float32(coord.Z) * s}
	entry.Bounds = frustum.AABB{
		Min: origin.Add(mgl32.Vec3{mesh.Bounds.Min[0], mesh.Bounds.Min[1], mesh.Bounds.Min[2]}),
		Max: origin.Add(mgl32.Vec3{mesh.Bounds.Max[0], mesh.Bounds.Max[1], mesh.Bounds.Max[2]}),
	}

	r.mu.Lock()
	old, existed := r.entries[coord]
	r.entries[coord] = &entry
	r.mu.Unlock()

	if existed {
		r.freeEntry(old)
	}
	return nil
}

// Remove evicts and frees the GPU entry for a coordinate, if present.
func (r *Registry) Remove(coord chunk.Coord) {
	r.mu.Lock()
	old, ok := r.entries[coord]
	delete(r.entries, coord)
	r.mu.Unlock()
	if ok {
		r.freeEntry(old)
	}
}

func (r *Registry) freeEntry(e *Entry) {
	if e.OpaqueIndexCount > 0 {
		r.device.FreeMesh(e.OpaqueVBO, e.OpaqueEBO)
	}
	if e.TransparentIndexCount > 0 {
		r.device.FreeMesh(e.TransparentVBO, e.TransparentEBO)
	}
}

// CullChunks returns every registered entry whose bounds intersect the
// given frustum, delegating the actual plane test to internal/frustum.
func (r *Registry) CullChunks(f frustum.Frustum) []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var visible []*Entry
	for _, e := range r.entries {
		if f.Intersects(e.Bounds) {
			visible = append(visible, e)
		}
	}
	return visible
}

// interleave zips separate position/uv/ao arrays into one GPU-ready vertex
// buffer (stride 6: x,y,z,u,v,ao).
func interleave(positions, uvs, ao []float32) []float32 {
	n := len(ao)
	out := make([]float32, 0, n*6)
	for i := 0; i < n; i++ {
		out = append(out,
			positions[i*3], positions[i*3+1], positions[i*3+2],
			uvs[i*2], uvs[i*2+1],
			ao[i],
		)
	}
	return out
}

// Count returns the number of chunks currently registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
