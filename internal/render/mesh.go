// Package render provides GPU mesh upload for the voxel engine.
package render

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"

	"voxelgame/internal/registry"
)

// vertexStride is the size in floats of the interleaved GPU vertex the
// registry builds from a chunk.MeshData's separate position/uv/ao arrays:
// position(3) + uv(2) + ao(1). Normals and material ids are not part of a
// block mesh's GPU vertex — those only exist for the density schema.
const vertexStride = 6

var _ registry.GPUDevice = (*Engine)(nil)

// vaoTracker remembers the VAO created alongside each VBO, since
// registry.Entry (spec §5) only carries the VBO/EBO handles the registry
// itself needs for culling/bookkeeping — the VAO is purely a GL binding
// convenience that only this package needs to recall on draw/free.
type vaoTracker struct {
	mu   sync.Mutex
	vaos map[uint32]uint32 // VBO -> VAO
}

func newVAOTracker() *vaoTracker {
	return &vaoTracker{vaos: make(map[uint32]uint32)}
}

func (t *vaoTracker) put(vbo, vao uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vaos[vbo] = vao
}

func (t *vaoTracker) take(vbo uint32) (uint32, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	vao, ok := t.vaos[vbo]
	delete(t.vaos, vbo)
	return vao, ok
}

func (t *vaoTracker) get(vbo uint32) (uint32, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	vao, ok := t.vaos[vbo]
	return vao, ok
}

// UploadMesh implements registry.GPUDevice: it creates a VAO/VBO/EBO triple
// for one submesh and binds the vertexStride-float vertex layout (position,
// uv, ao), grounded on the teacher's NewChunkMesh buffer setup.
func (e *Engine) UploadMesh(vertices []float32, indices []uint32) (vbo, ebo uint32, err error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return 0, 0, fmt.Errorf("render: empty mesh")
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(vertexStride * 4)
	offset := int32(0)

	attrib := func(location uint32, size int32) {
		gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, stride, uintptr(offset))
		gl.EnableVertexAttribArray(location)
		offset += size * 4
	}
	attrib(0, 3) // position
	attrib(1, 2) // uv
	attrib(2, 1) // ao

	gl.BindVertexArray(0)

	e.vaos.put(vbo, vao)
	return vbo, ebo, nil
}

// FreeMesh implements registry.GPUDevice: deletes the GL buffers created by
// a matching UploadMesh call.
func (e *Engine) FreeMesh(vbo, ebo uint32) {
	if vao, ok := e.vaos.take(vbo); ok {
		gl.DeleteVertexArrays(1, &vao)
	}
	if vbo != 0 {
		gl.DeleteBuffers(1, &vbo)
	}
	if ebo != 0 {
		gl.DeleteBuffers(1, &ebo)
	}
}

// DrawIndexed binds the VAO tracked for vbo and issues one indexed draw
// call — the registry tells the engine how many indices to draw and from
// which buffers, but owns no GL state itself.
func (e *Engine) DrawIndexed(vbo, ebo uint32, indexCount int32) {
	if indexCount == 0 {
		return
	}
	vao, ok := e.vaos.get(vbo)
	if !ok {
		return
	}
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.DrawElements(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}
