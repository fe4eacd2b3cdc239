// Package frustum extracts the six view-frustum planes from a
// view-projection matrix and tests axis-aligned bounding boxes against
// them, for culling chunks that can't be visible before they're ever
// submitted to the renderer.
package frustum

import "github.com/go-gl/mathgl/mgl32"

// Plane is a plane in Ax + By + Cz + D = 0 form, normal (A,B,C) pointing
// into the frustum's interior.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo returns the signed distance from p to the plane; positive
// means p is on the interior side.
func (pl Plane) DistanceTo(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

func (pl Plane) normalize() Plane {
	len := pl.Normal.Len()
	if len == 0 {
		return pl
	}
	return Plane{Normal: pl.Normal.Mul(1 / len), D: pl.D / len}
}

// Frustum is the six planes of a view-projection volume: left, right,
// bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// FromMatrix extracts the frustum planes from a combined
// view-projection matrix using the Gribb-Hartmann method: each plane's
// coefficients are a row combination of the matrix, read directly off the
// clip-space planes x=-w, x=w, y=-w, y=w, z=-w (or 0), z=w.
func FromMatrix(vp mgl32.Mat4) Frustum {
	// mgl32.Mat4 is column-major; m.At(row, col).
	var f Frustum
	row := func(r int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	mkPlane := func(v mgl32.Vec4) Plane {
		return Plane{Normal: mgl32.Vec3{v[0], v[1], v[2]}, D: v[3]}.normalize()
	}

	left := r3.Add(r0)
	right := r3.Sub(r0)
	bottom := r3.Add(r1)
	top := r3.Sub(r1)
	near := r3.Add(r2)
	far := r3.Sub(r2)

	f.Planes[0] = mkPlane(left)
	f.Planes[1] = mkPlane(right)
	f.Planes[2] = mkPlane(bottom)
	f.Planes[3] = mkPlane(top)
	f.Planes[4] = mkPlane(near)
	f.Planes[5] = mkPlane(far)
	return f
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// positiveVertex returns the corner of the box furthest along the plane
// normal's direction — the one most likely to be inside if any corner is.
func (b AABB) positiveVertex(normal mgl32.Vec3) mgl32.Vec3 {
	p := b.Min
	if normal.X() >= 0 {
		p[0] = b.Max.X()
	}
	if normal.Y() >= 0 {
		p[1] = b.Max.Y()
	}
	if normal.Z() >= 0 {
		p[2] = b.Max.Z()
	}
	return p
}

// Intersects reports whether the box is at least partially inside the
// frustum, using the standard positive-vertex (p-vertex) test: a box is
// provably outside only if its positive vertex is outside some plane.
func (f Frustum) Intersects(b AABB) bool {
	for _, pl := range f.Planes {
		if pl.DistanceTo(b.positiveVertex(pl.Normal)) < 0 {
			return false
		}
	}
	return true
}
