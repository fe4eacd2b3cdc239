package density

import "github.com/go-gl/mathgl/mgl32"

// cornerOffset is the standard marching-cubes corner numbering.
var cornerOffset = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// edgeCorners maps each of the 12 cube edges to the pair of corner indices
// it connects.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// snapTolerance collapses an edge crossing to whichever corner it's within
// this fraction of, avoiding degenerate slivers when a density sample sits
// almost exactly at IsoLevel.
const snapTolerance = 0.02

// MaterialBlend selects how a vertex's material id is chosen when the two
// corners it interpolates between disagree (spec §4.5 point 3).
type MaterialBlend int

const (
	// BlendNearest takes the material of whichever corner is closer to
	// the surface (smaller |density - IsoLevel|).
	BlendNearest MaterialBlend = iota
	// BlendDominant takes the material of the corner that is inside the
	// surface (density > IsoLevel), since that's the material actually
	// being exposed.
	BlendDominant
	// BlendInterpolated stores a fractional blend weight in the vertex's
	// alternate-material field instead of picking one winner; the
	// renderer can mix two materials' textures using it.
	BlendInterpolated
)

// Vertex is one marching-cubes output vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Material uint8
	// AltMaterial and Blend are populated only under BlendInterpolated.
	AltMaterial uint8
	Blend       float32
}

// Mesh is the triangle soup produced by Generate: every 3 consecutive
// Vertices form one triangle.
type Mesh struct {
	Vertices []Vertex
}

// Generate runs marching cubes over the chunk's Size^3 cells using the
// given blend mode for material assignment.
func Generate(c *Chunk, blend MaterialBlend) *Mesh {
	mesh := &Mesh{}
	for z := 0; z < Size; z++ {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				marchCell(c, x, y, z, blend, mesh)
			}
		}
	}
	return mesh
}

func marchCell(c *Chunk, x, y, z int, blend MaterialBlend, mesh *Mesh) {
	var density [8]uint8
	var material [8]uint8
	caseIndex := 0
	for i, off := range cornerOffset {
		d := c.SampleAt(x+off[0], y+off[1], z+off[2])
		density[i] = d
		material[i] = c.MaterialSampleAt(x+off[0], y+off[1], z+off[2])
		if d > IsoLevel {
			caseIndex |= 1 << uint(i)
		}
	}

	edges := edgeTable[caseIndex]
	if edges == 0 {
		return
	}

	var edgeVertex [12]mgl32.Vec3
	var edgeMaterial [12]uint8
	var edgeAlt [12]uint8
	var edgeBlend [12]float32

	for e := 0; e < 12; e++ {
		if edges&(1<<uint(e)) == 0 {
			continue
		}
		a, b := edgeCorners[e][0], edgeCorners[e][1]
		pa := mgl32.Vec3{
			float32(x + cornerOffset[a][0]),
			float32(y + cornerOffset[a][1]),
			float32(z + cornerOffset[a][2]),
		}
		pb := mgl32.Vec3{
			float32(x + cornerOffset[b][0]),
			float32(y + cornerOffset[b][1]),
			float32(z + cornerOffset[b][2]),
		}
		t := interpFraction(density[a], density[b])
		edgeVertex[e] = pa.Add(pb.Sub(pa).Mul(t))

		switch blend {
		case BlendNearest:
			if absDiff(density[a], IsoLevel) <= absDiff(density[b], IsoLevel) {
				edgeMaterial[e] = material[a]
			} else {
				edgeMaterial[e] = material[b]
			}
		case BlendDominant:
			if density[a] > IsoLevel {
				edgeMaterial[e] = material[a]
			} else {
				edgeMaterial[e] = material[b]
			}
		case BlendInterpolated:
			edgeMaterial[e] = material[a]
			edgeAlt[e] = material[b]
			edgeBlend[e] = t
		}
	}

	tris := triTable[caseIndex]
	for i := 0; i+2 < len(tris) && tris[i] != -1; i += 3 {
		e0, e1, e2 := tris[i], tris[i+1], tris[i+2]
		p0, p1, p2 := edgeVertex[e0], edgeVertex[e1], edgeVertex[e2]
		normal := centralDifferenceNormal(c, p0, p1, p2)

		for _, e := range [3]int{e0, e1, e2} {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position:    edgeVertex[e],
				Normal:      normal,
				Material:    edgeMaterial[e],
				AltMaterial: edgeAlt[e],
				Blend:       edgeBlend[e],
			})
		}
	}
}

// interpFraction returns where along [a,b] the iso-level crossing sits,
// snapping to 0 or 1 when within snapTolerance of an endpoint to avoid
// sliver triangles.
func interpFraction(a, b uint8) float32 {
	if a == b {
		return 0.5
	}
	t := (float32(IsoLevel) - float32(a)) / (float32(b) - float32(a))
	if t < snapTolerance {
		return 0
	}
	if t > 1-snapTolerance {
		return 1
	}
	return t
}

func absDiff(a uint8, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// centralDifferenceNormal estimates the surface normal at a triangle's
// centroid using the central-difference gradient of the density field,
// grounded on the same approach as sampling the field at +/-1 along each
// axis and taking the component-wise slope.
func centralDifferenceNormal(c *Chunk, p0, p1, p2 mgl32.Vec3) mgl32.Vec3 {
	centroid := p0.Add(p1).Add(p2).Mul(1.0 / 3.0)
	x, y, z := int(centroid.X()+0.5), int(centroid.Y()+0.5), int(centroid.Z()+0.5)

	gx := float32(c.SampleAt(x+1, y, z)) - float32(c.SampleAt(x-1, y, z))
	gy := float32(c.SampleAt(x, y+1, z)) - float32(c.SampleAt(x, y-1, z))
	gz := float32(c.SampleAt(x, y, z+1)) - float32(c.SampleAt(x, y, z-1))

	// Density increases inward (density > IsoLevel is solid), so the raw
	// gradient points into the solid; negate it so the normal points
	// outward (spec §4.5 point 2).
	n := mgl32.Vec3{-gx, -gy, -gz}
	if n.Len() < 1e-6 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
