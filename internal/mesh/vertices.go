package mesh

import "github.com/go-gl/mathgl/mgl32"

// FloatsPerVertex is the vertex layout of BuildVertices: position then colour.
const FloatsPerVertex = 6

// Colors maps a material code to a linear RGB colour.
type Colors interface {
	RGB(code uint8) mgl32.Vec3
}

// corners are the four quad corners of a unit cube face, counter-clockwise
// seen from outside the cube.
var corners = [directionCount][4]mgl32.Vec3{
	Top:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	Bottom: {{0, 0, 1}, {0, 0, 0}, {1, 0, 0}, {1, 0, 1}},
	North:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	South:  {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	East:   {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	West:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
}

var quadIndices = [VerticesPerFace]uint32{0, 1, 2, 0, 2, 3}

// BuildVertices expands packed faces into an indexed triangle list in
// chunk-local space. It is the fallback for renderers that cannot read the
// packed buffer in a shader; the packed path stays the primary one.
func BuildVertices(faces []Face, layout Layout, colors Colors) (verts []float32, indices []uint32) {
	if len(faces) == 0 {
		return nil, nil
	}
	verts = make([]float32, 0, len(faces)*4*FloatsPerVertex)
	indices = make([]uint32, 0, len(faces)*VerticesPerFace)

	for _, f := range faces {
		x, y, z, dir, material := layout.Decode(f)
		origin := mgl32.Vec3{float32(x), float32(y), float32(z)}
		rgb := colors.RGB(material)

		base := uint32(len(verts) / FloatsPerVertex)
		for _, corner := range corners[dir] {
			p := origin.Add(corner)
			verts = append(verts, p[0], p[1], p[2], rgb[0], rgb[1], rgb[2])
		}
		for _, i := range quadIndices {
			indices = append(indices, base+i)
		}
	}
	return verts, indices
}

// CornerTable flattens the corner offsets of every direction, four vec3 per
// direction in code order, for the chunk shader's corner uniform.
func CornerTable() []float32 {
	out := make([]float32, 0, int(directionCount)*4*3)
	for _, quad := range corners {
		for _, c := range quad {
			out = append(out, c[0], c[1], c[2])
		}
	}
	return out
}

// QuadOrder returns which of a face's four corners each of its six vertices uses.
func QuadOrder() []int32 {
	out := make([]int32, len(quadIndices))
	for i, q := range quadIndices {
		out[i] = int32(q)
	}
	return out
}
