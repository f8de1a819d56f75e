package mesh

import (
	"errors"
	"fmt"

	"voxplace/internal/chunk"
)

// VerticesPerFace is the number of vertices the shader expands each packed
// face into: two triangles.
const VerticesPerFace = 6

var (
	ErrDimsMismatch     = errors.New("mesh: chunk dimensions do not match layout")
	ErrMaterialOverflow = errors.New("mesh: material code does not fit layout")
)

// Mesher turns chunk cells into packed visible faces.
// A Mesher is not safe for concurrent use.
type Mesher struct {
	layout  Layout
	scratch []Face
}

func NewMesher(layout Layout) *Mesher {
	return &Mesher{layout: layout}
}

func (m *Mesher) Layout() Layout { return m.layout }

// Generate returns one packed face for every side of a solid cell that
// looks at air, reading across chunk edges through n.
//
// Cells are visited x outer, y middle, z inner, and each cell's faces in
// Directions order, so identical input always yields identical output.
// Matching materials are not merged. On success the chunk is marked clean;
// on error it is left untouched and no faces are returned.
func (m *Mesher) Generate(c *chunk.Chunk, n Neighbors) ([]Face, error) {
	if err := m.check(c, n); err != nil {
		return nil, err
	}

	d := c.Dims()
	faces := m.scratch[:0]
	for x := 0; x < d.X; x++ {
		for y := 0; y < d.Y; y++ {
			for z := 0; z < d.Z; z++ {
				code := c.Get(x, y, z)
				if code == 0 {
					continue
				}
				if code > m.layout.MaxMaterial {
					m.scratch = faces[:0]
					return nil, fmt.Errorf("%w: code %d at %s (%d,%d,%d), max %d",
						ErrMaterialOverflow, code, c.Coord(), x, y, z, m.layout.MaxMaterial)
				}

				for _, dir := range Directions {
					dx, dy, dz := dir.Offset()
					if n.resolve(c, x+dx, y+dy, z+dz) != 0 {
						continue
					}
					faces = append(faces, m.layout.Encode(x, y, z, dir, code))
				}
			}
		}
	}
	m.scratch = faces[:0]
	c.MarkClean()

	if len(faces) == 0 {
		return nil, nil
	}
	out := make([]Face, len(faces))
	copy(out, faces)
	return out, nil
}

func (m *Mesher) check(c *chunk.Chunk, n Neighbors) error {
	if c.Dims() != m.layout.Dims {
		return fmt.Errorf("%w: chunk %s is %v, layout is %v", ErrDimsMismatch, c.Coord(), c.Dims(), m.layout.Dims)
	}
	var err error
	n.each(func(other *chunk.Chunk) {
		if err == nil && other.Dims() != m.layout.Dims {
			err = fmt.Errorf("%w: neighbour %s is %v, layout is %v", ErrDimsMismatch, other.Coord(), other.Dims(), m.layout.Dims)
		}
	})
	return err
}
