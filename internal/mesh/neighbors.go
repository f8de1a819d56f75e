package mesh

import "voxplace/internal/chunk"

// Source looks up chunks by grid coordinate. A missing chunk is reported
// with ok == false and is never an error.
type Source interface {
	Chunk(coord chunk.Coord) (c *chunk.Chunk, ok bool)
}

// Neighbors are the four horizontally adjacent chunks of the chunk being
// meshed. A nil entry means there is no chunk there and the boundary is
// treated as air.
type Neighbors struct {
	North *chunk.Chunk // +Z
	South *chunk.Chunk // -Z
	East  *chunk.Chunk // +X
	West  *chunk.Chunk // -X
}

// NeighborsOf collects the neighbours of coord from src.
func NeighborsOf(src Source, coord chunk.Coord) Neighbors {
	get := func(x, z int) *chunk.Chunk {
		c, ok := src.Chunk(chunk.Coord{X: x, Z: z})
		if !ok {
			return nil
		}
		return c
	}
	return Neighbors{
		North: get(coord.X, coord.Z+1),
		South: get(coord.X, coord.Z-1),
		East:  get(coord.X+1, coord.Z),
		West:  get(coord.X-1, coord.Z),
	}
}

func (n Neighbors) each(fn func(*chunk.Chunk)) {
	for _, c := range [...]*chunk.Chunk{n.North, n.South, n.East, n.West} {
		if c != nil {
			fn(c)
		}
	}
}

// resolve returns the code of local cell (x, y, z) of c, reading across the
// chunk edge into a neighbour when x or z is one step outside.
//
// Above and below the chunk is always air: the world has a hard floor and ceiling.
// Stepping outside on both horizontal axes at once is never needed by the
// mesher and panics.
func (n Neighbors) resolve(c *chunk.Chunk, x, y, z int) uint8 {
	d := c.Dims()
	if y < 0 || y >= d.Y {
		return 0
	}

	outX := x < 0 || x >= d.X
	outZ := z < 0 || z >= d.Z
	if outX && outZ {
		panic("mesh: diagonal neighbour lookup")
	}

	var other *chunk.Chunk
	switch {
	case x >= d.X:
		other, x = n.East, 0
	case x < 0:
		other, x = n.West, d.X-1
	case z >= d.Z:
		other, z = n.North, 0
	case z < 0:
		other, z = n.South, d.Z-1
	default:
		return c.Get(x, y, z)
	}

	if other == nil {
		return 0
	}
	return other.Get(x, y, z)
}
