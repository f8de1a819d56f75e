package world

import "voxplace/internal/chunk"

// Locate splits a world cell position into its chunk coordinate and the
// local position inside that chunk.
func (r *Registry) Locate(wx, wz int) (coord chunk.Coord, lx, lz int) {
	coord = chunk.Coord{X: floorDiv(wx, r.dims.X), Z: floorDiv(wz, r.dims.Z)}
	return coord, wx - coord.X*r.dims.X, wz - coord.Z*r.dims.Z
}

// Block returns the code at a world position, 0 where there is no chunk.
func (r *Registry) Block(wx, y, wz int) uint8 {
	coord, lx, lz := r.Locate(wx, wz)
	c, ok := r.Chunk(coord)
	if !ok {
		return 0
	}
	return c.Get(lx, y, lz)
}

// SetBlock writes a code at a world position. It reports false when no
// chunk covers the position or the chunk refuses the write. A write on a
// chunk edge also marks the neighbour across that edge for remeshing.
func (r *Registry) SetBlock(wx, y, wz int, code uint8) bool {
	coord, lx, lz := r.Locate(wx, wz)
	c, ok := r.Chunk(coord)
	if !ok || !c.Set(lx, y, lz, code) {
		return false
	}

	mark := func(dx, dz int) {
		n := chunk.Coord{X: coord.X + dx, Z: coord.Z + dz}
		if _, ok := r.entries[n]; ok {
			r.stale[n] = true
		}
	}
	// A chunk one cell wide has both edges in the same column.
	if lx == 0 {
		mark(-1, 0)
	}
	if lx == r.dims.X-1 {
		mark(1, 0)
	}
	if lz == 0 {
		mark(0, -1)
	}
	if lz == r.dims.Z-1 {
		mark(0, 1)
	}
	return true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
