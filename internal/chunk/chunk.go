package chunk

import (
	"errors"
	"fmt"
)

// BedrockLayer is the bottom layer of every chunk. Cells on it can be
// repainted but never cleared back to air.
const BedrockLayer = 0

// DefaultBedrock is the material seeded into the bedrock layer.
const DefaultBedrock uint8 = 29

var ErrInvalidDims = errors.New("chunk: dimensions must be positive")

// Coord is a chunk position on the horizontal grid. The vertical axis is not chunked.
type Coord struct {
	X, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Dims is the size of a chunk in cells along each axis.
type Dims struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Volume returns the number of cells in a chunk of these dimensions.
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

func (d Dims) Validate() error {
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return fmt.Errorf("%w: got %dx%dx%d", ErrInvalidDims, d.X, d.Y, d.Z)
	}
	return nil
}

func (d Dims) contains(x, y, z int) bool {
	return x >= 0 && x < d.X && y >= 0 && y < d.Y && z >= 0 && z < d.Z
}

// Chunk is a dense block of 1-byte cell codes. 0 is air, any other value
// is an opaque material index.
type Chunk struct {
	coord Coord
	dims  Dims
	cells []uint8

	dirty bool
	empty bool
}

// New creates a chunk at coord with its bedrock layer filled with bedrock.
// Every other cell starts as air. A bedrock of 0 leaves the layer unseeded;
// it still cannot be cleared once painted.
func New(coord Coord, dims Dims, bedrock uint8) (*Chunk, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	c := &Chunk{
		coord: coord,
		dims:  dims,
		cells: make([]uint8, dims.Volume()),
		dirty: true,
		empty: true,
	}
	for x := 0; x < dims.X; x++ {
		for z := 0; z < dims.Z; z++ {
			i, _ := c.index(x, BedrockLayer, z)
			c.cells[i] = bedrock
		}
	}
	return c, nil
}

func (c *Chunk) Coord() Coord { return c.coord }
func (c *Chunk) Dims() Dims   { return c.dims }

// Dirty reports whether a cell changed since the last successful mesh.
func (c *Chunk) Dirty() bool { return c.dirty }

// Empty reports whether Set has never succeeded on this chunk.
func (c *Chunk) Empty() bool { return c.empty }

// MarkClean is called by the mesher once a mesh reflects the current cells.
func (c *Chunk) MarkClean() { c.dirty = false }

// index is the only place local coordinates become a slice offset.
// x is the outer axis and z the inner one, matching the mesher's walk order.
func (c *Chunk) index(x, y, z int) (int, bool) {
	if !c.dims.contains(x, y, z) {
		return 0, false
	}
	return x*c.dims.Y*c.dims.Z + y*c.dims.Z + z, true
}

// Get returns the cell code at local (x, y, z), or 0 if out of bounds.
func (c *Chunk) Get(x, y, z int) uint8 {
	i, ok := c.index(x, y, z)
	if !ok {
		return 0
	}
	return c.cells[i]
}

// Set overwrites the cell at local (x, y, z). It fails without touching the
// chunk when the position is out of bounds or when it would clear bedrock.
func (c *Chunk) Set(x, y, z int, code uint8) bool {
	i, ok := c.index(x, y, z)
	if !ok {
		return false
	}
	if y == BedrockLayer && code == 0 {
		return false
	}

	c.cells[i] = code
	c.dirty = true
	c.empty = false
	return true
}

// Height returns the highest non-air y in the column (x, z), or -1 when
// the column is out of bounds.
func (c *Chunk) Height(x, z int) int {
	for y := c.dims.Y - 1; y >= 0; y-- {
		if c.Get(x, y, z) != 0 {
			return y
		}
	}
	return -1
}
