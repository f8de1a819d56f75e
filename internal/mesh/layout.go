package mesh

import (
	"errors"
	"fmt"
	"math/bits"

	"voxplace/internal/chunk"
)

// WordBits is the width of a packed face record.
const WordBits = 32

// DirectionBits is the width of the direction field.
const DirectionBits = 3

var ErrLayoutOverflow = errors.New("mesh: packed face fields do not fit in 32 bits")

// Face is one packed face record as consumed by the chunk shader.
//
// Fields from bit 0 upwards: X, Y, Z, direction, material. Their widths
// come from the Layout that produced the record.
type Face uint32

// Field is one bit range of a packed face.
type Field struct {
	Shift uint32
	Bits  uint32
}

func (f Field) Mask() uint32 {
	return (1 << f.Bits) - 1
}

// Layout describes how a chunk configuration maps onto packed faces.
// It is only built through NewLayout, so a Layout in hand always fits.
type Layout struct {
	Dims        chunk.Dims
	MaxMaterial uint8

	X, Y, Z   Field
	Direction Field
	Material  Field
}

// bitsFor returns ceil(log2(n)), the bits needed to store 0..n-1.
func bitsFor(n int) uint32 {
	if n <= 1 {
		return 0
	}
	return uint32(bits.Len(uint(n - 1)))
}

// NewLayout derives the field widths for dims and checks that every cell
// coordinate, every direction and every material up to maxMaterial can be
// stored without truncation.
func NewLayout(dims chunk.Dims, maxMaterial uint8) (Layout, error) {
	if err := dims.Validate(); err != nil {
		return Layout{}, err
	}

	l := Layout{Dims: dims, MaxMaterial: maxMaterial}
	l.X = Field{Shift: 0, Bits: bitsFor(dims.X)}
	l.Y = Field{Shift: l.X.Bits, Bits: bitsFor(dims.Y)}
	l.Z = Field{Shift: l.Y.Shift + l.Y.Bits, Bits: bitsFor(dims.Z)}
	l.Direction = Field{Shift: l.Z.Shift + l.Z.Bits, Bits: DirectionBits}

	used := l.Direction.Shift + l.Direction.Bits
	if used > WordBits {
		return Layout{}, fmt.Errorf("%w: %dx%dx%d needs %d position+direction bits",
			ErrLayoutOverflow, dims.X, dims.Y, dims.Z, used)
	}
	l.Material = Field{Shift: used, Bits: WordBits - used}

	need := uint32(bits.Len8(maxMaterial))
	if need > l.Material.Bits {
		return Layout{}, fmt.Errorf("%w: material %d needs %d bits, %d left",
			ErrLayoutOverflow, maxMaterial, need, l.Material.Bits)
	}
	return l, nil
}

// Encode packs one face. Callers must pass in-range values; the mesher
// guarantees that for everything it emits.
func (l Layout) Encode(x, y, z int, dir Direction, material uint8) Face {
	return Face(uint32(x)<<l.X.Shift |
		uint32(y)<<l.Y.Shift |
		uint32(z)<<l.Z.Shift |
		uint32(dir)<<l.Direction.Shift |
		uint32(material)<<l.Material.Shift)
}

// Decode is the inverse of Encode.
func (l Layout) Decode(f Face) (x, y, z int, dir Direction, material uint8) {
	w := uint32(f)
	x = int(w >> l.X.Shift & l.X.Mask())
	y = int(w >> l.Y.Shift & l.Y.Mask())
	z = int(w >> l.Z.Shift & l.Z.Mask())
	dir = Direction(w >> l.Direction.Shift & l.Direction.Mask())
	material = uint8(w >> l.Material.Shift & l.Material.Mask())
	return
}

// Words reinterprets a face list as the raw words uploaded to the GPU.
func Words(faces []Face) []uint32 {
	words := make([]uint32, len(faces))
	for i, f := range faces {
		words[i] = uint32(f)
	}
	return words
}
