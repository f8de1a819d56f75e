package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxplace/internal/chunk"
)

func TestLayoutMatchesClassicPacking(t *testing.T) {
	// 16x255x16 packs as x | y<<4 | z<<12 | dir<<16 | material<<19.
	l, err := NewLayout(chunk.Dims{X: 16, Y: 255, Z: 16}, 255)
	require.NoError(t, err)

	assert.Equal(t, Field{Shift: 0, Bits: 4}, l.X)
	assert.Equal(t, Field{Shift: 4, Bits: 8}, l.Y)
	assert.Equal(t, Field{Shift: 12, Bits: 4}, l.Z)
	assert.Equal(t, Field{Shift: 16, Bits: 3}, l.Direction)
	assert.Equal(t, Field{Shift: 19, Bits: 13}, l.Material)

	got := l.Encode(15, 200, 7, East, 29)
	want := Face(15 | 200<<4 | 7<<12 | 4<<16 | 29<<19)
	assert.Equal(t, want, got)
}

func TestLayoutFieldWidths(t *testing.T) {
	tests := []struct {
		dims       chunk.Dims
		x, y, z    uint32
		materialAt uint32
	}{
		{chunk.Dims{X: 1, Y: 1, Z: 1}, 0, 0, 0, 3},
		{chunk.Dims{X: 2, Y: 3, Z: 4}, 1, 2, 2, 8},
		{chunk.Dims{X: 32, Y: 256, Z: 32}, 5, 8, 5, 21},
		{chunk.Dims{X: 33, Y: 100, Z: 17}, 6, 7, 5, 21},
	}
	for _, tt := range tests {
		l, err := NewLayout(tt.dims, 255)
		require.NoError(t, err, "dims %v", tt.dims)
		assert.Equal(t, tt.x, l.X.Bits, "x bits for %v", tt.dims)
		assert.Equal(t, tt.y, l.Y.Bits, "y bits for %v", tt.dims)
		assert.Equal(t, tt.z, l.Z.Bits, "z bits for %v", tt.dims)
		assert.Equal(t, tt.materialAt, l.Material.Shift, "material shift for %v", tt.dims)
		assert.Equal(t, uint32(WordBits)-tt.materialAt, l.Material.Bits)
	}
}

func TestLayoutRejectsOverflow(t *testing.T) {
	// 2^10 * 2^10 * 2^10 needs 30 position bits plus 3 for direction.
	_, err := NewLayout(chunk.Dims{X: 1024, Y: 1024, Z: 1024}, 1)
	assert.ErrorIs(t, err, ErrLayoutOverflow)

	// Positions fit but only 4 material bits remain, too few for 255.
	_, err = NewLayout(chunk.Dims{X: 256, Y: 256, Z: 512}, 255)
	assert.ErrorIs(t, err, ErrLayoutOverflow)

	l, err := NewLayout(chunk.Dims{X: 256, Y: 256, Z: 512}, 15)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), l.Material.Bits)

	_, err = NewLayout(chunk.Dims{X: 0, Y: 1, Z: 1}, 1)
	assert.ErrorIs(t, err, chunk.ErrInvalidDims)
}

func TestEncodeDecodeFieldsStayIsolated(t *testing.T) {
	dims := chunk.Dims{X: 16, Y: 255, Z: 16}
	l, err := NewLayout(dims, 255)
	require.NoError(t, err)

	corners := [][3]int{{0, 0, 0}, {dims.X - 1, dims.Y - 1, dims.Z - 1}, {dims.X - 1, 0, dims.Z - 1}, {0, dims.Y - 1, 0}}
	for _, c := range corners {
		for _, dir := range Directions {
			for _, material := range []uint8{1, 29, 128, 255} {
				f := l.Encode(c[0], c[1], c[2], dir, material)
				x, y, z, gotDir, gotMaterial := l.Decode(f)
				if x != c[0] || y != c[1] || z != c[2] || gotDir != dir || gotMaterial != material {
					t.Errorf("Decode(Encode(%v, %s, %d)) = (%d,%d,%d, %s, %d)",
						c, dir, material, x, y, z, gotDir, gotMaterial)
				}
			}
		}
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []uint32{1, 2, 0xFFFFFFFF}, Words([]Face{1, 2, 0xFFFFFFFF}))
	assert.Empty(t, Words(nil))
}
