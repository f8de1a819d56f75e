package world

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxplace/internal/chunk"
	"voxplace/internal/gpu"
	"voxplace/internal/gpu/gputest"
	"voxplace/internal/mesh"
)

var testDims = chunk.Dims{X: 4, Y: 4, Z: 4}

func newTestRegistry(t *testing.T, maxMaterial uint8) (*Registry, *gputest.Recorder) {
	t.Helper()
	layout, err := mesh.NewLayout(testDims, maxMaterial)
	require.NoError(t, err)

	dev := gputest.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := New(mesh.NewMesher(layout), chunk.DefaultBedrock, func() gpu.Mesh { return gpu.NewHandle(dev) }, log)
	return r, dev
}

func faces(t *testing.T, r *Registry, c chunk.Coord) int {
	t.Helper()
	e, ok := r.Get(c)
	require.True(t, ok, "chunk %s", c)
	return e.Mesh.Faces()
}

func TestCreateRejectsDuplicate(t *testing.T) {
	r, _ := newTestRegistry(t, 255)

	c, err := r.Create(chunk.Coord{X: 1, Z: -2})
	require.NoError(t, err)
	assert.Equal(t, chunk.Coord{X: 1, Z: -2}, c.Coord())
	assert.Equal(t, chunk.DefaultBedrock, c.Get(0, chunk.BedrockLayer, 0))

	_, err = r.Create(chunk.Coord{X: 1, Z: -2})
	assert.ErrorIs(t, err, ErrExists)
	assert.Equal(t, 1, r.Len())
}

func TestChunkLookupAbsent(t *testing.T) {
	r, _ := newTestRegistry(t, 255)
	_, err := r.Create(chunk.Coord{})
	require.NoError(t, err)

	c, ok := r.Chunk(chunk.Coord{X: 5})
	assert.False(t, ok)
	assert.Nil(t, c)

	n := mesh.NeighborsOf(r, chunk.Coord{X: 1})
	assert.NotNil(t, n.West)
	assert.Nil(t, n.East)
	assert.Nil(t, n.North)
	assert.Nil(t, n.South)
}

func TestMeshAllCullsSharedEdges(t *testing.T) {
	r, dev := newTestRegistry(t, 255)
	for _, c := range []chunk.Coord{{X: 0}, {X: 1}} {
		_, err := r.Create(c)
		require.NoError(t, err)
	}

	require.NoError(t, r.MeshAll())

	// A 4x4 bedrock slab alone has 16 top, 16 bottom and 16 side faces.
	// The shared edge hides 4 side faces on each chunk.
	assert.Equal(t, 44, faces(t, r, chunk.Coord{X: 0}))
	assert.Equal(t, 44, faces(t, r, chunk.Coord{X: 1}))
	assert.Equal(t, 6, dev.Live())

	n, err := r.RemeshDirty()
	require.NoError(t, err)
	assert.Zero(t, n, "nothing changed since MeshAll")
}

func TestCreateAndDestroyRemeshNeighbors(t *testing.T) {
	r, dev := newTestRegistry(t, 255)
	_, err := r.Create(chunk.Coord{})
	require.NoError(t, err)
	require.NoError(t, r.MeshAll())
	assert.Equal(t, 48, faces(t, r, chunk.Coord{}))

	_, err = r.Create(chunk.Coord{Z: 1})
	require.NoError(t, err)
	n, err := r.RemeshDirty()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 44, faces(t, r, chunk.Coord{}))

	assert.True(t, r.Destroy(chunk.Coord{Z: 1}))
	assert.False(t, r.Destroy(chunk.Coord{Z: 1}))
	assert.Equal(t, 3, dev.Live(), "destroyed chunk's buffers are released")

	n, err = r.RemeshDirty()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 48, faces(t, r, chunk.Coord{}))
}

func TestSetBlockOnEdgeMarksNeighbor(t *testing.T) {
	r, _ := newTestRegistry(t, 255)
	for _, c := range []chunk.Coord{{X: 0}, {X: 1}} {
		_, err := r.Create(c)
		require.NoError(t, err)
	}
	require.NoError(t, r.MeshAll())

	// x=3 is the east column of chunk (0,0).
	require.True(t, r.SetBlock(3, 1, 1, 7))
	n, err := r.RemeshDirty()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Interior write touches only its own chunk.
	require.True(t, r.SetBlock(5, 1, 1, 7))
	n, err = r.RemeshDirty()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.False(t, r.SetBlock(100, 1, 1, 7), "no chunk there")
	assert.False(t, r.SetBlock(0, chunk.BedrockLayer, 0, 0), "bedrock cannot be cleared")
	assert.Equal(t, uint8(7), r.Block(5, 1, 1))
	assert.Zero(t, r.Block(-1, 1, 1))
}

func TestLocate(t *testing.T) {
	r, _ := newTestRegistry(t, 255)

	tests := []struct {
		wx, wz int
		coord  chunk.Coord
		lx, lz int
	}{
		{0, 0, chunk.Coord{}, 0, 0},
		{3, 4, chunk.Coord{X: 0, Z: 1}, 3, 0},
		{-1, -5, chunk.Coord{X: -1, Z: -2}, 3, 3},
		{-4, 9, chunk.Coord{X: -1, Z: 2}, 0, 1},
	}
	for _, tt := range tests {
		coord, lx, lz := r.Locate(tt.wx, tt.wz)
		assert.Equal(t, tt.coord, coord, "Locate(%d, %d)", tt.wx, tt.wz)
		assert.Equal(t, tt.lx, lx, "Locate(%d, %d) x", tt.wx, tt.wz)
		assert.Equal(t, tt.lz, lz, "Locate(%d, %d) z", tt.wx, tt.wz)
	}
}

func TestRemeshCyclesHoldOneBuffer(t *testing.T) {
	r, dev := newTestRegistry(t, 255)
	_, err := r.Create(chunk.Coord{})
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		require.True(t, r.SetBlock(i%4, 1+i%3, (i/4)%4, uint8(1+i%200)))
		n, err := r.RemeshDirty()
		require.NoError(t, err)
		require.Equal(t, 1, n)
		assert.LessOrEqual(t, dev.Live(), 3, "cycle %d", i)
	}

	r.Release()
	assert.Zero(t, dev.Live())
}

func TestRemeshErrorKeepsChunkDirty(t *testing.T) {
	r, _ := newTestRegistry(t, 31)
	c, err := r.Create(chunk.Coord{})
	require.NoError(t, err)
	require.NoError(t, r.MeshAll())

	require.True(t, r.SetBlock(1, 1, 1, 40))
	n, err := r.RemeshDirty()
	assert.ErrorIs(t, err, mesh.ErrMaterialOverflow)
	assert.Zero(t, n)
	assert.True(t, c.Dirty())
	assert.Equal(t, 48, faces(t, r, chunk.Coord{}), "previous mesh stays uploaded")

	assert.ErrorIs(t, r.Remesh(chunk.Coord{X: 9}), ErrNotFound)
}

func TestRemeshRetriesFailedUpload(t *testing.T) {
	r, dev := newTestRegistry(t, 255)
	c, err := r.Create(chunk.Coord{})
	require.NoError(t, err)
	require.NoError(t, r.MeshAll())

	require.True(t, r.SetBlock(1, 1, 1, 7))
	dev.FailNext = true
	n, err := r.RemeshDirty()
	assert.ErrorIs(t, err, gputest.ErrInjected)
	assert.Zero(t, n)
	assert.Zero(t, faces(t, r, chunk.Coord{}), "failed upload leaves the handle empty")

	n, err = r.RemeshDirty()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, c.Dirty())
	// Bedrock slab plus a cube resting on it: 48 + 6 - 2 hidden = 52.
	assert.Equal(t, 52, faces(t, r, chunk.Coord{}))

	n, err = r.RemeshDirty()
	require.NoError(t, err)
	assert.Zero(t, n, "nothing left pending")
}

func TestSetBlockOnNarrowChunkMarksBothNeighbors(t *testing.T) {
	layout, err := mesh.NewLayout(chunk.Dims{X: 1, Y: 4, Z: 1}, 255)
	require.NoError(t, err)
	dev := gputest.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := New(mesh.NewMesher(layout), chunk.DefaultBedrock, func() gpu.Mesh { return gpu.NewHandle(dev) }, log)

	for _, c := range []chunk.Coord{{}, {X: -1}, {X: 1}, {Z: -1}, {Z: 1}} {
		_, err := r.Create(c)
		require.NoError(t, err)
	}
	require.NoError(t, r.MeshAll())

	require.True(t, r.SetBlock(0, 1, 0, 7))
	n, err := r.RemeshDirty()
	require.NoError(t, err)
	assert.Equal(t, 5, n, "the chunk and all four neighbours")
}

func TestCoordsSorted(t *testing.T) {
	r, _ := newTestRegistry(t, 255)
	for _, c := range []chunk.Coord{{X: 1, Z: 0}, {X: -1, Z: 2}, {X: 0, Z: 0}, {X: -1, Z: -3}} {
		_, err := r.Create(c)
		require.NoError(t, err)
	}

	want := []chunk.Coord{{X: -1, Z: -3}, {X: -1, Z: 2}, {X: 0, Z: 0}, {X: 1, Z: 0}}
	if diff := cmp.Diff(want, r.Coords()); diff != "" {
		t.Errorf("Coords() mismatch (-want +got):\n%s", diff)
	}

	var seen []chunk.Coord
	r.Each(func(e *Entry) { seen = append(seen, e.Chunk.Coord()) })
	assert.Equal(t, want, seen)
}
