package gpu_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxplace/internal/chunk"
	"voxplace/internal/gpu"
	"voxplace/internal/gpu/gputest"
	"voxplace/internal/mesh"
)

var dims = chunk.Dims{X: 4, Y: 8, Z: 4}

func layout(t *testing.T) mesh.Layout {
	t.Helper()
	l, err := mesh.NewLayout(dims, 255)
	require.NoError(t, err)
	return l
}

func faces(l mesh.Layout, n int) []mesh.Face {
	out := make([]mesh.Face, n)
	for i := range out {
		out[i] = l.Encode(i%dims.X, 1, 0, mesh.Top, 3)
	}
	return out
}

func TestHandleEmptyUploadIsInert(t *testing.T) {
	dev := gputest.New()
	h := gpu.NewHandle(dev)

	require.NoError(t, h.Upload(nil))
	h.Render()

	assert.Zero(t, h.Faces())
	assert.Zero(t, dev.Live())
	assert.Zero(t, dev.Uploads)
	assert.Empty(t, dev.Draws, "render of an empty handle must not draw")
}

func TestHandleRenderDrawsSixVerticesPerFace(t *testing.T) {
	dev := gputest.New()
	h := gpu.NewHandle(dev)

	require.NoError(t, h.Upload(faces(layout(t), 5)))
	h.Render()

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, int32(30), dev.Draws[0].Count)
	assert.Equal(t, 5, h.Faces())
	assert.Equal(t, 30, h.Vertices())
	assert.Equal(t, 20, h.VRAMBytes())
	assert.Equal(t, 20, dev.LiveBytes())
}

func TestHandleReuploadDoesNotLeak(t *testing.T) {
	dev := gputest.New()
	h := gpu.NewHandle(dev)
	l := layout(t)

	for i := 1; i <= 50; i++ {
		require.NoError(t, h.Upload(faces(l, i)))
		assert.Equal(t, 3, dev.Live(), "cycle %d: one buffer, one texture, one VAO", i)
		assert.Equal(t, 4*i, dev.LiveBytes())
	}

	require.NoError(t, h.Upload(nil))
	assert.Zero(t, dev.Live(), "emptying a handle releases its buffer")

	require.NoError(t, h.Upload(faces(l, 3)))
	h.Release()
	h.Release()
	assert.Zero(t, dev.Live())
	assert.Zero(t, h.Faces())
}

func TestHandleUploadFailureLeavesEmpty(t *testing.T) {
	dev := gputest.New()
	h := gpu.NewHandle(dev)
	l := layout(t)

	require.NoError(t, h.Upload(faces(l, 4)))
	dev.FailNext = true
	err := h.Upload(faces(l, 2))
	assert.ErrorIs(t, err, gputest.ErrInjected)

	assert.Zero(t, h.Faces())
	assert.Zero(t, dev.Live(), "the old buffer is released before the failed upload")
	h.Render()
	assert.Empty(t, dev.Draws)
}

func TestHandleRenderDoesNotRegenerate(t *testing.T) {
	dev := gputest.New()
	h := gpu.NewHandle(dev)
	l := layout(t)
	m := mesh.NewMesher(l)

	c, err := chunk.New(chunk.Coord{}, dims, chunk.DefaultBedrock)
	require.NoError(t, err)
	f, err := m.Generate(c, mesh.Neighbors{})
	require.NoError(t, err)
	require.NoError(t, h.Upload(f))
	before := h.Faces()

	require.True(t, c.Set(1, 4, 1, 7))
	h.Render()
	assert.True(t, c.Dirty())
	assert.Equal(t, before, h.Faces())
	assert.Equal(t, int32(before*mesh.VerticesPerFace), dev.Draws[0].Count)
}

type flat struct{}

func (flat) RGB(uint8) mgl32.Vec3 { return mgl32.Vec3{1, 0, 0} }

func TestVertexHandle(t *testing.T) {
	dev := gputest.New()
	l := layout(t)
	h := gpu.NewVertexHandle(dev, l, flat{})

	require.NoError(t, h.Upload(faces(l, 3)))
	assert.Equal(t, 3, h.Faces())
	assert.Equal(t, 3, dev.Live())
	assert.Equal(t, (3*4*mesh.FloatsPerVertex+3*6)*4, h.VRAMBytes())

	h.Render()
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, int32(18), dev.Draws[0].Count)

	require.NoError(t, h.Upload(faces(l, 1)))
	assert.Equal(t, 3, dev.Live())
	require.NoError(t, h.Upload(nil))
	assert.Zero(t, dev.Live())
	h.Render()
	assert.Len(t, dev.Draws, 1)
}
