package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func vecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "want %v, got %v", want, got)
}

func TestCameraStartsLookingNorthward(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 10, 0}, 70, 10, 0.1)
	vecNear(t, mgl32.Vec3{0, 0, -1}, c.Front())
}

func TestCameraMoveStaysLevel(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 70, 2, 1)
	c.Look(0, 45)
	assert.InDelta(t, 45, c.Pitch, 1e-4)

	c.Move(1, 0, 0, 0.5)
	vecNear(t, mgl32.Vec3{0, 0, -1}, c.Position)

	c.Move(0, 1, 0, 0.5)
	vecNear(t, mgl32.Vec3{1, 0, -1}, c.Position)

	c.Move(0, 0, -1, 1)
	vecNear(t, mgl32.Vec3{1, -2, -1}, c.Position)
}

func TestCameraPitchClamped(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 70, 1, 1)
	c.Look(0, 500)
	assert.Equal(t, float32(maxPitch), c.Pitch)
	c.Look(0, -1000)
	assert.Equal(t, float32(-maxPitch), c.Pitch)
}

func TestCameraViewProjection(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 5}, 90, 1, 1)

	// A point straight ahead lands in the centre of clip space.
	clip := c.Projection(1).Mul4(c.View()).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1)
}

func TestChunkOrigin(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{-32, 0, 48}, chunkOrigin(-2, 3, 16, 16))
}
