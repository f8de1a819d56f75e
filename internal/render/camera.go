package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	nearClipPlane = 0.1
	farClipPlane  = 1000
	maxPitch      = 89
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is a free-flying first person camera. Yaw and pitch are in degrees;
// yaw -90 looks down -Z.
type Camera struct {
	Position    mgl32.Vec3
	Yaw, Pitch  float32
	FOV         float32
	Speed       float32
	Sensitivity float32

	front       mgl32.Vec3
	orientation mgl32.Vec3 // front flattened onto the ground plane
	right       mgl32.Vec3
	up          mgl32.Vec3
}

func NewCamera(position mgl32.Vec3, fov, speed, sensitivity float32) *Camera {
	c := &Camera{
		Position:    position,
		Yaw:         -90,
		FOV:         fov,
		Speed:       speed,
		Sensitivity: sensitivity,
	}
	c.update()
	return c
}

func (c *Camera) update() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.orientation = mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(math.Sin(yaw))}.Normalize()
	c.right = c.front.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// Look turns the camera by a mouse delta in pixels. Positive dy looks up.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+dy*c.Sensitivity, -maxPitch, maxPitch)
	c.update()
}

// Move flies the camera. forward, right and up are -1, 0 or 1 per axis;
// forward and right stay level regardless of pitch.
func (c *Camera) Move(forward, right, up float32, dt float32) {
	dir := c.orientation.Mul(forward).Add(c.right.Mul(right))
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	dir = dir.Add(worldUp.Mul(up))
	c.Position = c.Position.Add(dir.Mul(c.Speed * dt))
}

func (c *Camera) Front() mgl32.Vec3 { return c.front }

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, nearClipPlane, farClipPlane)
}
