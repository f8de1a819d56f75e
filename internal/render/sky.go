package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Sky colours at the horizon and straight up.
var (
	SkyHorizon = mgl32.Vec3{0.78, 0.87, 0.96}
	SkyZenith  = mgl32.Vec3{0.32, 0.55, 0.90}
)

// skyCube is a unit cube of 36 positions, wound counter-clockwise from outside.
var skyCube = []float32{
	// +X
	1, -1, -1, 1, 1, -1, 1, 1, 1,
	1, -1, -1, 1, 1, 1, 1, -1, 1,
	// -X
	-1, -1, -1, -1, -1, 1, -1, 1, 1,
	-1, -1, -1, -1, 1, 1, -1, 1, -1,
	// +Y
	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	-1, 1, -1, 1, 1, 1, -1, 1, 1,
	// -Y
	-1, -1, -1, -1, -1, 1, 1, -1, 1,
	-1, -1, -1, 1, -1, 1, 1, -1, -1,
	// +Z
	-1, -1, 1, 1, -1, 1, 1, 1, 1,
	-1, -1, 1, 1, 1, 1, -1, 1, 1,
	// -Z
	-1, -1, -1, 1, -1, -1, 1, 1, -1,
	-1, -1, -1, 1, 1, -1, -1, 1, -1,
}

// Sky draws a gradient cube around the camera, behind all geometry.
type Sky struct {
	prog     *Program
	vao, vbo uint32
}

func NewSky() (*Sky, error) {
	prog, err := NewProgram("sky.vert", "sky.frag")
	if err != nil {
		return nil, err
	}
	s := &Sky{prog: prog}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyCube)*4, gl.Ptr(skyCube), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	prog.Use()
	prog.SetVec3("horizon", SkyHorizon)
	prog.SetVec3("zenith", SkyZenith)
	return s, nil
}

// Draw must use the same projection and view as the world pass.
func (s *Sky) Draw(projection, view mgl32.Mat4) {
	// draw at the far plane without writing depth, from inside the cube
	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	s.prog.Use()
	s.prog.SetMat4("projection", projection)
	s.prog.SetMat4("view", view)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(skyCube)/3))
	gl.BindVertexArray(0)

	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
}

func (s *Sky) Delete() {
	gl.DeleteBuffers(1, &s.vbo)
	gl.DeleteVertexArrays(1, &s.vao)
	s.prog.Delete()
}
