package render

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// hudQuad is a unit quad of position and uv, top-left origin.
var hudQuad = []float32{
	0, 1, 0, 0, 1,
	0, 0, 0, 0, 0,
	1, 0, 0, 1, 0,

	0, 1, 0, 0, 1,
	1, 0, 0, 1, 0,
	1, 1, 0, 1, 1,
}

// HUD shows an RGBA image, usually rasterised text, in the top-left corner
// of the screen.
type HUD struct {
	prog     *Program
	vao, vbo uint32
	texture  uint32
	size     image.Point
}

func NewHUD(size image.Point) (*HUD, error) {
	prog, err := NewProgram("hud.vert", "hud.frag")
	if err != nil {
		return nil, err
	}
	h := &HUD{prog: prog, size: size}

	gl.GenVertexArrays(1, &h.vao)
	gl.BindVertexArray(h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(hudQuad)*4, gl.Ptr(hudQuad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, uintptr(3*4))
	gl.BindVertexArray(0)

	gl.GenTextures(1, &h.texture)
	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	prog.Use()
	prog.SetInt("text", 0)
	return h, nil
}

// Update replaces the HUD texture contents. img must match the HUD size.
func (h *HUD) Update(img *image.RGBA) {
	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(h.size.X), int32(h.size.Y), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}

// Draw blends the HUD over the frame for a window of the given size in pixels.
func (h *HUD) Draw(width, height int) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	h.prog.Use()
	h.prog.SetMat4("projection", mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1))
	h.prog.SetMat4("model", mgl32.Translate3D(10, 10, 0).Mul4(mgl32.Scale3D(float32(h.size.X), float32(h.size.Y), 1)))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.BindVertexArray(h.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(hudQuad)/5))
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

func (h *HUD) Delete() {
	gl.DeleteTextures(1, &h.texture)
	gl.DeleteBuffers(1, &h.vbo)
	gl.DeleteVertexArrays(1, &h.vao)
	h.prog.Delete()
}
