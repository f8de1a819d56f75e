package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"voxplace/internal/mesh"
)

// GLDevice implements Device on an OpenGL 4.1 core context. gl.Init must
// have been called on the current thread.
//
// 4.1 core has no shader storage buffers, so packed faces live in a buffer
// texture the vertex shader reads with texelFetch(usamplerBuffer, gl_VertexID/6).
type GLDevice struct {
	// FaceUnit is the texture unit the face buffer texture is bound to.
	FaceUnit uint32
}

func checkGL(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%w: %s: 0x%x", ErrGL, op, code)
	}
	return nil
}

func (d *GLDevice) UploadFaces(words []uint32) (FaceBuffer, error) {
	var b FaceBuffer

	gl.GenBuffers(1, &b.Buffer)
	gl.BindBuffer(gl.TEXTURE_BUFFER, b.Buffer)
	gl.BufferData(gl.TEXTURE_BUFFER, 4*len(words), gl.Ptr(words), gl.STATIC_DRAW)

	gl.GenTextures(1, &b.Texture)
	gl.BindTexture(gl.TEXTURE_BUFFER, b.Texture)
	gl.TexBuffer(gl.TEXTURE_BUFFER, gl.R32UI, b.Buffer)

	// core profile refuses to draw without a bound VAO, even an empty one
	gl.GenVertexArrays(1, &b.VAO)

	gl.BindTexture(gl.TEXTURE_BUFFER, 0)
	gl.BindBuffer(gl.TEXTURE_BUFFER, 0)

	if err := checkGL("upload faces"); err != nil {
		d.ReleaseFaces(b)
		return FaceBuffer{}, err
	}
	return b, nil
}

func (d *GLDevice) ReleaseFaces(b FaceBuffer) {
	if b.Texture != 0 {
		gl.DeleteTextures(1, &b.Texture)
	}
	if b.Buffer != 0 {
		gl.DeleteBuffers(1, &b.Buffer)
	}
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
}

func (d *GLDevice) DrawFaces(b FaceBuffer, vertices int32) {
	gl.ActiveTexture(gl.TEXTURE0 + d.FaceUnit)
	gl.BindTexture(gl.TEXTURE_BUFFER, b.Texture)
	gl.BindVertexArray(b.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, vertices)
}

func (d *GLDevice) UploadVertices(verts []float32, indices []uint32) (VertexBuffer, error) {
	var b VertexBuffer

	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(verts), gl.Ptr(verts), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(indices), gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(mesh.FloatsPerVertex * 4)
	//position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	//colour
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(3*4))

	gl.BindVertexArray(0)

	if err := checkGL("upload vertices"); err != nil {
		d.ReleaseVertices(b)
		return VertexBuffer{}, err
	}
	return b, nil
}

func (d *GLDevice) ReleaseVertices(b VertexBuffer) {
	if b.EBO != 0 {
		gl.DeleteBuffers(1, &b.EBO)
	}
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
}

func (d *GLDevice) DrawIndexed(b VertexBuffer, indices int32) {
	gl.BindVertexArray(b.VAO)
	gl.DrawElements(gl.TRIANGLES, indices, gl.UNSIGNED_INT, nil)
}
