package gpu

import (
	"errors"

	"voxplace/internal/mesh"
)

var ErrGL = errors.New("gpu: graphics API error")

// FaceBuffer is a packed face buffer living on the GPU. The zero value owns nothing.
type FaceBuffer struct {
	VAO     uint32
	Buffer  uint32
	Texture uint32
}

func (b FaceBuffer) IsZero() bool { return b == FaceBuffer{} }

// VertexBuffer is an indexed triangle mesh living on the GPU.
type VertexBuffer struct {
	VAO uint32
	VBO uint32
	EBO uint32
}

func (b VertexBuffer) IsZero() bool { return b == VertexBuffer{} }

// Device is the slice of the graphics API the mesh handles need.
// All calls must happen on the thread that owns the context.
type Device interface {
	// UploadFaces copies packed face words into a new write-once buffer
	// readable by the chunk shader.
	UploadFaces(words []uint32) (FaceBuffer, error)
	ReleaseFaces(b FaceBuffer)
	// DrawFaces draws vertices vertices as triangles with the face buffer bound.
	DrawFaces(b FaceBuffer, vertices int32)

	UploadVertices(verts []float32, indices []uint32) (VertexBuffer, error)
	ReleaseVertices(b VertexBuffer)
	DrawIndexed(b VertexBuffer, indices int32)
}

// Mesh is a chunk's GPU-side mesh in either representation.
type Mesh interface {
	Upload(faces []mesh.Face) error
	Render()
	Release()
	Faces() int
	VRAMBytes() int
}

var (
	_ Mesh = (*Handle)(nil)
	_ Mesh = (*VertexHandle)(nil)
)
