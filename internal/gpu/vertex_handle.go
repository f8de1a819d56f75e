package gpu

import (
	"fmt"

	"voxplace/internal/mesh"
)

// VertexHandle is the indexed-triangle counterpart of Handle, for renderers
// that draw expanded vertices instead of packed faces.
type VertexHandle struct {
	dev     Device
	layout  mesh.Layout
	colors  mesh.Colors
	buf     VertexBuffer
	floats  int
	indices int
}

func NewVertexHandle(dev Device, layout mesh.Layout, colors mesh.Colors) *VertexHandle {
	return &VertexHandle{dev: dev, layout: layout, colors: colors}
}

// Upload expands faces and replaces the handle's buffers with them.
func (h *VertexHandle) Upload(faces []mesh.Face) error {
	h.Release()
	if len(faces) == 0 {
		return nil
	}

	verts, indices := mesh.BuildVertices(faces, h.layout, h.colors)
	buf, err := h.dev.UploadVertices(verts, indices)
	if err != nil {
		return fmt.Errorf("upload %d vertices: %w", len(verts)/mesh.FloatsPerVertex, err)
	}
	h.buf = buf
	h.floats = len(verts)
	h.indices = len(indices)
	return nil
}

func (h *VertexHandle) Render() {
	if h.indices == 0 {
		return
	}
	h.dev.DrawIndexed(h.buf, int32(h.indices))
}

func (h *VertexHandle) Release() {
	if !h.buf.IsZero() {
		h.dev.ReleaseVertices(h.buf)
	}
	h.buf = VertexBuffer{}
	h.floats = 0
	h.indices = 0
}

func (h *VertexHandle) Faces() int { return h.indices / mesh.VerticesPerFace }

func (h *VertexHandle) VRAMBytes() int { return (h.floats + h.indices) * 4 }
