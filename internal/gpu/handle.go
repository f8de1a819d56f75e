package gpu

import (
	"fmt"

	"voxplace/internal/mesh"
)

// Handle owns the GPU copy of one chunk's packed faces.
// The zero value is not usable; create handles with NewHandle.
type Handle struct {
	dev   Device
	buf   FaceBuffer
	count int
}

func NewHandle(dev Device) *Handle {
	return &Handle{dev: dev}
}

// Upload replaces the handle's contents with faces. The previous buffer is
// always released first; an empty face list leaves the handle empty.
func (h *Handle) Upload(faces []mesh.Face) error {
	h.Release()
	if len(faces) == 0 {
		return nil
	}

	buf, err := h.dev.UploadFaces(mesh.Words(faces))
	if err != nil {
		return fmt.Errorf("upload %d faces: %w", len(faces), err)
	}
	h.buf = buf
	h.count = len(faces)
	return nil
}

// Render draws whatever was last uploaded. The chunk's world offset must
// already be bound by the caller.
func (h *Handle) Render() {
	if h.count == 0 {
		return
	}
	h.dev.DrawFaces(h.buf, int32(h.count*mesh.VerticesPerFace))
}

// Release frees the GPU buffer. It is safe to call more than once.
func (h *Handle) Release() {
	if !h.buf.IsZero() {
		h.dev.ReleaseFaces(h.buf)
	}
	h.buf = FaceBuffer{}
	h.count = 0
}

// Faces returns the number of faces currently uploaded.
func (h *Handle) Faces() int { return h.count }

// Vertices returns the number of vertices a Render call draws.
func (h *Handle) Vertices() int { return h.count * mesh.VerticesPerFace }

// VRAMBytes is the size of the uploaded face buffer.
func (h *Handle) VRAMBytes() int { return h.count * 4 }
