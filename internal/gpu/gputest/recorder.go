// Package gputest provides an in-memory gpu.Device that tracks live
// resources and draw calls, for tests that run without a graphics context.
package gputest

import (
	"errors"

	"voxplace/internal/gpu"
)

var ErrInjected = errors.New("gputest: injected upload failure")

// Draw is one recorded draw call.
type Draw struct {
	Faces    gpu.FaceBuffer
	Vertices gpu.VertexBuffer
	Count    int32
}

// Recorder is a fake gpu.Device. Object names are handed out from a
// counter starting at 1, never reused, like a real driver.
type Recorder struct {
	next uint32

	// live maps every allocated object name to its payload size in bytes.
	live     map[uint32]int
	released map[uint32]bool

	Uploads int
	Draws   []Draw

	// FailNext makes the next upload fail without allocating anything.
	FailNext bool
}

func New() *Recorder {
	return &Recorder{
		live:     make(map[uint32]int),
		released: make(map[uint32]bool),
	}
}

func (r *Recorder) alloc(size int) uint32 {
	r.next++
	r.live[r.next] = size
	return r.next
}

func (r *Recorder) free(name uint32) {
	if name == 0 {
		return
	}
	if _, ok := r.live[name]; !ok {
		if r.released[name] {
			panic("gputest: double release")
		}
		panic("gputest: release of unknown object")
	}
	delete(r.live, name)
	r.released[name] = true
}

// Live returns the number of GPU objects currently allocated.
func (r *Recorder) Live() int { return len(r.live) }

// LiveBytes returns the payload size of every live data buffer.
func (r *Recorder) LiveBytes() int {
	n := 0
	for _, size := range r.live {
		n += size
	}
	return n
}

func (r *Recorder) UploadFaces(words []uint32) (gpu.FaceBuffer, error) {
	if r.FailNext {
		r.FailNext = false
		return gpu.FaceBuffer{}, ErrInjected
	}
	r.Uploads++
	return gpu.FaceBuffer{
		Buffer:  r.alloc(4 * len(words)),
		Texture: r.alloc(0),
		VAO:     r.alloc(0),
	}, nil
}

func (r *Recorder) ReleaseFaces(b gpu.FaceBuffer) {
	r.free(b.Buffer)
	r.free(b.Texture)
	r.free(b.VAO)
}

func (r *Recorder) DrawFaces(b gpu.FaceBuffer, vertices int32) {
	r.Draws = append(r.Draws, Draw{Faces: b, Count: vertices})
}

func (r *Recorder) UploadVertices(verts []float32, indices []uint32) (gpu.VertexBuffer, error) {
	if r.FailNext {
		r.FailNext = false
		return gpu.VertexBuffer{}, ErrInjected
	}
	r.Uploads++
	return gpu.VertexBuffer{
		VBO: r.alloc(4 * len(verts)),
		EBO: r.alloc(4 * len(indices)),
		VAO: r.alloc(0),
	}, nil
}

func (r *Recorder) ReleaseVertices(b gpu.VertexBuffer) {
	r.free(b.VBO)
	r.free(b.EBO)
	r.free(b.VAO)
}

func (r *Recorder) DrawIndexed(b gpu.VertexBuffer, indices int32) {
	r.Draws = append(r.Draws, Draw{Vertices: b, Count: indices})
}

var _ gpu.Device = (*Recorder)(nil)
