package render

import (
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxplace/internal/mesh"
	"voxplace/internal/palette"
	"voxplace/internal/world"
)

// Texture units used by the chunk programs.
const (
	PaletteUnit = 0
	FaceUnit    = 1
)

// Options select how chunks are drawn.
type Options struct {
	// Packed draws gpu.Handle meshes with the packed face shader; otherwise
	// gpu.VertexHandle meshes are drawn with per-vertex colours.
	Packed  bool
	Layout  mesh.Layout
	Palette *palette.Palette
}

// Renderer draws every chunk of a registry for one camera.
type Renderer struct {
	log    *slog.Logger
	opts   Options
	prog   *Program
	palTex uint32
	sky    *Sky
}

func New(opts Options, log *slog.Logger) (*Renderer, error) {
	r := &Renderer{log: log, opts: opts}

	vert, frag := "vertex.vert", "vertex.frag"
	if opts.Packed {
		vert, frag = "chunk.vert", "chunk.frag"
	}
	prog, err := NewProgram(vert, frag)
	if err != nil {
		return nil, err
	}
	r.prog = prog

	if opts.Packed {
		r.setupPacked()
	}

	r.sky, err = NewSky()
	if err != nil {
		r.Delete()
		return nil, err
	}

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.DEPTH_TEST)

	log.Info("renderer ready", "vertex", vert, "fragment", frag)
	return r, nil
}

// setupPacked uploads the uniforms that never change for the packed path:
// the face layout, the cube corner table and the palette lookup texture.
func (r *Renderer) setupPacked() {
	l := r.opts.Layout
	fields := []mesh.Field{l.X, l.Y, l.Z, l.Direction, l.Material}
	shifts := make([]uint32, len(fields))
	masks := make([]uint32, len(fields))
	for i, f := range fields {
		shifts[i] = f.Shift
		masks[i] = f.Mask()
	}

	r.prog.Use()
	r.prog.SetUints("shifts", shifts)
	r.prog.SetUints("masks", masks)
	r.prog.SetVec3s("corners", mesh.CornerTable())
	r.prog.SetInts("quad", mesh.QuadOrder())
	r.prog.SetInt("palette", PaletteUnit)
	r.prog.SetInt("faces", FaceUnit)

	texels := r.opts.Palette.Texels()
	gl.GenTextures(1, &r.palTex)
	gl.ActiveTexture(gl.TEXTURE0 + PaletteUnit)
	gl.BindTexture(gl.TEXTURE_2D, r.palTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(len(texels)/4), 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(texels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// chunkOrigin is the world position of local cell (0, 0, 0) of chunk (cx, cz).
func chunkOrigin(cx, cz, sizeX, sizeZ int) mgl32.Vec3 {
	return mgl32.Vec3{float32(cx * sizeX), 0, float32(cz * sizeZ)}
}

// Draw clears the frame, draws the sky and then every chunk mesh of reg.
// Meshes are drawn as last uploaded; dirty chunks are not regenerated here.
func (r *Renderer) Draw(reg *world.Registry, cam *Camera, aspect float32) {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	projection := cam.Projection(aspect)
	view := cam.View()
	r.sky.Draw(projection, view)

	r.prog.Use()
	r.prog.SetMat4("projection", projection)
	r.prog.SetMat4("view", view)
	if r.opts.Packed {
		gl.ActiveTexture(gl.TEXTURE0 + PaletteUnit)
		gl.BindTexture(gl.TEXTURE_2D, r.palTex)
	}

	dims := reg.Dims()
	reg.Each(func(e *world.Entry) {
		if e.Mesh.Faces() == 0 {
			return
		}
		c := e.Chunk.Coord()
		r.prog.SetVec3("chunkPos", chunkOrigin(c.X, c.Z, dims.X, dims.Z))
		e.Mesh.Render()
	})
	gl.BindVertexArray(0)
}

func (r *Renderer) Delete() {
	if r.sky != nil {
		r.sky.Delete()
	}
	if r.palTex != 0 {
		gl.DeleteTextures(1, &r.palTex)
	}
	r.prog.Delete()
}
