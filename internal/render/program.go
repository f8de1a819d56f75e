// Package render draws the chunk registry with OpenGL 4.1 core.
// Everything here must run on the thread that owns the GL context.
package render

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders
var shaders embed.FS

var ErrShader = errors.New("render: shader build failed")

// Program is a linked shader program with cached uniform locations.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

func loadShader(name string, shaderType uint32) (uint32, error) {
	src, err := shaders.ReadFile("shaders/" + name)
	if err != nil {
		return 0, fmt.Errorf("read shader %s: %w", name, err)
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(string(src) + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: compile %s: %s", ErrShader, name, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// NewProgram compiles and links the named embedded shaders.
func NewProgram(vertexName, fragmentName string) (*Program, error) {
	vert, err := loadShader(vertexName, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vert)
	frag, err := loadShader(fragmentName, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DetachShader(prog, vert)
	gl.DetachShader(prog, frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("%w: link %s+%s: %s", ErrShader, vertexName, fragmentName, strings.TrimRight(log, "\x00"))
	}
	return &Program{id: prog, uniforms: make(map[string]int32)}, nil
}

func (p *Program) Use() { gl.UseProgram(p.id) }

func (p *Program) Delete() { gl.DeleteProgram(p.id) }

// Location returns the location of a uniform, -1 when the linker dropped it.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Location(name), 1, false, &m[0])
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.Location(name), v[0], v[1], v[2])
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Location(name), v)
}

// SetVec3s uploads a vec3 array; v holds three floats per element.
func (p *Program) SetVec3s(name string, v []float32) {
	gl.Uniform3fv(p.Location(name+"[0]"), int32(len(v)/3), &v[0])
}

func (p *Program) SetInts(name string, v []int32) {
	gl.Uniform1iv(p.Location(name+"[0]"), int32(len(v)), &v[0])
}

func (p *Program) SetUints(name string, v []uint32) {
	gl.Uniform1uiv(p.Location(name+"[0]"), int32(len(v)), &v[0])
}
