// Package glview is the OpenGL ES 2 side of panther: GPU layers for the
// screen targets, the reveal pass and the glfw window loop.
package glview

import (
	"fmt"

	gl "github.com/go-gl/gl/v3.1/gles2"
)

type Texture struct {
	tex           uint32
	width, height int
}

func (t *Texture) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
}

func CreateTexture() (*Texture, error) {
	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return nil, fmt.Errorf("glGenTextures returned no texture")
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	return &Texture{tex: tex}, nil
}

// Upload replaces the texture contents with RGBA pixels, reallocating the
// storage when the size changed.
func (t *Texture) Upload(width, height int, pix []uint8) {
	t.Bind()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if width != t.width || height != t.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
			int32(width), int32(height),
			0, gl.RGBA, gl.UNSIGNED_BYTE,
			gl.Ptr(pix))
		t.width, t.height = width, height
		return
	}
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
		int32(width), int32(height),
		gl.RGBA, gl.UNSIGNED_BYTE,
		gl.Ptr(pix))
}

func (t *Texture) Close() error {
	if t.tex != 0 {
		gl.DeleteTextures(1, &t.tex)
		t.tex = 0
	}
	return nil
}

// infoLog reads a shader or program log through the matching GL getters.
func infoLog(id uint32, iv func(uint32, uint32, *int32), read func(uint32, int32, *int32, *uint8)) string {
	var size int32
	iv(id, gl.INFO_LOG_LENGTH, &size)
	if size == 0 {
		return ""
	}
	buf := make([]uint8, size)
	var n int32
	read(id, size, &n, &buf[0])
	return string(buf[:n])
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	src, free := gl.Strs(source)
	defer free()
	n := int32(len(source))
	gl.ShaderSource(shader, 1, src, &n)
	gl.CompileShader(shader)
	var ok int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compiling shader: %s", msg)
	}
	return shader, nil
}

// Program is a linked GLSL program. Its shaders are released right after
// linking; attribute and uniform locations are looked up once.
type Program struct {
	program   uint32
	locations map[string]int32
}

func CreateProgram(vertexSource, fragmentSource string) (*Program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("linking program: %s", msg)
	}
	return &Program{program: program, locations: make(map[string]int32)}, nil
}

func (p *Program) location(name string, lookup func(uint32, *uint8) int32) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := lookup(p.program, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *Program) Attrib(name string) int32 {
	return p.location(name, gl.GetAttribLocation)
}

func (p *Program) Uniform(name string) int32 {
	return p.location(name, gl.GetUniformLocation)
}

func (p *Program) Use() {
	gl.UseProgram(p.program)
}

func (p *Program) Close() error {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
	return nil
}
