package glview

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/render"
)

const (
	revealVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    uniform mat4 u_transform;
    varying vec2 v_texcoord;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
      v_texcoord = a_position;
    }` + "\x00"
	revealFragmentShader = `
    precision highp float;
    uniform sampler2D u_tex;
    uniform vec3 u_circle;
    varying vec2 v_texcoord;
    void main(void) {
      if (distance(gl_FragCoord.xy, u_circle.xy) > u_circle.z) {
        discard;
      }
      gl_FragColor = texture2D(u_tex, v_texcoord);
    }` + "\x00"
)

// quad covers the unit square; row 0 of a canvas is its top edge.
var quad = [...]float32{
	0, 0,
	0, 1,
	1, 1,
	1, 1,
	1, 0,
	0, 0,
}

// Backend composites screen layers on the GL default framebuffer. It must
// be created and used on the thread that owns the GL context.
type Backend struct {
	program     *Program
	a_position  int32
	u_transform int32
	u_tex       int32
	u_circle    int32
	transform   mgl.Mat4
	layers      int
}

var _ render.Backend = (*Backend)(nil)

func NewBackend() (*Backend, error) {
	program, err := CreateProgram(revealVertexShader, revealFragmentShader)
	if err != nil {
		return nil, err
	}
	return &Backend{
		program:     program,
		a_position:  program.Attrib("a_position"),
		u_transform: program.Uniform("u_transform"),
		u_tex:       program.Uniform("u_tex"),
		u_circle:    program.Uniform("u_circle"),
		transform:   quadTransform(),
	}, nil
}

// quadTransform maps the unit square, y down, onto clip space.
func quadTransform() mgl.Mat4 {
	return mgl.Translate3D(-1, 1, 0).Mul4(mgl.Scale3D(2, -2, 1))
}

func (b *Backend) BeginFrame(width, height int) error {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

func (b *Backend) NewLayer(width, height int) (render.Layer, error) {
	tex, err := CreateTexture()
	if err != nil {
		return nil, err
	}
	b.layers++
	return &layer{backend: b, tex: tex}, nil
}

func (b *Backend) Close() error {
	if b.layers > 0 {
		return fmt.Errorf("%d layers still open", b.layers)
	}
	return b.program.Close()
}

type layer struct {
	backend *Backend
	tex     *Texture
}

func (l *layer) Composite(src *gg.Pixmap, reveal render.Reveal) error {
	if reveal.R <= 0 {
		return nil
	}
	w, h := src.Width(), src.Height()
	l.tex.Upload(w, h, src.Data())

	b := l.backend
	b.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	l.tex.Bind()
	gl.Uniform1i(b.u_tex, 0)
	gl.UniformMatrix4fv(b.u_transform, 1, false, &b.transform[0])
	// gl_FragCoord has its origin at the bottom-left, like the reveal.
	fw := float32(w)
	gl.Uniform3f(b.u_circle, float32(reveal.X)*fw, float32(reveal.Y)*fw, float32(reveal.R)*fw)

	gl.EnableVertexAttribArray(uint32(b.a_position))
	gl.VertexAttribPointer(
		uint32(b.a_position), 2, gl.FLOAT, false,
		int32(2*unsafe.Sizeof(float32(0))),
		gl.Ptr(&quad[0]))
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(quad)/2))
	gl.Disable(gl.BLEND)
	gl.DisableVertexAttribArray(uint32(b.a_position))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// Resize drops the texture storage; the next Composite reallocates it.
func (l *layer) Resize(width, height int) error {
	l.tex.width, l.tex.height = 0, 0
	return nil
}

func (l *layer) Close() error {
	if l.tex == nil {
		return nil
	}
	err := l.tex.Close()
	l.tex = nil
	l.backend.layers--
	return err
}
