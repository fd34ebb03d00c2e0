package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Software composites layers on the CPU into an RGBA surface. It backs the
// snapshot command and the tests.
type Software struct {
	surface    *image.RGBA
	background color.RGBA
	layers     int
}

func NewSoftware(width, height int) (*Software, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &Software{
		surface:    image.NewRGBA(image.Rect(0, 0, width, height)),
		background: color.RGBA{A: 0xff},
	}, nil
}

// Surface is the composited frame.
func (s *Software) Surface() *image.RGBA {
	return s.surface
}

// Layers counts open layers.
func (s *Software) Layers() int {
	return s.layers
}

func (s *Software) BeginFrame(width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	if b := s.surface.Bounds(); b.Dx() != width || b.Dy() != height {
		s.surface = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	draw.Draw(s.surface, s.surface.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
	return nil
}

func (s *Software) NewLayer(width, height int) (Layer, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	s.layers++
	return &softwareLayer{owner: s, mask: gg.NewContext(width, height)}, nil
}

type softwareLayer struct {
	owner  *Software
	mask   *gg.Context
	closed bool
}

func (l *softwareLayer) Composite(src *gg.Pixmap, reveal Reveal) error {
	if reveal.R <= 0 {
		return nil
	}
	cx, cy, r := reveal.Pixels(src.Width(), src.Height())
	l.mask.ClearPath()
	l.mask.ClearWithColor(gg.Transparent)
	l.mask.DrawCircle(cx, cy, r)
	l.mask.SetRGBA(1, 1, 1, 1)
	if err := l.mask.Fill(); err != nil {
		return err
	}
	draw.DrawMask(l.owner.surface, src.Bounds(), src, image.Point{}, l.mask.ResizeTarget(), image.Point{}, draw.Over)
	return nil
}

func (l *softwareLayer) Resize(width, height int) error {
	return l.mask.Resize(width, height)
}

func (l *softwareLayer) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.owner.layers--
	return l.mask.Close()
}
