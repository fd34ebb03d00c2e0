package ui

import (
	"strings"

	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/screen"
)

// view maps width units (origin bottom-left, y up) onto canvas pixels.
type view struct {
	c    *gg.Context
	w, h float64
}

func newView(c *gg.Context) view {
	return view{c: c, w: float64(c.Width()), h: float64(c.Height())}
}

func (v view) x(u float64) float64 { return u * v.w }
func (v view) y(u float64) float64 { return v.h - u*v.w }
func (v view) l(u float64) float64 { return u * v.w }

// top is the highest y in width units that is still on the canvas.
func (v view) top() float64 { return v.h / v.w }

func (v view) background(col gg.RGBA) {
	v.c.ClearWithColor(col)
}

// Rect is an axis-aligned box in width units.
type Rect struct {
	Left, Bottom, Width, Height float64
}

// Contains is strict on every edge.
func (r Rect) Contains(p screen.Point) bool {
	return p.X > r.Left && p.X < r.Left+r.Width && p.Y > r.Bottom && p.Y < r.Bottom+r.Height
}

func (r Rect) Offset(dy float64) Rect {
	r.Bottom += dy
	return r
}

type Panel struct {
	Rect   Rect
	Color  gg.RGBA
	Radius float64
}

func (p Panel) Draw(v view) {
	r := p.Rect
	v.c.ClearPath()
	v.c.SetRGBA(p.Color.R, p.Color.G, p.Color.B, p.Color.A)
	if p.Radius > 0 {
		v.c.DrawRoundedRectangle(v.x(r.Left), v.y(r.Bottom+r.Height), v.l(r.Width), v.l(r.Height), v.l(p.Radius))
	} else {
		v.c.DrawRectangle(v.x(r.Left), v.y(r.Bottom+r.Height), v.l(r.Width), v.l(r.Height))
	}
	_ = v.c.Fill()
}

// Label draws text with its first baseline at (X, Y). Size is the em size
// in width units; lines are separated by newlines.
type Label struct {
	Text  string
	X, Y  float64
	Size  float64
	Font  *Font
	Color gg.RGBA
}

func (l *Label) SetText(s string) {
	l.Text = s
}

func (l *Label) Draw(v view) {
	if l.Font == nil || l.Text == "" {
		return
	}
	size := v.l(l.Size)
	if size < 1 {
		return
	}
	v.c.SetFont(l.Font.Face(size))
	v.c.SetRGBA(l.Color.R, l.Color.G, l.Color.B, l.Color.A)
	for i, line := range strings.Split(l.Text, "\n") {
		v.c.DrawString(line, v.x(l.X), v.y(l.Y-float64(i)*l.Size*1.2))
	}
}

// Button is a panel with a centred caption that reacts to presses inside
// its rectangle.
type Button struct {
	Panel
	Caption Label
}

func (b *Button) Hit(p screen.Point) bool {
	return b.Rect.Contains(p)
}

func (b *Button) Draw(v view) {
	b.Panel.Draw(v)
	b.Caption.Draw(v)
}

var white = gg.RGB(1, 1, 1)

// navBar is the bottom navigation shared by the Stats and Records screens.
type navBar struct {
	home, records, stats Label
	highlight            int
}

const navHeight = 0.25

func newNavBar(f *Fonts, current screen.ID) *navBar {
	n := &navBar{
		home:    Label{Text: "Home", X: 0.2, Y: 0.068, Size: 0.045, Font: f.Label, Color: white},
		records: Label{Text: "Records", X: 0.44, Y: 0.068, Size: 0.045, Font: f.Label, Color: white},
		stats:   Label{Text: "Stats", X: 0.72, Y: 0.068, Size: 0.045, Font: f.Label, Color: white},
	}
	switch current {
	case screen.Records:
		n.highlight = 1
	case screen.Stats:
		n.highlight = 2
	}
	return n
}

// target maps a press onto the screen the bar links to. ok is false when
// the press is outside the bar.
func (n *navBar) target(p screen.Point) (id screen.ID, ok bool) {
	if p.Y >= navHeight {
		return "", false
	}
	switch {
	case p.X < 0.33:
		return screen.Home, true
	case p.X < 0.66:
		return screen.Records, true
	default:
		return screen.Stats, true
	}
}

func (n *navBar) Draw(v view) {
	Panel{Rect: Rect{0, 0, 1, navHeight}, Color: gg.RGBA2(0.05, 0.06, 0.1, 0.6)}.Draw(v)
	Panel{
		Rect:   Rect{Left: 0.05 + float64(n.highlight)*0.31, Bottom: 0.12, Width: 0.28, Height: 0.09},
		Color:  gg.RGBA2(1, 1, 1, 0.25),
		Radius: 0.03,
	}.Draw(v)
	n.home.Draw(v)
	n.records.Draw(v)
	n.stats.Draw(v)
}
