// Package render owns the per-screen off-screen targets and the final
// composite pass that reveals them onto the visible surface.
package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gg"

	"github.com/skygrel/panther/internal/anim"
)

// ErrInvalidSize is returned when a target or surface is sized to zero or less.
var ErrInvalidSize = errors.New("render: invalid size")

// Reveal is a circle in width units. Y grows upwards from the bottom edge of
// the surface, so (0.5, 0) is the bottom centre whatever the aspect ratio.
type Reveal struct {
	X, Y, R float64
}

// Full covers any surface whose height is at most ten times its width.
var Full = Reveal{X: 0.5, Y: 0, R: 10}

// Pixels converts the reveal into surface pixel coordinates with y down.
func (r Reveal) Pixels(width, height int) (cx, cy, radius float64) {
	w := float64(width)
	return r.X * w, float64(height) - r.Y*w, r.R * w
}

// Layer is the backend side of one target: it receives the screen's pixels
// and blends them onto the surface.
type Layer interface {
	Composite(src *gg.Pixmap, reveal Reveal) error
	Resize(width, height int) error
	Close() error
}

// Backend produces layers and prepares the visible surface for a frame.
type Backend interface {
	NewLayer(width, height int) (Layer, error)
	BeginFrame(width, height int) error
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

// Target is a screen's off-screen colour buffer. It is allocated together
// with its screen and released when the screen leaves the stack.
type Target struct {
	canvas  *gg.Context
	layer   Layer
	curve   *anim.Curve
	settled *Reveal // final reveal once the curve is done
	closed  bool
}

// NewTarget allocates a canvas and backend layer of the given size. A nil
// curve presents the target without a transition.
func NewTarget(b Backend, width, height int, curve *anim.Curve) (*Target, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	layer, err := b.NewLayer(width, height)
	if err != nil {
		return nil, fmt.Errorf("new layer: %w", err)
	}
	return &Target{
		canvas: gg.NewContext(width, height),
		layer:  layer,
		curve:  curve,
	}, nil
}

// Canvas is where the owning screen draws its widgets.
func (t *Target) Canvas() *gg.Context {
	return t.canvas
}

func (t *Target) Width() int  { return t.canvas.Width() }
func (t *Target) Height() int { return t.canvas.Height() }

// StartTransition restarts the reveal animation.
func (t *Target) StartTransition(now time.Time) {
	t.settled = nil
	if t.curve != nil {
		t.curve.Start(now)
	}
}

// RevealAt evaluates the transition at now. Once the curve is done the
// final reveal is kept until the next StartTransition.
func (t *Target) RevealAt(now time.Time) Reveal {
	if t.curve == nil {
		return Full
	}
	if t.settled != nil {
		return *t.settled
	}
	v := t.curve.Current(now)
	r := Reveal{X: v[0], Y: v[1], R: v[2]}
	if t.curve.Done(now) {
		t.settled = &r
	}
	return r
}

// BeginFrame clears the canvas to fully transparent.
func (t *Target) BeginFrame() {
	t.canvas.ClearPath()
	t.canvas.ClearWithColor(gg.Transparent)
}

// Present composites the canvas onto the surface through the reveal at now.
func (t *Target) Present(now time.Time) error {
	if err := t.canvas.FlushGPU(); err != nil {
		return fmt.Errorf("flush canvas: %w", err)
	}
	return t.layer.Composite(t.canvas.ResizeTarget(), t.RevealAt(now))
}

// Resize reallocates the canvas and layer. Content is lost; the next frame
// redraws it.
func (t *Target) Resize(width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	if err := t.canvas.Resize(width, height); err != nil {
		return fmt.Errorf("resize canvas: %w", err)
	}
	if err := t.layer.Resize(width, height); err != nil {
		return fmt.Errorf("resize layer: %w", err)
	}
	return nil
}

// Close releases the layer. Calling it twice is harmless.
func (t *Target) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	err := t.layer.Close()
	if cerr := t.canvas.Close(); err == nil {
		err = cerr
	}
	return err
}
