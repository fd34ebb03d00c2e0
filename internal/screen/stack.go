package screen

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/skygrel/panther/internal/anim"
	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/logging"
	"github.com/skygrel/panther/internal/render"
)

var ErrUnknownScreen = errors.New("screen: unknown screen")

type entry struct {
	id     ID
	screen Screen
	target *render.Target
}

func (e entry) release() {
	if c, ok := e.screen.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logging.L().Warn("closing screen failed", "screen", e.id, "error", err)
		}
	}
	if err := e.target.Close(); err != nil {
		logging.L().Warn("releasing render target failed", "screen", e.id, "error", err)
	}
}

// StackConfig collects what the stack needs to build screens and targets.
type StackConfig struct {
	Backend    render.Backend
	Registry   Registry
	Clock      clock.Clock
	Transition time.Duration
	Width      int
	Height     int
	// OnExit is called once, when the last screen is popped.
	OnExit func()
}

// Stack is the ordered list of live screens, index 0 at the bottom. It is
// owned by the UI goroutine.
type Stack struct {
	entries    []entry
	backend    render.Backend
	registry   Registry
	clock      clock.Clock
	transition time.Duration
	width      int
	height     int
	onExit     func()
	exited     bool
}

func NewStack(cfg StackConfig) (*Stack, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", render.ErrInvalidSize, cfg.Width, cfg.Height)
	}
	c := cfg.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Stack{
		backend:    cfg.Backend,
		registry:   cfg.Registry,
		clock:      c,
		transition: cfg.Transition,
		width:      cfg.Width,
		height:     cfg.Height,
		onExit:     cfg.OnExit,
	}, nil
}

func (s *Stack) Len() int {
	return len(s.entries)
}

// IDs lists the screens bottom to top.
func (s *Stack) IDs() []ID {
	ids := make([]ID, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.id
	}
	return ids
}

// Top returns the input target, or nil when the stack is empty.
func (s *Stack) Top() Screen {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].screen
}

// Exited reports whether the exit request has been signalled.
func (s *Stack) Exited() bool {
	return s.exited
}

func (s *Stack) Size() (width, height int) {
	return s.width, s.height
}

// Push constructs the screen registered under id together with its render
// target and puts it on top.
func (s *Stack) Push(id ID) error {
	factory, ok := s.registry[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScreen, id)
	}
	target, err := render.NewTarget(s.backend, s.width, s.height, anim.Reveal(s.transition))
	if err != nil {
		return fmt.Errorf("allocate target for %s: %w", id, err)
	}
	scr, err := factory()
	if err != nil {
		if cerr := target.Close(); cerr != nil {
			logging.L().Warn("releasing render target failed", "screen", id, "error", cerr)
		}
		return fmt.Errorf("construct %s: %w", id, err)
	}
	target.StartTransition(s.clock.Now())
	s.entries = append(s.entries, entry{id: id, screen: scr, target: target})
	logging.L().Debug("screen pushed", "screen", id, "depth", len(s.entries))
	return nil
}

// Pop removes the top screen. Emptying the stack signals exit once; popping
// an already empty stack is logged and ignored.
func (s *Stack) Pop() {
	if len(s.entries) == 0 {
		logging.L().Warn("pop on empty screen stack")
		return
	}
	last := len(s.entries) - 1
	e := s.entries[last]
	s.entries[last] = entry{}
	s.entries = s.entries[:last]
	e.release()
	logging.L().Debug("screen popped", "screen", e.id, "depth", len(s.entries))

	if len(s.entries) == 0 {
		s.RequestExit()
	}
}

// RequestExit signals exit. Only the first call has an effect.
func (s *Stack) RequestExit() {
	if s.exited {
		return
	}
	s.exited = true
	logging.L().Info("exit requested", "depth", len(s.entries))
	if s.onExit != nil {
		s.onExit()
	}
}

// Apply performs a navigation command.
func (s *Stack) Apply(cmd Command) error {
	switch cmd.Op {
	case OpPush:
		return s.Push(cmd.Target)
	case OpPop:
		s.Pop()
	case OpExit:
		s.RequestExit()
	}
	return nil
}

func (s *Stack) apply(cmd Command) {
	if err := s.Apply(cmd); err != nil {
		logging.L().Error("navigation failed", "command", cmd, "error", err)
	}
}

// Draw renders every screen bottom to top into its own target and
// composites each onto the surface. A screen above the bottom that reports
// itself expanded drops everything beneath it.
func (s *Stack) Draw() error {
	if err := s.backend.BeginFrame(s.width, s.height); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	now := s.clock.Now()
	for i := 0; i < len(s.entries); {
		e := s.entries[i]
		e.target.BeginFrame()
		e.screen.Draw(e.target.Canvas(), now)
		if err := e.target.Present(now); err != nil {
			logging.L().Warn("presenting screen failed", "screen", e.id, "error", err)
		}
		if i > 0 && e.screen.Expanded(now) {
			s.dropBelow(i)
			i = 1
			continue
		}
		i++
	}
	return nil
}

func (s *Stack) dropBelow(i int) {
	for _, e := range s.entries[:i] {
		e.release()
		logging.L().Debug("screen released", "screen", e.id)
	}
	n := copy(s.entries, s.entries[i:])
	clear(s.entries[n:])
	s.entries = s.entries[:n]
}

// Update runs the per-frame update of the top screen.
func (s *Stack) Update() {
	top := s.Top()
	if top == nil {
		logging.L().Warn("update with empty screen stack")
		return
	}
	s.apply(top.Update(s.clock.Now()))
}

// Back delivers the platform back action to the top screen.
func (s *Stack) Back() {
	top := s.Top()
	if top == nil {
		logging.L().Warn("back with empty screen stack")
		return
	}
	s.apply(top.Back())
}

// Resize reallocates every target before the next frame draws.
func (s *Stack) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", render.ErrInvalidSize, width, height)
	}
	s.width, s.height = width, height
	var errs []error
	for _, e := range s.entries {
		if err := e.target.Resize(width, height); err != nil {
			errs = append(errs, fmt.Errorf("resize %s: %w", e.id, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every screen without signalling exit.
func (s *Stack) Close() {
	for i := len(s.entries) - 1; i >= 0; i-- {
		s.entries[i].release()
	}
	s.entries = nil
}

// Addressable reports whether there is a screen to receive input.
func (s *Stack) Addressable() bool {
	return len(s.entries) > 0
}

func (s *Stack) toPoint(px, py float64) Point {
	w := float64(s.width)
	return Point{X: px / w, Y: (float64(s.height) - py) / w}
}

// StartScroll takes a surface pixel position with y down.
func (s *Stack) StartScroll(px, py float64) bool {
	top := s.Top()
	if top == nil {
		logging.L().Warn("touch with empty screen stack")
		return false
	}
	return top.StartScroll(s.toPoint(px, py))
}

// Scroll takes a pixel delta with y down.
func (s *Stack) Scroll(dx, dy float64) {
	top := s.Top()
	if top == nil {
		logging.L().Warn("scroll with empty screen stack")
		return
	}
	w := float64(s.width)
	top.Scroll(Point{X: dx / w, Y: -dy / w})
}

// Press takes a pixel position with y down and applies the returned command.
func (s *Stack) Press(px, py float64) {
	top := s.Top()
	if top == nil {
		logging.L().Warn("press with empty screen stack")
		return
	}
	s.apply(top.Press(s.toPoint(px, py)))
}
