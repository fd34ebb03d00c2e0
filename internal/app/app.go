// Package app is the application runtime: it ties window lifecycle, input
// and the frame loop to the screen stack.
package app

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/input"
	"github.com/skygrel/panther/internal/logging"
	"github.com/skygrel/panther/internal/render"
	"github.com/skygrel/panther/internal/screen"
)

// Event is a callback run on the UI goroutine at the start of the next frame.
type Event func()

var ErrNotResumed = errors.New("app: no surface")

type Options struct {
	Backend    render.Backend
	Registry   screen.Registry
	Clock      clock.Clock
	Transition time.Duration
	// Threshold is the tap/drag distance in pixels.
	Threshold float64
	// Initial is the screen created on first resume; Home when empty.
	Initial screen.ID
}

type App struct {
	opts       Options
	stack      *screen.Stack
	gestures   *input.Tracker
	events     chan Event
	shouldExit atomic.Bool
	suspended  bool
	frames     int
}

func New(opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	if opts.Initial == "" {
		opts.Initial = screen.Home
	}
	return &App{
		opts:      opts,
		gestures:  input.NewTracker(opts.Threshold),
		events:    make(chan Event, 1024),
		suspended: true,
	}
}

// PostEvent queues ev for the UI goroutine. It is safe from any goroutine.
func (app *App) PostEvent(ev Event, dropIfFull bool) {
	if dropIfFull {
		select {
		case app.events <- ev:
		default:
			logging.L().Warn("event queue full, dropping event")
		}
	} else {
		app.events <- ev
	}
}

func (app *App) drainEvents() {
	for {
		select {
		case ev := <-app.events:
			ev()
		default:
			return
		}
	}
}

func (app *App) IsRunning() bool {
	return !app.shouldExit.Load()
}

func (app *App) Quit() {
	if app.shouldExit.CompareAndSwap(false, true) {
		logging.L().Info("quit requested")
	}
}

// Stack is nil until the first Resume.
func (app *App) Stack() *screen.Stack {
	return app.stack
}

// Frames counts drawn frames.
func (app *App) Frames() int {
	return app.frames
}

// Resume attaches a surface of the given size. The first call builds the
// stack with the initial screen.
func (app *App) Resume(width, height int) error {
	if app.stack == nil {
		st, err := screen.NewStack(screen.StackConfig{
			Backend:    app.opts.Backend,
			Registry:   app.opts.Registry,
			Clock:      app.opts.Clock,
			Transition: app.opts.Transition,
			Width:      width,
			Height:     height,
			OnExit:     app.Quit,
		})
		if err != nil {
			return err
		}
		app.stack = st
	} else if w, h := app.stack.Size(); w != width || h != height {
		if err := app.stack.Resize(width, height); err != nil {
			return err
		}
	}
	if app.stack.Len() == 0 && !app.stack.Exited() {
		if err := app.stack.Push(app.opts.Initial); err != nil {
			return err
		}
	}
	app.suspended = false
	logging.L().Info("resumed", "width", width, "height", height)
	return nil
}

// Suspend detaches the surface; nothing is drawn until the next Resume.
func (app *App) Suspend() {
	app.suspended = true
	logging.L().Info("suspended")
}

// Resize applies new surface dimensions to every screen target.
func (app *App) Resize(width, height int) error {
	if app.stack == nil {
		return ErrNotResumed
	}
	logging.L().Debug("resize", "width", width, "height", height)
	return app.stack.Resize(width, height)
}

// OnFramebufferSize defers the resize to the start of the next frame.
func (app *App) OnFramebufferSize(width, height int) {
	app.PostEvent(func() {
		if err := app.Resize(width, height); err != nil {
			logging.L().Warn("resize failed", "width", width, "height", height, "error", err)
		}
	}, false)
}

// OnTouch feeds one raw pointer event. Positions are surface pixels, y down.
func (app *App) OnTouch(id uint64, x, y float64, phase input.Phase) {
	if app.stack == nil || app.suspended {
		logging.L().Warn("touch without surface", "id", id, "phase", phase)
		return
	}
	app.gestures.OnTouch(app.stack, id, x, y, phase)
}

// Back delivers the platform back action.
func (app *App) Back() {
	if app.stack == nil {
		logging.L().Warn("back without surface")
		return
	}
	app.stack.Back()
}

// Update runs queued events and the top screen's per-frame update.
func (app *App) Update() error {
	app.drainEvents()
	if app.stack == nil || app.suspended {
		return nil
	}
	app.stack.Update()
	return nil
}

// Render draws the stack. It is a no-op while suspended.
func (app *App) Render() error {
	if app.stack == nil || app.suspended {
		return nil
	}
	if err := app.stack.Draw(); err != nil {
		return err
	}
	app.frames++
	return nil
}

// Frame is one iteration of the loop: update, then draw.
func (app *App) Frame() error {
	if err := app.Update(); err != nil {
		return err
	}
	return app.Render()
}

func (app *App) Close() error {
	app.drainEvents()
	if app.stack != nil {
		app.stack.Close()
	}
	return nil
}
