package glview

import (
	"fmt"
	"runtime"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/skygrel/panther/internal/app"
	"github.com/skygrel/panther/internal/config"
	"github.com/skygrel/panther/internal/input"
	"github.com/skygrel/panther/internal/logging"
	"github.com/skygrel/panther/internal/render"
)

// mouseTouch is the pointer id the mouse reports as.
const mouseTouch = 0

func init() {
	runtime.LockOSThread()
}

// pointer turns glfw mouse events into touch phases.
type pointer struct {
	window *glfw.Window
	app    *app.App
	down   bool
}

// pos converts the cursor from window coordinates to framebuffer pixels.
func (p *pointer) pos() (float64, float64) {
	x, y := p.window.GetCursorPos()
	ww, wh := p.window.GetSize()
	fw, fh := p.window.GetFramebufferSize()
	if ww > 0 && wh > 0 {
		x *= float64(fw) / float64(ww)
		y *= float64(fh) / float64(wh)
	}
	return x, y
}

func (p *pointer) onButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	x, y := p.pos()
	switch {
	case action == glfw.Press && !p.down:
		p.down = true
		p.app.OnTouch(mouseTouch, x, y, input.Started)
	case action == glfw.Release && p.down:
		p.down = false
		p.app.OnTouch(mouseTouch, x, y, input.Ended)
	}
}

func (p *pointer) onMove(w *glfw.Window, xpos, ypos float64) {
	if !p.down {
		return
	}
	x, y := p.pos()
	p.app.OnTouch(mouseTouch, x, y, input.Moved)
}

func (p *pointer) onEnter(w *glfw.Window, entered bool) {
	if entered || !p.down {
		return
	}
	p.down = false
	x, y := p.pos()
	p.app.OnTouch(mouseTouch, x, y, input.Cancelled)
}

// Run opens the window, builds the app on a GL backend and drives it until
// it quits or the window is closed.
func Run(title string, cfg config.WindowConfig, newApp func(render.Backend) *app.App) error {
	err := glfw.Init()
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return fmt.Errorf("no monitors found")
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return fmt.Errorf("video mode cannot be determined")
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	width, height := cfg.Width, cfg.Height
	var fullscreen *glfw.Monitor
	if cfg.Fullscreen {
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		width, height = mode.Width, mode.Height
		fullscreen = monitor
	}
	window, err := glfw.CreateWindow(width, height, title, fullscreen, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return err
	}

	backend, err := NewBackend()
	if err != nil {
		return err
	}
	defer backend.Close()
	a := newApp(backend)
	defer a.Close()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.OnFramebufferSize(width, height)
	})
	window.SetIconifyCallback(func(w *glfw.Window, iconified bool) {
		if iconified {
			a.Suspend()
			return
		}
		if err := a.Resume(w.GetFramebufferSize()); err != nil {
			logging.L().Error("resume failed", "err", err)
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape, glfw.KeyBackspace:
			a.Back()
		}
	})
	window.SetCloseCallback(func(w *glfw.Window) {
		a.Quit()
	})
	p := &pointer{window: window, app: a}
	window.SetMouseButtonCallback(p.onButton)
	window.SetCursorPosCallback(p.onMove)
	window.SetCursorEnterCallback(p.onEnter)

	if err := a.Resume(window.GetFramebufferSize()); err != nil {
		return err
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	frameSeconds := 1.0 / float64(fps)
	for a.IsRunning() {
		start := glfw.GetTime()
		if err := a.Render(); err != nil {
			return err
		}
		window.SwapBuffers()
		elapsedSeconds := glfw.GetTime() - start
		if frameSeconds > elapsedSeconds {
			glfw.WaitEventsTimeout(frameSeconds - elapsedSeconds)
		} else {
			glfw.PollEvents()
		}
		if err := a.Update(); err != nil {
			return err
		}
	}
	logging.L().Info("window closed", "frames", a.Frames())
	return nil
}
