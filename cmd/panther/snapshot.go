package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skygrel/panther/internal/app"
	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/render"
	"github.com/skygrel/panther/internal/screen"
	"github.com/skygrel/panther/internal/track"
	"github.com/skygrel/panther/internal/ui"
)

// snapshot renders screens offscreen with the software backend and writes
// the composited frame as a PNG.
type snapshot struct {
	screens       []screen.ID
	width, height int
	frames        int
}

func (s snapshot) render(ctx context.Context, e *env, out string) error {
	clk := clock.NewManual(time.Now())
	book, err := e.openBook(ctx, clk)
	if err != nil {
		return err
	}
	defer book.Close()
	fonts, err := ui.DefaultFonts()
	if err != nil {
		return err
	}
	sw, err := render.NewSoftware(s.width, s.height)
	if err != nil {
		return err
	}
	registry := ui.Registry(ui.Deps{
		Tracker:  track.NewTracker(clk, e.limits()),
		Book:     book,
		Location: track.NopSource{},
		Clock:    clk,
		Fonts:    fonts,
	})
	a := app.New(app.Options{
		Backend:    sw,
		Registry:   registry,
		Clock:      clk,
		Transition: e.cfg.Transition.Duration,
		Threshold:  e.cfg.Gesture.Threshold,
		Initial:    s.screens[0],
	})
	defer a.Close()
	if err := a.Resume(s.width, s.height); err != nil {
		return err
	}
	for _, id := range s.screens[1:] {
		if err := a.Stack().Push(id); err != nil {
			return err
		}
	}
	step := time.Second / 30
	for i := 0; i < s.frames; i++ {
		clk.Advance(step)
		if err := a.Frame(); err != nil {
			return err
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, sw.Surface()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newSnapshotCmd(e *env) *cobra.Command {
	var names []string
	var out string
	s := snapshot{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a screen stack to a PNG without a window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(names) == 0 {
				names = []string{string(screen.Home)}
			}
			if s.width <= 0 || s.height <= 0 {
				return fmt.Errorf("%w: %dx%d", render.ErrInvalidSize, s.width, s.height)
			}
			s.screens = s.screens[:0]
			for _, n := range names {
				s.screens = append(s.screens, screen.ID(n))
			}
			if err := s.render(context.Background(), e, out); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&names, "screen", nil, "screens to push, bottom first (home|stats|records|active|paused)")
	cmd.Flags().StringVar(&out, "out", "panther.png", "output PNG path")
	cmd.Flags().IntVar(&s.width, "width", 540, "frame width in pixels")
	cmd.Flags().IntVar(&s.height, "height", 960, "frame height in pixels")
	cmd.Flags().IntVar(&s.frames, "frames", 45, "frames to advance before capturing")
	return cmd
}
