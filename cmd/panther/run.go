package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/skygrel/panther/internal/app"
	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/glview"
	"github.com/skygrel/panther/internal/logging"
	"github.com/skygrel/panther/internal/render"
	"github.com/skygrel/panther/internal/trace"
	"github.com/skygrel/panther/internal/track"
	"github.com/skygrel/panther/internal/ui"
)

func newRunCmd(e *env) *cobra.Command {
	var tracePath string
	var speed float64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the tracker window",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			c := clock.SystemClock{}
			book, err := e.openBook(ctx, c)
			if err != nil {
				return err
			}
			defer book.Close()
			fonts, err := ui.DefaultFonts()
			if err != nil {
				return err
			}
			tracker := track.NewTracker(c, e.limits())

			var source track.LocationSource = track.NopSource{}
			if tracePath != "" {
				t, err := trace.Load(tracePath)
				if err != nil {
					return err
				}
				player := trace.NewPlayer(t, tracker, speed)
				defer player.StopUpdates()
				source = player
				logging.L().Info("location from trace", "path", tracePath, "events", len(t.Events), "speed", speed)
			}

			registry := ui.Registry(ui.Deps{
				Tracker:  tracker,
				Book:     book,
				Location: source,
				Clock:    c,
				Fonts:    fonts,
			})
			return glview.Run("Panther", e.cfg.Window, func(b render.Backend) *app.App {
				return app.New(app.Options{
					Backend:    b,
					Registry:   registry,
					Clock:      c,
					Transition: e.cfg.Transition.Duration,
					Threshold:  e.cfg.Gesture.Threshold,
				})
			})
		},
	}
	cmd.Flags().StringVar(&tracePath, "trace", "", "play GPS samples from a trace file instead of a receiver")
	cmd.Flags().Float64Var(&speed, "speed", 1, "trace playback speed factor")
	return cmd
}
