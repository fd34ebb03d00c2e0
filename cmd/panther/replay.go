package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/trace"
	"github.com/skygrel/panther/internal/track"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

func row(key, format string, args ...any) string {
	return keyStyle.Render(key) + valueStyle.Render(fmt.Sprintf(format, args...))
}

var outcomeOrder = []track.Outcome{
	track.OutcomeWarmingUp,
	track.OutcomeLowAccuracy,
	track.OutcomeReference,
	track.OutcomeAccumulated,
	track.OutcomePaused,
}

func newReplayCmd(e *env) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "replay <trace.yaml>",
		Short: "Feed a GPS trace through the tracker on virtual time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			t, err := trace.Load(args[0])
			if err != nil {
				return err
			}
			clk := clock.NewManual(t.Start())
			tracker := track.NewTracker(clk, e.limits())
			res, err := trace.Replay(ctx, t, tracker, clk)
			if err != nil {
				return err
			}
			snap := tracker.Snapshot()

			lines := []string{
				titleStyle.Render(fmt.Sprintf("Replay %s", t.Name)),
				row("trace length", "%v", t.Duration()),
				row("samples", "%d", res.Samples),
				row("provider events", "%d", res.Providers),
			}
			for _, o := range outcomeOrder {
				if n := res.Outcomes[o]; n > 0 {
					lines = append(lines, row(o.String(), "%d", n))
				}
			}
			lines = append(lines,
				row("distance", "%.2f m", snap.TotalDistance),
				row("time", "%.2f s", snap.TotalTime),
				row("speed", "%.2f m/s", snap.AvgSpeed),
			)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinVertical(lipgloss.Left, lines...))

			if !save {
				return nil
			}
			book, err := e.openBook(ctx, clk)
			if err != nil {
				return err
			}
			defer book.Close()
			rec := book.Add(ctx, snap.TotalDistance, snap.TotalTime, snap.AvgSpeed)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved record at %.0f\n", rec.Timestamp)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "append the replayed session to the records")
	return cmd
}
