package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/skygrel/panther/internal/clock"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

func newRecordsCmd(e *env) *cobra.Command {
	recs := &cobra.Command{Use: "records", Short: "Inspect recorded sessions"}

	recs.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, err := e.openBook(context.Background(), clock.SystemClock{})
			if err != nil {
				return err
			}
			defer book.Close()
			data := book.Snapshot()
			if len(data.Records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no records")
				return nil
			}
			cell := lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
			date := lipgloss.NewStyle().Width(20)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render(
				date.Render("finished")+cell.Render("distance m")+cell.Render("time s")+cell.Render("speed m/s")))
			for _, r := range data.Records {
				at := time.Unix(0, int64(r.Timestamp*1e9)).Local().Format("2006-01-02 15:04:05")
				_, _ = fmt.Fprintln(cmd.OutOrStdout(),
					date.Render(at)+
						cell.Render(fmt.Sprintf("%.2f", r.Distance))+
						cell.Render(fmt.Sprintf("%.2f", r.Time))+
						cell.Render(fmt.Sprintf("%.2f", r.Speed)))
			}
			return nil
		},
	})

	recs.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show totals over all sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, err := e.openBook(context.Background(), clock.SystemClock{})
			if err != nil {
				return err
			}
			defer book.Close()
			data := book.Snapshot()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render("Totals"),
				row("sessions", "%d", len(data.Records)),
				row("distance", "%.2f m", data.TotalDistance),
				row("time", "%.2f s", data.TotalTime),
				row("speed", "%.2f m/s", data.AvgSpeed),
			))
			return nil
		},
	})
	return recs
}
