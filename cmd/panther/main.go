package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skygrel/panther/internal/clock"
	"github.com/skygrel/panther/internal/config"
	"github.com/skygrel/panther/internal/logging"
	"github.com/skygrel/panther/internal/records"
	"github.com/skygrel/panther/internal/track"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every subcommand starts from once flags are parsed.
type env struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "panther",
		Short:         "Running and walking activity tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(e.configPath)
			if err != nil {
				return err
			}
			if e.logLevel != "" {
				cfg.LogLevel = e.logLevel
			}
			if err := logging.Init(cfg.LogLevel); err != nil {
				return err
			}
			e.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default: ./panther.yaml or ~/.config/panther/panther.yaml)")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level: debug|info|warn|error")

	root.AddCommand(newRunCmd(e))
	root.AddCommand(newReplayCmd(e))
	root.AddCommand(newRecordsCmd(e))
	root.AddCommand(newSnapshotCmd(e))
	return root
}

func (e *env) limits() track.Limits {
	return track.Limits{Warmup: e.cfg.GPS.Warmup, MaxAccuracy: e.cfg.GPS.MaxAccuracy}
}

// openBook loads the records aggregate from the configured backend.
func (e *env) openBook(ctx context.Context, c clock.Clock) (*records.Book, error) {
	if err := os.MkdirAll(e.cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	store, err := records.OpenStore(e.cfg.Records.Backend, e.cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return records.LoadBook(ctx, store, c), nil
}
