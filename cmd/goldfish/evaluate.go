package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/magefree/mage-goldfish/internal/runner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEvaluateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <scenario.yaml>...",
		Short: "Evaluate one or more board scenarios",
		Long: `Loads each scenario file, applies every static effect on its battlefield,
plays the listed casts and reports creature stats, spell costs after
modifiers and commander tax, and whether each listed spell can be paid for.

Examples:
  goldfish evaluate boards/elves.yaml
  goldfish evaluate --format json boards/*.yaml > report.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := initLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logger.Debug("evaluating scenarios",
				zap.Strings("paths", args),
				zap.Int("workers", cfg.Simulation.Workers))

			reports, err := runner.Run(ctx, cfg, logger, args)
			if err != nil {
				return err
			}
			return runner.Write(cmd.OutOrStdout(), cfg.Output.Format, reports)
		},
	}
}
