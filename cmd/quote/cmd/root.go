// Package cmd provides the CLI commands for the quote tool.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cleanbook/pkg/logger"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	verbose bool
	logger  *zap.Logger
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price residential cleaning visits",
		Long: `quote prices a residential cleaning visit from the home's size,
the visit frequency and any add-on services.

Examples:
  quote calc --bedrooms 3 --bathrooms 2 --half-baths 1 --sqft 1500
  quote calc --sqft 900 --frequency weekly --addon inside-oven --addon walls
  quote calc --bedrooms 2 --format json --breakdown
  quote addons
  quote ratecard --output rate-card.xlsx`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := logger.DefaultConfig()
			cfg.Format = "console"
			cfg.Output = cmd.ErrOrStderr()
			if a.verbose {
				cfg.Level = "debug"
			}

			l, err := logger.New(cfg)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			a.logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newCalcCmd(a))
	rootCmd.AddCommand(newAddOnsCmd(a))
	rootCmd.AddCommand(newFrequenciesCmd(a))
	rootCmd.AddCommand(newRateCardCmd(a))

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

func validFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unknown output format %q (use text or json)", format)
}
