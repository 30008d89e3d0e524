package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cleanbook/internal/ratecard"
)

func newRateCardCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ratecard",
		Short: "Export the rate card as an xlsx workbook",
		Long: `Export the add-on prices, frequency discounts and a grid of sample
quotes as an xlsx workbook.

Examples:
  quote ratecard
  quote ratecard --output /tmp/prices.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}

			if err := ratecard.Write(f, ratecard.DefaultSamples); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}

			a.logger.Info("Rate card written",
				zap.String("path", output),
				zap.Int("samples", len(ratecard.DefaultSamples)))
			fmt.Fprintf(cmd.OutOrStdout(), "Rate card written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "rate-card.xlsx", "destination file")
	return cmd
}
