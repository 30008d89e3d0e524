package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cleanbook/internal/pricing"
)

func newFrequenciesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "frequencies",
		Short: "List visit frequencies and their discounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a.logger.Debug("Listing frequencies")

			if _, err := fmt.Fprintf(out, "%-12s%-12s%s\n", "ID", "FREQUENCY", "DISCOUNT"); err != nil {
				return err
			}
			for _, f := range pricing.Frequencies() {
				if _, err := fmt.Fprintf(out, "%-12s%-12s%.0f%%\n", f, f.Label(), f.Discount()*100); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
