package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cleanbook/internal/pricing"
)

func newAddOnsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "addons",
		Aliases: []string{"add-ons"},
		Short:   "List add-on services and their prices",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			catalog := pricing.AddOns()
			a.logger.Debug("Listing add-ons")

			if format == "json" {
				return writeAddOnsJSON(cmd.OutOrStdout(), catalog)
			}
			return writeAddOnsText(cmd.OutOrStdout(), catalog)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")
	return cmd
}

func writeAddOnsText(out io.Writer, catalog []pricing.AddOn) error {
	if _, err := fmt.Fprintf(out, "%-24s%-26s%s\n", "ID", "SERVICE", "PRICE"); err != nil {
		return err
	}
	for _, addOn := range catalog {
		if _, err := fmt.Fprintf(out, "%-24s%-26s%s\n", addOn.ID, addOn.Name, pricing.FormatAmount(addOn.Price)); err != nil {
			return err
		}
	}
	return nil
}

type addOnJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

func writeAddOnsJSON(out io.Writer, catalog []pricing.AddOn) error {
	items := make([]addOnJSON, 0, len(catalog))
	for _, addOn := range catalog {
		items = append(items, addOnJSON{ID: addOn.ID, Name: addOn.Name, Price: money(addOn.Price)})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode add-ons: %w", err)
	}
	return nil
}
