package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cleanbook/internal/pricing"
)

type calcOptions struct {
	bedrooms  int
	bathrooms int
	halfBaths int
	sqft      int
	frequency string
	addOns    []string
	breakdown bool
	format    string
}

func newCalcCmd(a *app) *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the price of one cleaning visit",
		Long: `Calculate the price of one cleaning visit.

Unknown add-on identifiers are ignored and reported on stderr.

Examples:
  quote calc --bedrooms 3 --bathrooms 2 --half-baths 1 --sqft 1500
  quote calc --frequency bi-weekly --addon deep-cleaning,inside-oven
  quote calc --sqft 2200 --breakdown --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd.OutOrStdout(), a.logger, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.bedrooms, "bedrooms", 1, "number of bedrooms (>= 1)")
	f.IntVar(&opts.bathrooms, "bathrooms", 1, "number of full bathrooms (>= 1)")
	f.IntVar(&opts.halfBaths, "half-baths", 0, "number of half bathrooms")
	f.IntVar(&opts.sqft, "sqft", 500, "square footage")
	f.StringVarP(&opts.frequency, "frequency", "f", string(pricing.OneTime), "visit frequency (one-time, weekly, bi-weekly, monthly)")
	f.StringSliceVarP(&opts.addOns, "addon", "a", nil, "add-on identifier, repeatable or comma separated")
	f.BoolVarP(&opts.breakdown, "breakdown", "b", false, "show how the price was built")
	f.StringVar(&opts.format, "format", "text", "output format (text, json)")

	return cmd
}

func (o *calcOptions) request() (pricing.QuoteRequest, error) {
	switch {
	case o.bedrooms < 1:
		return pricing.QuoteRequest{}, fmt.Errorf("--bedrooms must be at least 1, got %d", o.bedrooms)
	case o.bathrooms < 1:
		return pricing.QuoteRequest{}, fmt.Errorf("--bathrooms must be at least 1, got %d", o.bathrooms)
	case o.halfBaths < 0:
		return pricing.QuoteRequest{}, fmt.Errorf("--half-baths must not be negative, got %d", o.halfBaths)
	case o.sqft < 1:
		return pricing.QuoteRequest{}, fmt.Errorf("--sqft must be at least 1, got %d", o.sqft)
	}

	freq, err := pricing.ParseFrequency(o.frequency)
	if err != nil {
		return pricing.QuoteRequest{}, err
	}

	return pricing.QuoteRequest{
		Bedrooms:      o.bedrooms,
		Bathrooms:     o.bathrooms,
		HalfBaths:     o.halfBaths,
		SquareFootage: o.sqft,
		Frequency:     freq,
		AddOns:        o.addOns,
	}, nil
}

func runCalc(out io.Writer, log *zap.Logger, opts *calcOptions) error {
	if err := validFormat(opts.format); err != nil {
		return err
	}

	req, err := opts.request()
	if err != nil {
		return err
	}

	b := pricing.Quote(req)

	log.Debug("Quote calculated",
		zap.Int("bedrooms", req.Bedrooms),
		zap.Int("bathrooms", req.Bathrooms),
		zap.Int("half_baths", req.HalfBaths),
		zap.Int("square_footage", req.SquareFootage),
		zap.String("frequency", string(req.Frequency)),
		zap.Float64("size_multiplier", b.SizeMultiplier),
		zap.Float64("room_multiplier", b.RoomMultiplier),
		zap.Float64("total", b.Total))
	if len(b.IgnoredAddOns) > 0 {
		log.Warn("Ignoring unknown add-ons", zap.Strings("add_ons", b.IgnoredAddOns))
	}

	if opts.format == "json" {
		return writeCalcJSON(out, req, b, opts.breakdown)
	}
	return writeCalcText(out, req, b, opts.breakdown)
}

type calcResult struct {
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	HalfBaths     int      `json:"half_baths"`
	SquareFootage int      `json:"square_footage"`
	Frequency     string   `json:"frequency"`
	AddOns        []string `json:"add_ons"`
	Total         string   `json:"total"`

	Breakdown *calcBreakdown `json:"breakdown,omitempty"`
}

type calcBreakdown struct {
	SizeMultiplier float64  `json:"size_multiplier"`
	RoomMultiplier float64  `json:"room_multiplier"`
	Subtotal       string   `json:"subtotal"`
	Discount       float64  `json:"discount"`
	BaseTotal      string   `json:"base_total"`
	AddOnTotal     string   `json:"add_on_total"`
	IgnoredAddOns  []string `json:"ignored_add_ons,omitempty"`
}

// money renders amounts for JSON as fixed two-place strings.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func writeCalcJSON(out io.Writer, req pricing.QuoteRequest, b pricing.Breakdown, withBreakdown bool) error {
	res := calcResult{
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		HalfBaths:     req.HalfBaths,
		SquareFootage: req.SquareFootage,
		Frequency:     string(req.Frequency),
		AddOns:        b.AppliedAddOns,
		Total:         money(b.Total),
	}
	if res.AddOns == nil {
		res.AddOns = []string{}
	}
	if withBreakdown {
		res.Breakdown = &calcBreakdown{
			SizeMultiplier: b.SizeMultiplier,
			RoomMultiplier: b.RoomMultiplier,
			Subtotal:       money(b.Subtotal),
			Discount:       b.Discount,
			BaseTotal:      money(b.BaseTotal),
			AddOnTotal:     money(b.AddOnTotal),
			IgnoredAddOns:  b.IgnoredAddOns,
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	return nil
}

func writeCalcText(out io.Writer, req pricing.QuoteRequest, b pricing.Breakdown, withBreakdown bool) error {
	if !withBreakdown {
		_, err := fmt.Fprintln(out, pricing.FormatPerVisit(b.Total))
		return err
	}

	addOns := "none"
	if len(b.AppliedAddOns) > 0 {
		addOns = strings.Join(b.AppliedAddOns, ", ")
	}

	lines := []string{
		fmt.Sprintf("%-17s%d bd / %d ba / %d half / %d sq ft", "Home:", req.Bedrooms, req.Bathrooms, req.HalfBaths, req.SquareFootage),
		fmt.Sprintf("%-17s%s", "Frequency:", req.Frequency.Label()),
		fmt.Sprintf("%-17s%.2f", "Size multiplier:", b.SizeMultiplier),
		fmt.Sprintf("%-17s%.2f", "Room multiplier:", b.RoomMultiplier),
		fmt.Sprintf("%-17s%s", "Subtotal:", pricing.FormatAmount(b.Subtotal)),
		fmt.Sprintf("%-17s%.0f%% (-%s)", "Discount:", b.Discount*100, pricing.FormatAmount(b.Subtotal-b.BaseTotal)),
		fmt.Sprintf("%-17s%s", "Base total:", pricing.FormatAmount(b.BaseTotal)),
		fmt.Sprintf("%-17s%s (%s)", "Add-ons:", pricing.FormatAmount(b.AddOnTotal), addOns),
	}
	if len(b.IgnoredAddOns) > 0 {
		lines = append(lines, fmt.Sprintf("%-17s%s", "Ignored:", strings.Join(b.IgnoredAddOns, ", ")))
	}
	lines = append(lines, fmt.Sprintf("%-17s%s", "Total:", pricing.FormatPerVisit(b.Total)))

	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}
