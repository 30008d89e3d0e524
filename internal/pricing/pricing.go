// Package pricing computes per-visit cleaning quotes.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	BasePrice        = 135.0
	SizeBaselineSqFt = 500.0

	BedroomRate  = 0.3
	BathroomRate = 0.2
	HalfBathRate = 0.1
)

type QuoteRequest struct {
	Bedrooms      int
	Bathrooms     int
	HalfBaths     int
	SquareFootage int
	Frequency     Frequency
	AddOns        []string
}

// Breakdown holds the intermediate values of a single quote calculation.
type Breakdown struct {
	SizeMultiplier float64
	RoomMultiplier float64
	Subtotal       float64
	Discount       float64
	BaseTotal      float64
	AddOnTotal     float64
	Total          float64

	// AppliedAddOns are the recognised identifiers, deduplicated, in request order.
	AppliedAddOns []string
	// IgnoredAddOns are identifiers missing from the catalog. They are priced at zero.
	IgnoredAddOns []string
}

// Calculate returns the unrounded price of one visit.
func Calculate(req QuoteRequest) float64 {
	return Quote(req).Total
}

// Quote prices req and returns every intermediate step.
// It never fails: unknown add-ons and frequencies contribute nothing.
func Quote(req QuoteRequest) Breakdown {
	var b Breakdown

	b.SizeMultiplier = math.Max(1, float64(req.SquareFootage)/SizeBaselineSqFt)
	b.RoomMultiplier = 1 +
		float64(req.Bedrooms-1)*BedroomRate +
		float64(req.Bathrooms)*BathroomRate +
		float64(req.HalfBaths)*HalfBathRate

	b.Subtotal = BasePrice * b.SizeMultiplier * b.RoomMultiplier
	b.Discount = req.Frequency.Discount()
	b.BaseTotal = b.Subtotal * (1 - b.Discount)

	seen := make(map[string]struct{}, len(req.AddOns))
	for _, id := range req.AddOns {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		addOn, ok := LookupAddOn(id)
		if !ok {
			b.IgnoredAddOns = append(b.IgnoredAddOns, id)
			continue
		}
		b.AppliedAddOns = append(b.AppliedAddOns, id)
		b.AddOnTotal += addOn.Price
	}

	b.Total = b.BaseTotal + b.AddOnTotal
	return b
}

// FormatAmount renders v as a dollar amount with two decimal places.
func FormatAmount(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

func FormatPerVisit(v float64) string {
	return FormatAmount(v) + " / visit"
}
