package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cleanbook/internal/pricing"
	"cleanbook/internal/storage/redis"
)

var ErrInvalidSpaceDetails = errors.New("invalid space details")

// ParseSpaceDetails reads "bedrooms bathrooms half_baths square_feet".
// Commas, "x" and extra whitespace between the numbers are accepted.
func ParseSpaceDetails(text string) (redis.Space, error) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == ',' || r == 'x' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return redis.Space{}, fmt.Errorf("%w: expected 4 numbers, got %d", ErrInvalidSpaceDetails, len(fields))
	}

	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return redis.Space{}, fmt.Errorf("%w: %q is not a whole number", ErrInvalidSpaceDetails, f)
		}
		values[i] = v
	}

	space := redis.Space{
		Bedrooms:      values[0],
		Bathrooms:     values[1],
		HalfBaths:     values[2],
		SquareFootage: values[3],
	}

	switch {
	case space.Bedrooms < MinBedrooms || space.Bedrooms > MaxBedrooms:
		return redis.Space{}, fmt.Errorf("%w: bedrooms must be %d-%d", ErrInvalidSpaceDetails, MinBedrooms, MaxBedrooms)
	case space.Bathrooms < MinBathrooms || space.Bathrooms > MaxBathrooms:
		return redis.Space{}, fmt.Errorf("%w: bathrooms must be %d-%d", ErrInvalidSpaceDetails, MinBathrooms, MaxBathrooms)
	case space.HalfBaths < MinHalfBaths || space.HalfBaths > MaxHalfBaths:
		return redis.Space{}, fmt.Errorf("%w: half baths must be %d-%d", ErrInvalidSpaceDetails, MinHalfBaths, MaxHalfBaths)
	case space.SquareFootage < MinSqFt || space.SquareFootage > MaxSqFt:
		return redis.Space{}, fmt.Errorf("%w: square feet must be %d-%d", ErrInvalidSpaceDetails, MinSqFt, MaxSqFt)
	case space.SquareFootage%SqFtStep != 0:
		return redis.Space{}, fmt.Errorf("%w: square feet must be a multiple of %d", ErrInvalidSpaceDetails, SqFtStep)
	}

	return space, nil
}

// quoteRequest assembles a calculator request from the wizard state.
// It reports false until both the space and the frequency are known.
func quoteRequest(booking *redis.Booking) (pricing.QuoteRequest, bool) {
	if booking == nil || booking.Space == nil {
		return pricing.QuoteRequest{}, false
	}
	freq := pricing.Frequency(booking.Frequency)
	if !freq.Valid() {
		return pricing.QuoteRequest{}, false
	}

	return pricing.QuoteRequest{
		Bedrooms:      booking.Space.Bedrooms,
		Bathrooms:     booking.Space.Bathrooms,
		HalfBaths:     booking.Space.HalfBaths,
		SquareFootage: booking.Space.SquareFootage,
		Frequency:     freq,
		AddOns:        booking.AddOns,
	}, true
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func FormatSpace(req pricing.QuoteRequest) string {
	parts := []string{
		plural(req.Bedrooms, "bedroom", "bedrooms"),
		plural(req.Bathrooms, "bathroom", "bathrooms"),
	}
	if req.HalfBaths > 0 {
		parts = append(parts, plural(req.HalfBaths, "half bath", "half baths"))
	}
	parts = append(parts, fmt.Sprintf("%d sq ft", req.SquareFootage))
	return strings.Join(parts, " · ")
}

func FormatFrequency(f pricing.Frequency) string {
	if d := f.Discount(); d > 0 {
		return fmt.Sprintf("%s (%.0f%% off)", f.Label(), d*100)
	}
	return f.Label()
}

// FormatQuote renders the live quote shown while the user picks add-ons.
func FormatQuote(req pricing.QuoteRequest, b pricing.Breakdown) string {
	addOns := "none"
	if len(b.AppliedAddOns) > 0 {
		names := make([]string, 0, len(b.AppliedAddOns))
		for _, id := range b.AppliedAddOns {
			a, _ := pricing.LookupAddOn(id)
			names = append(names, fmt.Sprintf("%s (%s)", a.Name, pricing.FormatAmount(a.Price)))
		}
		addOns = strings.Join(names, ", ")
	}

	return fmt.Sprintf(
		"🏠 %s\n"+
			"🔁 %s\n"+
			"➕ Add-ons: %s\n"+
			"──────────────────\n"+
			"💵 %s",
		FormatSpace(req),
		FormatFrequency(req.Frequency),
		addOns,
		pricing.FormatPerVisit(b.Total),
	)
}

func FormatPriceList() string {
	var sb strings.Builder

	sb.WriteString("🧽 Add-on services\n")
	for _, a := range pricing.AddOns() {
		fmt.Fprintf(&sb, "• %s: %s\n", a.Name, pricing.FormatAmount(a.Price))
	}

	sb.WriteString("\n🔁 Recurring discounts\n")
	for _, f := range pricing.Frequencies() {
		fmt.Fprintf(&sb, "• %s: %.0f%% off\n", f.Label(), f.Discount()*100)
	}

	fmt.Fprintf(&sb, "\nBase rate: %s per visit for a 1 bedroom home up to %.0f sq ft.",
		pricing.FormatAmount(pricing.BasePrice), pricing.SizeBaselineSqFt)

	return sb.String()
}
