package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func baseRequest() QuoteRequest {
	return QuoteRequest{
		Bedrooms:      1,
		Bathrooms:     1,
		HalfBaths:     0,
		SquareFootage: 500,
		Frequency:     OneTime,
	}
}

func TestCalculate_BaseCase(t *testing.T) {
	// the advertised base rate is 135, but the one bathroom every home has
	// adds 20% on top of it, so the smallest quote is 162
	got := Calculate(baseRequest())
	assert.InDelta(t, 162.0, got, eps)
	assert.Equal(t, "$162.00 / visit", FormatPerVisit(got))
}

func TestCalculate_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		req  QuoteRequest
		want float64
	}{
		{
			name: "three bed two bath one half 1500 sqft one-time",
			req:  QuoteRequest{Bedrooms: 3, Bathrooms: 2, HalfBaths: 1, SquareFootage: 1500, Frequency: OneTime},
			// 135 * 3 * (1 + 0.6 + 0.4 + 0.1)
			want: 850.5,
		},
		{
			name: "same home weekly",
			req:  QuoteRequest{Bedrooms: 3, Bathrooms: 2, HalfBaths: 1, SquareFootage: 1500, Frequency: Weekly},
			want: 850.5 * 0.7,
		},
		{
			name: "small home clamps to baseline",
			req:  QuoteRequest{Bedrooms: 1, Bathrooms: 1, SquareFootage: 200, Frequency: OneTime},
			want: 162,
		},
		{
			name: "move out with extras monthly",
			req: QuoteRequest{
				Bedrooms: 2, Bathrooms: 1, SquareFootage: 750, Frequency: Monthly,
				AddOns: []string{"move-in-out", "inside-fridge-empty"},
			},
			// 135 * 1.5 * 1.5 * 0.95 + 160
			want: 135*1.5*1.5*0.95 + 160,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Calculate(tt.req), eps)
		})
	}
}

func TestCalculate_DoublingSquareFootageDoublesTotal(t *testing.T) {
	small := baseRequest()
	large := baseRequest()
	large.SquareFootage = 1000

	assert.Equal(t, 2*Calculate(small), Calculate(large))
}

func TestCalculate_FrequencyDiscounts(t *testing.T) {
	oneTime := Calculate(baseRequest())

	tests := []struct {
		freq   Frequency
		factor float64
	}{
		{Weekly, 0.70},
		{BiWeekly, 0.80},
		{Monthly, 0.95},
		{OneTime, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			req := baseRequest()
			req.Frequency = tt.freq
			assert.InDelta(t, oneTime*tt.factor, Calculate(req), eps)
		})
	}
}

func TestCalculate_AddOnsAreAdditive(t *testing.T) {
	extras := []string{"deep-cleaning", "inside-oven", "green-cleaning"}

	for _, freq := range Frequencies() {
		for bedrooms := 1; bedrooms <= 6; bedrooms++ {
			req := QuoteRequest{
				Bedrooms: bedrooms, Bathrooms: 2, HalfBaths: 1,
				SquareFootage: 1200, Frequency: freq,
			}
			without := Calculate(req)

			req.AddOns = extras
			with := Calculate(req)

			assert.InDelta(t, 130.0, with-without, eps, "frequency=%s bedrooms=%d", freq, bedrooms)
		}
	}
}

func TestCalculate_UnknownAddOnsIgnored(t *testing.T) {
	req := baseRequest()
	want := Calculate(req)

	req.AddOns = []string{"deep-clean", "", "DEEP-CLEANING"}
	b := Quote(req)

	assert.Equal(t, want, b.Total)
	assert.Zero(t, b.AddOnTotal)
	assert.Empty(t, b.AppliedAddOns)
	assert.Equal(t, []string{"deep-clean", "", "DEEP-CLEANING"}, b.IgnoredAddOns)
}

func TestCalculate_DuplicateAddOnsCountOnce(t *testing.T) {
	req := baseRequest()
	req.AddOns = []string{"walls", "walls", "disinfectant"}

	b := Quote(req)
	assert.InDelta(t, 60.0, b.AddOnTotal, eps)
	assert.Equal(t, []string{"walls", "disinfectant"}, b.AppliedAddOns)
}

func TestCalculate_UnknownFrequencyHasNoDiscount(t *testing.T) {
	req := baseRequest()
	req.Frequency = "fortnightly"

	assert.Equal(t, Calculate(baseRequest()), Calculate(req))
}

func TestCalculate_Monotonic(t *testing.T) {
	fields := []struct {
		name string
		bump func(*QuoteRequest)
	}{
		{"bedrooms", func(r *QuoteRequest) { r.Bedrooms++ }},
		{"bathrooms", func(r *QuoteRequest) { r.Bathrooms++ }},
		{"half baths", func(r *QuoteRequest) { r.HalfBaths++ }},
		{"square footage", func(r *QuoteRequest) { r.SquareFootage += 50 }},
	}

	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			for _, freq := range Frequencies() {
				for sqft := 200; sqft <= 5000; sqft += 200 {
					req := QuoteRequest{Bedrooms: 2, Bathrooms: 1, HalfBaths: 1, SquareFootage: sqft, Frequency: freq}
					before := Calculate(req)
					f.bump(&req)
					after := Calculate(req)
					if after < before {
						t.Fatalf("bumping %s decreased quote: %v -> %v (%+v)", f.name, before, after, req)
					}
				}
			}
		})
	}
}

func TestCalculate_StrictlyPositive(t *testing.T) {
	for _, freq := range Frequencies() {
		for bedrooms := 1; bedrooms <= 6; bedrooms++ {
			for bathrooms := 1; bathrooms <= 5; bathrooms++ {
				for halfBaths := 0; halfBaths <= 3; halfBaths++ {
					for _, sqft := range []int{1, 200, 499, 500, 2500, 10000} {
						req := QuoteRequest{
							Bedrooms: bedrooms, Bathrooms: bathrooms, HalfBaths: halfBaths,
							SquareFootage: sqft, Frequency: freq,
						}
						require.Greater(t, Calculate(req), 0.0, "%+v", req)
					}
				}
			}
		}
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	req := QuoteRequest{
		Bedrooms: 4, Bathrooms: 3, HalfBaths: 2, SquareFootage: 2750,
		Frequency: BiWeekly, AddOns: []string{"inside-windows", "load-laundry", "bogus"},
	}

	first := Quote(req)
	second := Quote(req)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"inside-windows", "load-laundry", "bogus"}, req.AddOns)
}

func TestQuote_Breakdown(t *testing.T) {
	req := QuoteRequest{
		Bedrooms: 2, Bathrooms: 2, HalfBaths: 0, SquareFootage: 1000,
		Frequency: BiWeekly, AddOns: []string{"walls"},
	}

	b := Quote(req)
	assert.Equal(t, 2.0, b.SizeMultiplier)
	assert.InDelta(t, 1.7, b.RoomMultiplier, eps)
	assert.InDelta(t, 135*2*1.7, b.Subtotal, eps)
	assert.Equal(t, 0.20, b.Discount)
	assert.InDelta(t, b.Subtotal*0.8, b.BaseTotal, eps)
	assert.Equal(t, 25.0, b.AddOnTotal)
	assert.InDelta(t, b.BaseTotal+25, b.Total, eps)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{162, "$162.00"},
		{0, "$0.00"},
		{113.4, "$113.40"},
		{595.35, "$595.35"},
		{1.005, "$1.01"},
		{99.994, "$99.99"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.in))
		})
	}
}
