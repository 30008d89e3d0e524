package pricing

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFrequency = errors.New("unknown frequency")

// Frequency is the recurrence cadence of a cleaning service.
type Frequency string

const (
	OneTime  Frequency = "one-time"
	Weekly   Frequency = "weekly"
	BiWeekly Frequency = "bi-weekly"
	Monthly  Frequency = "monthly"
)

var frequencyDiscounts = map[Frequency]float64{
	OneTime:  0,
	Weekly:   0.30,
	BiWeekly: 0.20,
	Monthly:  0.05,
}

var frequencyLabels = map[Frequency]string{
	OneTime:  "One-Time",
	Weekly:   "Weekly",
	BiWeekly: "Bi-Weekly",
	Monthly:  "Monthly",
}

// Frequencies returns the supported frequencies in display order.
func Frequencies() []Frequency {
	return []Frequency{OneTime, Weekly, BiWeekly, Monthly}
}

// Discount returns the discount fraction for f, or 0 if f is not a known frequency.
func (f Frequency) Discount() float64 {
	return frequencyDiscounts[f]
}

func (f Frequency) Label() string {
	if label, ok := frequencyLabels[f]; ok {
		return label
	}
	return string(f)
}

func (f Frequency) Valid() bool {
	_, ok := frequencyDiscounts[f]
	return ok
}

// ParseFrequency accepts either an identifier ("bi-weekly") or a label
// ("Bi-Weekly"), case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.TrimSpace(s)
	for _, f := range Frequencies() {
		if strings.EqualFold(s, string(f)) || strings.EqualFold(s, f.Label()) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
}

// AddOn is an optional extra service charged as a flat fee per visit.
type AddOn struct {
	ID    string
	Name  string
	Price float64
}

var addOns = []AddOn{
	{ID: "deep-cleaning", Name: "Deep Cleaning", Price: 95},
	{ID: "move-in-out", Name: "Move In/Out", Price: 125},
	{ID: "inside-oven", Name: "Inside Oven", Price: 35},
	{ID: "hand-wash-dishes", Name: "Hand Wash Dishes", Price: 45},
	{ID: "shedding-pets", Name: "Shedding Pets", Price: 42},
	{ID: "green-cleaning", Name: "Green Cleaning", Price: 0},
	{ID: "inside-cabinets-full", Name: "Inside Cabinets (Full)", Price: 95},
	{ID: "inside-cabinets-empty", Name: "Inside Cabinets (Empty)", Price: 52},
	{ID: "inside-fridge-full", Name: "Inside Fridge (Full)", Price: 55},
	{ID: "inside-fridge-empty", Name: "Inside Fridge (Empty)", Price: 35},
	{ID: "load-laundry", Name: "Load of Laundry", Price: 15},
	{ID: "inside-windows", Name: "Inside Windows", Price: 125},
	{ID: "walls", Name: "Walls", Price: 25},
	{ID: "disinfectant", Name: "Disinfectant", Price: 35},
}

var addOnIndex = func() map[string]AddOn {
	index := make(map[string]AddOn, len(addOns))
	for _, a := range addOns {
		index[a.ID] = a
	}
	return index
}()

// AddOns returns a copy of the add-on catalog in display order.
func AddOns() []AddOn {
	out := make([]AddOn, len(addOns))
	copy(out, addOns)
	return out
}

func LookupAddOn(id string) (AddOn, bool) {
	a, ok := addOnIndex[id]
	return a, ok
}
