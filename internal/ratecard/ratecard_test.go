package ratecard

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cleanbook/internal/pricing"
)

var raw = excelize.Options{RawCellValue: true}

func openRateCard(t *testing.T, samples []SampleHome) *excelize.File {
	t.Helper()

	data, err := Bytes(samples)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cellFloat(t *testing.T, f *excelize.File, sheet, cell string) float64 {
	t.Helper()

	v, err := f.GetCellValue(sheet, cell, raw)
	require.NoError(t, err)
	n, err := strconv.ParseFloat(v, 64)
	require.NoError(t, err, "%s!%s = %q", sheet, cell, v)
	return n
}

func TestWrite_Sheets(t *testing.T) {
	f := openRateCard(t, DefaultSamples)
	assert.Equal(t, []string{SheetAddOns, SheetFrequencies, SheetSampleQuotes}, f.GetSheetList())
}

func TestWrite_AddOns(t *testing.T) {
	f := openRateCard(t, DefaultSamples)

	rows, err := f.GetRows(SheetAddOns, raw)
	require.NoError(t, err)

	catalog := pricing.AddOns()
	require.Len(t, rows, len(catalog)+1)
	assert.Equal(t, []string{"ID", "Service", "Price"}, rows[0])

	for i, a := range catalog {
		row := rows[i+1]
		assert.Equal(t, a.ID, row[0])
		assert.Equal(t, a.Name, row[1])
		price, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err)
		assert.Equal(t, a.Price, price, a.ID)
	}
}

func TestWrite_Frequencies(t *testing.T) {
	f := openRateCard(t, nil)

	v, err := f.GetCellValue(SheetFrequencies, "B3", raw)
	require.NoError(t, err)
	assert.Equal(t, "Weekly", v)
	assert.Equal(t, 0.3, cellFloat(t, f, SheetFrequencies, "C3"))
	assert.InDelta(t, 0.7, cellFloat(t, f, SheetFrequencies, "D3"), 1e-12)

	// formatted view uses the percent number format
	formatted, err := f.GetCellValue(SheetFrequencies, "C3")
	require.NoError(t, err)
	assert.Equal(t, "30%", formatted)
}

func TestWrite_SampleQuotes(t *testing.T) {
	samples := []SampleHome{
		{Bedrooms: 1, Bathrooms: 1, HalfBaths: 0, SquareFootage: 500},
		{Bedrooms: 3, Bathrooms: 2, HalfBaths: 1, SquareFootage: 1500},
	}
	f := openRateCard(t, samples)

	rows, err := f.GetRows(SheetSampleQuotes, raw)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t,
		[]string{"Bedrooms", "Bathrooms", "Half Baths", "Sq Ft", "One-Time", "Weekly", "Bi-Weekly", "Monthly"},
		rows[0])

	assert.InDelta(t, 162.0, cellFloat(t, f, SheetSampleQuotes, "E2"), 1e-9)
	assert.InDelta(t, 850.5, cellFloat(t, f, SheetSampleQuotes, "E3"), 1e-9)

	weekly := pricing.Calculate(pricing.QuoteRequest{
		Bedrooms: 3, Bathrooms: 2, HalfBaths: 1, SquareFootage: 1500, Frequency: pricing.Weekly,
	})
	assert.InDelta(t, weekly, cellFloat(t, f, SheetSampleQuotes, "F3"), 1e-9)

	formatted, err := f.GetCellValue(SheetSampleQuotes, "E2")
	require.NoError(t, err)
	assert.Equal(t, "162.00", formatted)
}
