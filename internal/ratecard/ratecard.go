// Package ratecard renders the price tables and a grid of sample quotes
// as an xlsx workbook.
package ratecard

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"cleanbook/internal/pricing"
)

const (
	SheetAddOns       = "Add-ons"
	SheetFrequencies  = "Frequencies"
	SheetSampleQuotes = "Sample Quotes"
)

// SampleHome is one row of the sample quotes sheet.
type SampleHome struct {
	Bedrooms      int
	Bathrooms     int
	HalfBaths     int
	SquareFootage int
}

var DefaultSamples = []SampleHome{
	{Bedrooms: 1, Bathrooms: 1, HalfBaths: 0, SquareFootage: 500},
	{Bedrooms: 1, Bathrooms: 1, HalfBaths: 0, SquareFootage: 750},
	{Bedrooms: 2, Bathrooms: 1, HalfBaths: 0, SquareFootage: 900},
	{Bedrooms: 2, Bathrooms: 2, HalfBaths: 0, SquareFootage: 1200},
	{Bedrooms: 3, Bathrooms: 2, HalfBaths: 0, SquareFootage: 1500},
	{Bedrooms: 3, Bathrooms: 2, HalfBaths: 1, SquareFootage: 1800},
	{Bedrooms: 4, Bathrooms: 2, HalfBaths: 1, SquareFootage: 2200},
	{Bedrooms: 4, Bathrooms: 3, HalfBaths: 1, SquareFootage: 2800},
	{Bedrooms: 5, Bathrooms: 3, HalfBaths: 2, SquareFootage: 3500},
	{Bedrooms: 6, Bathrooms: 4, HalfBaths: 2, SquareFootage: 5000},
}

type styles struct {
	header  int
	money   int
	percent int
}

// Write renders the rate card for samples into w.
func Write(w io.Writer, samples []SampleHome) error {
	const operation = "ratecard.Write"

	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	if err := f.SetSheetName("Sheet1", SheetAddOns); err != nil {
		return fmt.Errorf("%s: rename sheet: %w", operation, err)
	}
	if err := writeAddOns(f, st); err != nil {
		return fmt.Errorf("%s: add-ons: %w", operation, err)
	}

	if _, err := f.NewSheet(SheetFrequencies); err != nil {
		return fmt.Errorf("%s: create sheet: %w", operation, err)
	}
	if err := writeFrequencies(f, st); err != nil {
		return fmt.Errorf("%s: frequencies: %w", operation, err)
	}

	if _, err := f.NewSheet(SheetSampleQuotes); err != nil {
		return fmt.Errorf("%s: create sheet: %w", operation, err)
	}
	if err := writeSamples(f, st, samples); err != nil {
		return fmt.Errorf("%s: sample quotes: %w", operation, err)
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%s: write workbook: %w", operation, err)
	}
	return nil
}

// Bytes is Write into memory, for sending as a document.
func Bytes(samples []SampleHome) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, samples); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("header style: %w", err)
	}

	// built-in number formats: 2 = "0.00", 9 = "0%"
	if st.money, err = f.NewStyle(&excelize.Style{NumFmt: 2}); err != nil {
		return st, fmt.Errorf("money style: %w", err)
	}
	if st.percent, err = f.NewStyle(&excelize.Style{NumFmt: 9}); err != nil {
		return st, fmt.Errorf("percent style: %w", err)
	}
	return st, nil
}

func writeHeader(f *excelize.File, st styles, sheet string, titles ...string) error {
	for i, title := range titles {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(titles), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, st.header)
}

func writeAddOns(f *excelize.File, st styles) error {
	if err := writeHeader(f, st, SheetAddOns, "ID", "Service", "Price"); err != nil {
		return err
	}

	catalog := pricing.AddOns()
	for i, a := range catalog {
		row := i + 2
		if err := f.SetSheetRow(SheetAddOns, fmt.Sprintf("A%d", row), &[]any{a.ID, a.Name, a.Price}); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(SheetAddOns, "C2", fmt.Sprintf("C%d", len(catalog)+1), st.money); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetAddOns, "A", "A", 24); err != nil {
		return err
	}
	return f.SetColWidth(SheetAddOns, "B", "B", 26)
}

func writeFrequencies(f *excelize.File, st styles) error {
	if err := writeHeader(f, st, SheetFrequencies, "ID", "Frequency", "Discount", "Multiplier"); err != nil {
		return err
	}

	freqs := pricing.Frequencies()
	for i, fr := range freqs {
		row := i + 2
		values := []any{string(fr), fr.Label(), fr.Discount(), 1 - fr.Discount()}
		if err := f.SetSheetRow(SheetFrequencies, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
	}

	last := len(freqs) + 1
	if err := f.SetCellStyle(SheetFrequencies, "C2", fmt.Sprintf("C%d", last), st.percent); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetFrequencies, "D2", fmt.Sprintf("D%d", last), st.money); err != nil {
		return err
	}
	return f.SetColWidth(SheetFrequencies, "A", "B", 14)
}

func writeSamples(f *excelize.File, st styles, samples []SampleHome) error {
	freqs := pricing.Frequencies()

	titles := []string{"Bedrooms", "Bathrooms", "Half Baths", "Sq Ft"}
	for _, fr := range freqs {
		titles = append(titles, fr.Label())
	}
	if err := writeHeader(f, st, SheetSampleQuotes, titles...); err != nil {
		return err
	}

	for i, s := range samples {
		row := i + 2
		values := []any{s.Bedrooms, s.Bathrooms, s.HalfBaths, s.SquareFootage}
		for _, fr := range freqs {
			values = append(values, pricing.Calculate(pricing.QuoteRequest{
				Bedrooms:      s.Bedrooms,
				Bathrooms:     s.Bathrooms,
				HalfBaths:     s.HalfBaths,
				SquareFootage: s.SquareFootage,
				Frequency:     fr,
			}))
		}
		if err := f.SetSheetRow(SheetSampleQuotes, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
	}

	if len(samples) == 0 {
		return nil
	}

	lastCol, err := excelize.ColumnNumberToName(len(titles))
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetSampleQuotes, "E2", fmt.Sprintf("%s%d", lastCol, len(samples)+1), st.money)
}
