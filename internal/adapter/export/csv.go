// Package export writes simulation outputs as CSV for the external plotting
// consumer. Chart rendering itself happens outside this repository.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/simaogato/dcasim/internal/domain"
	"github.com/simaogato/dcasim/internal/usecase/valuation"
)

// WriteSamples emits Monte Carlo samples, one row per trial, with the horizon
// precomputed so the plotting side can scatter ratio against duration
// directly.
func WriteSamples(w io.Writer, samples []domain.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"start_year", "end_year", "horizon_years", "times_per_year", "ratio"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.StartYear),
			strconv.Itoa(s.EndYear),
			strconv.Itoa(s.Horizon()),
			strconv.Itoa(s.TimesPerYear),
			s.Ratio.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteValues emits a portfolio value time series, one row per series month.
func WriteValues(w io.Writer, values []valuation.ValuePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "value"}); err != nil {
		return err
	}
	for _, v := range values {
		if err := cw.Write([]string{v.Date, v.Value.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SamplesToFile writes samples to a CSV file, truncating any existing file.
func SamplesToFile(path string, samples []domain.Sample) error {
	return toFile(path, func(w io.Writer) error { return WriteSamples(w, samples) })
}

// ValuesToFile writes a value series to a CSV file, truncating any existing
// file.
func ValuesToFile(path string, values []valuation.ValuePoint) error {
	return toFile(path, func(w io.Writer) error { return WriteValues(w, values) })
}

func toFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
