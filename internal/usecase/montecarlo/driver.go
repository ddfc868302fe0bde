// Package montecarlo drives repeated randomized strategy comparisons: each
// trial draws a random investment window (and optionally a random sub-annual
// frequency), runs both strategies over it, and records the ratio of total
// shares accumulated.
package montecarlo

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/dcasim/internal/domain"
	"github.com/simaogato/dcasim/internal/usecase/simulate"
)

// RandomFrequency makes the driver draw a fresh sub-annual frequency from
// simulate.ValidFrequencies for every trial.
const RandomFrequency = -1

// lumpSumMonth is the annual investor's fixed purchase month (January).
const lumpSumMonth = 1

// Driver runs Monte Carlo sweeps against one price series. The random source
// is injected so a fixed seed reproduces the whole sweep.
type Driver struct {
	series *domain.PriceSeries
	symbol string
	rng    *rand.Rand
}

// NewDriver creates a Driver over a series.
func NewDriver(series *domain.PriceSeries, symbol string, rng *rand.Rand) *Driver {
	return &Driver{series: series, symbol: symbol, rng: rng}
}

// Run executes iterations trials and collects one Sample per trial into an
// Experiment.
//
// Per trial: start and end years are drawn uniformly and independently from
// [firstYear, series.LastYear()], redrawing both while end < start — a
// single-year window (end == start) is valid and kept. The annual investor
// buys every January; the sub-annual investor buys timesPerYear times per
// year, with the frequency drawn per trial when timesPerYear is
// RandomFrequency. The recorded ratio is annual total shares divided by
// sub-annual total shares.
func (d *Driver) Run(firstYear int, yearlyAmount decimal.Decimal, iterations, timesPerYear int) (*domain.Experiment, error) {
	if d.rng == nil {
		return nil, fmt.Errorf("monte carlo driver requires a random source")
	}
	if timesPerYear != RandomFrequency && !validFrequency(timesPerYear) {
		return nil, fmt.Errorf("sub-annual frequency must be one of %v or RandomFrequency, got %d", simulate.ValidFrequencies, timesPerYear)
	}
	lastYear := d.series.LastYear()
	if firstYear < d.series.FirstYear() || firstYear > lastYear {
		return nil, fmt.Errorf("first year %d is outside series coverage [%d,%d]", firstYear, d.series.FirstYear(), lastYear)
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	experiment := &domain.Experiment{
		ID:           uuid.New(),
		Symbol:       d.symbol,
		TimesPerYear: timesPerYear,
		Samples:      make([]domain.Sample, 0, iterations),
	}

	span := lastYear - firstYear + 1
	for trial := 0; trial < iterations; trial++ {
		frequency := timesPerYear
		if timesPerYear == RandomFrequency {
			frequency = simulate.ValidFrequencies[d.rng.Intn(len(simulate.ValidFrequencies))]
		}

		// Rejection sampling: redraw both years until the window is not
		// inverted. Terminates with probability 1.
		startYear := firstYear
		endYear := firstYear - 1
		for endYear < startYear {
			startYear = firstYear + d.rng.Intn(span)
			endYear = firstYear + d.rng.Intn(span)
		}

		annual, err := simulate.Annual(d.series, yearlyAmount, startYear, endYear, lumpSumMonth, nil)
		if err != nil {
			return nil, fmt.Errorf("trial %d (window %d-%d): annual strategy: %w", trial, startYear, endYear, err)
		}
		subAnnual, err := simulate.SubAnnual(d.series, yearlyAmount, startYear, endYear, frequency)
		if err != nil {
			return nil, fmt.Errorf("trial %d (window %d-%d): sub-annual strategy: %w", trial, startYear, endYear, err)
		}

		if subAnnual.TotalShares.IsZero() {
			return nil, fmt.Errorf("trial %d (window %d-%d): sub-annual strategy accumulated zero shares", trial, startYear, endYear)
		}

		experiment.Samples = append(experiment.Samples, domain.Sample{
			StartYear:    startYear,
			EndYear:      endYear,
			TimesPerYear: frequency,
			Ratio:        annual.TotalShares.Div(subAnnual.TotalShares),
		})
	}

	return experiment, nil
}

func validFrequency(timesPerYear int) bool {
	for _, f := range simulate.ValidFrequencies {
		if timesPerYear == f {
			return true
		}
	}
	return false
}
