package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sample is one Monte Carlo trial: a randomly drawn investment window, the
// sub-annual frequency the trial ran with, and the resulting holdings ratio
// (annual investor shares / sub-annual investor shares) over that window.
type Sample struct {
	StartYear    int
	EndYear      int
	TimesPerYear int
	Ratio        decimal.Decimal
}

// Horizon returns the length of the investment window in years.
func (s Sample) Horizon() int {
	return s.EndYear - s.StartYear
}

// Experiment is one completed Monte Carlo run over a single index, with the
// samples in trial order.
type Experiment struct {
	ID           uuid.UUID
	Symbol       string
	TimesPerYear int // sub-annual frequency, or -1 when drawn per trial
	Samples      []Sample
}
