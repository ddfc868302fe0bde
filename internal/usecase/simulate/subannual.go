package simulate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/dcasim/internal/domain"
)

// SubAnnual simulates the spread-out investor: the yearly amount is split
// into timesPerYear equal purchases per year for every year in
// [startYear, endYear]. Purchases land on evenly spaced months ending in
// December: timesPerYear=4 buys in March, June, September and December,
// never January.
//
// Each purchase event rolls forward independently when its month has no
// trading date, keeping its single per-event amount. A roll-forward can land
// two events on the same date; PurchaseLedger.Credit accumulates both, so the
// ledger sum and TotalShares stay equal even then.
func SubAnnual(series *domain.PriceSeries, yearlyAmount decimal.Decimal, startYear, endYear, timesPerYear int) (*domain.SimulationResult, error) {
	if err := validateWindow(yearlyAmount, startYear, endYear); err != nil {
		return nil, err
	}
	if !validFrequency(timesPerYear) {
		return nil, fmt.Errorf("times per year must be one of %v, got %d", ValidFrequencies, timesPerYear)
	}

	monthSpan := 12 / timesPerYear
	eventAmount := yearlyAmount.Div(decimal.NewFromInt(int64(timesPerYear)))

	result := &domain.SimulationResult{Ledger: domain.PurchaseLedger{}}

	for year := startYear; year <= endYear; year++ {
		for event := 1; event <= timesPerYear; event++ {
			date, err := resolveTradingDate(series, year, event*monthSpan)
			if err != nil {
				return nil, err
			}
			if err := buy(series, result, date, eventAmount); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func validFrequency(timesPerYear int) bool {
	for _, f := range ValidFrequencies {
		if timesPerYear == f {
			return true
		}
	}
	return false
}
