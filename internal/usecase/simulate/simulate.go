// Package simulate implements the two dollar-cost-averaging strategies being
// compared: a single annual lump-sum purchase and several smaller purchases
// spread evenly across the year. Both walk a monthly price series and produce
// a purchase ledger plus a running total of shares held.
package simulate

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/dcasim/internal/domain"
)

// RandomMonth makes the annual strategy pick a uniformly random purchase
// month in [1,12] each year instead of a fixed one.
const RandomMonth = -1

// ErrYearExhausted signals that an entire year had no trading date in any
// month from the target month through December. The source series is presumed
// malformed; the simulation is aborted rather than skipping the year.
var ErrYearExhausted = errors.New("no trading dates remain in year")

// ValidFrequencies are the supported sub-annual purchase counts per year.
// Each divides 12 evenly so purchases land on whole calendar months.
var ValidFrequencies = []int{2, 3, 4, 6, 12}

// resolveTradingDate finds the trading date for (year, month), rolling the
// target forward one month at a time while the series has no date for it.
// Running past December is fatal: a full year with zero trading days is a
// data-integrity fault, not a recoverable gap.
func resolveTradingDate(series *domain.PriceSeries, year, month int) (string, error) {
	for cursor := month; cursor <= 12; cursor++ {
		date, err := series.ResolveMonth(year, cursor)
		if err == nil {
			return date, nil
		}
		if !errors.Is(err, domain.ErrDateNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("year %d: %w", year, ErrYearExhausted)
}

// validateWindow rejects malformed simulation windows and amounts up front so
// they surface as configuration errors rather than empty results.
func validateWindow(yearlyAmount decimal.Decimal, startYear, endYear int) error {
	if yearlyAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("yearly investment must be positive, got %s", yearlyAmount)
	}
	if endYear < startYear {
		return fmt.Errorf("end year %d is before start year %d", endYear, startYear)
	}
	return nil
}

// buy converts one investment event into shares at the price recorded for the
// trading date and credits it to the result.
func buy(series *domain.PriceSeries, result *domain.SimulationResult, date string, amount decimal.Decimal) error {
	open, ok := series.OpenOn(date)
	if !ok {
		return fmt.Errorf("resolved trading date %s has no recorded price", date)
	}
	shares, err := domain.SharesFor(amount, open)
	if err != nil {
		return err
	}
	result.Ledger.Credit(date, shares)
	result.TotalShares = result.TotalShares.Add(shares)
	result.Events++
	return nil
}
