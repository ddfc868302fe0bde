package simulate

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/simaogato/dcasim/internal/domain"
)

// Annual simulates the lump-sum investor: the full yearly amount is invested
// once per year, in targetMonth, for every year in [startYear, endYear].
//
// If targetMonth is RandomMonth, a uniformly random month in [1,12] is drawn
// from rng for each year; rng is only required in that case. Whatever the
// starting month, a month with no trading date rolls the purchase forward one
// month at a time, and the roll-forward starts fresh from targetMonth every
// year — a prior year's fallback never leaks into the next.
func Annual(series *domain.PriceSeries, yearlyAmount decimal.Decimal, startYear, endYear, targetMonth int, rng *rand.Rand) (*domain.SimulationResult, error) {
	if err := validateWindow(yearlyAmount, startYear, endYear); err != nil {
		return nil, err
	}
	if targetMonth != RandomMonth && (targetMonth < 1 || targetMonth > 12) {
		return nil, fmt.Errorf("target month must be in [1,12] or RandomMonth, got %d", targetMonth)
	}
	if targetMonth == RandomMonth && rng == nil {
		return nil, fmt.Errorf("random month selection requires a random source")
	}

	result := &domain.SimulationResult{Ledger: domain.PurchaseLedger{}}

	for year := startYear; year <= endYear; year++ {
		month := targetMonth
		if targetMonth == RandomMonth {
			month = 1 + rng.Intn(12)
		}

		date, err := resolveTradingDate(series, year, month)
		if err != nil {
			return nil, err
		}
		if err := buy(series, result, date, yearlyAmount); err != nil {
			return nil, err
		}
	}

	return result, nil
}
