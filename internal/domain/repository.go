package domain

import (
	"context"
	"errors"
)

// ErrSeriesNotCached is returned by PriceSeriesRepository.Load when no series
// has been saved for the requested symbol.
var ErrSeriesNotCached = errors.New("no cached price series for symbol")

// PriceSeriesRepository defines the interface for price series persistence.
// Only acquired input data is cached; simulation outputs are never persisted.
type PriceSeriesRepository interface {
	// Save stores the monthly series for a symbol, replacing any prior copy.
	Save(ctx context.Context, symbol string, series *PriceSeries) error

	// Load retrieves the monthly series for a symbol.
	// Returns ErrSeriesNotCached if the symbol has never been saved.
	Load(ctx context.Context, symbol string) (*PriceSeries, error)
}

// MarketDataSource defines the interface for acquiring monthly price history
// from an external provider.
type MarketDataSource interface {
	// MonthlyOpens fetches the first-trading-day-of-month open prices for a
	// symbol covering [firstYear, lastYear]. The returned series starts at
	// the provider's first full calendar year of data, which may be later
	// than firstYear.
	MonthlyOpens(ctx context.Context, symbol string, firstYear, lastYear int) (*PriceSeries, error)
}
