// Package pricefeed resolves the monthly price series for a symbol,
// preferring the local cache and falling back to the external market-data
// provider.
package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/simaogato/dcasim/internal/domain"
)

// Service handles price series acquisition
type Service struct {
	Repo   domain.PriceSeriesRepository
	Source domain.MarketDataSource
}

// NewService creates a new pricefeed Service instance
func NewService(repo domain.PriceSeriesRepository, source domain.MarketDataSource) *Service {
	return &Service{Repo: repo, Source: source}
}

// Get returns the monthly series for a symbol covering [firstYear, lastYear].
// Logic: load from the repository first; on a cache miss fetch from the
// market-data source and save the result for the next run. A failed save is
// logged but does not discard the freshly fetched series.
func (s *Service) Get(ctx context.Context, symbol string, firstYear, lastYear int) (*domain.PriceSeries, error) {
	series, err := s.Repo.Load(ctx, symbol)
	if err == nil {
		return series, nil
	}
	if !errors.Is(err, domain.ErrSeriesNotCached) {
		return nil, fmt.Errorf("failed to load cached series for %s: %w", symbol, err)
	}

	series, err = s.Source.MonthlyOpens(ctx, symbol, firstYear, lastYear)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch series for %s: %w", symbol, err)
	}

	if err := s.Repo.Save(ctx, symbol, series); err != nil {
		log.Printf("[pricefeed] failed to cache series for %s: %v", symbol, err)
	}

	return series, nil
}
