package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/dcasim/internal/domain"
)

// priceSeriesRepository implements domain.PriceSeriesRepository
type priceSeriesRepository struct {
	store *Store
}

// NewPriceSeriesRepository creates a new price series repository backed by
// the SQLite store.
func NewPriceSeriesRepository(store *Store) domain.PriceSeriesRepository {
	return &priceSeriesRepository{store: store}
}

// Save stores the monthly series for a symbol, replacing any prior copy.
// The whole replacement runs in one transaction so a failed run never leaves
// a half-written series behind.
func (r *priceSeriesRepository) Save(ctx context.Context, symbol string, series *domain.PriceSeries) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_prices WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("failed to clear prior series for %s: %w", symbol, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO monthly_prices (symbol, date, open) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range series.Points() {
		// Stored as text to keep the decimal exact.
		if _, err := stmt.ExecContext(ctx, symbol, p.Date, p.Open.String()); err != nil {
			return fmt.Errorf("failed to insert price for %s on %s: %w", symbol, p.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit series for %s: %w", symbol, err)
	}
	return nil
}

// Load retrieves the monthly series for a symbol.
func (r *priceSeriesRepository) Load(ctx context.Context, symbol string) (*domain.PriceSeries, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT date, open FROM monthly_prices WHERE symbol = ? ORDER BY date`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query series for %s: %w", symbol, err)
	}
	defer rows.Close()

	var points []domain.PricePoint
	for rows.Next() {
		var date, openStr string
		if err := rows.Scan(&date, &openStr); err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		open, err := decimal.NewFromString(openStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored open %q for %s: %w", openStr, symbol, err)
		}
		points = append(points, domain.PricePoint{Date: date, Open: open})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read series rows for %s: %w", symbol, err)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeriesNotCached, symbol)
	}

	return domain.NewPriceSeries(points)
}
