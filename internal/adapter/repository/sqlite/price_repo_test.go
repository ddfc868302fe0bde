package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/dcasim/internal/domain"
)

func newTestRepo(t *testing.T) domain.PriceSeriesRepository {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewPriceSeriesRepository(store)
}

func sampleSeries(t *testing.T) *domain.PriceSeries {
	t.Helper()
	series, err := domain.NewPriceSeries([]domain.PricePoint{
		{Date: "2020-01-02", Open: decimal.RequireFromString("3257.85")},
		{Date: "2020-02-03", Open: decimal.RequireFromString("3235.66")},
		{Date: "2020-03-02", Open: decimal.RequireFromString("2974.28")},
	})
	require.NoError(t, err)
	return series
}

func TestPriceSeriesRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "^GSPC", sampleSeries(t)))

	loaded, err := repo.Load(ctx, "^GSPC")
	require.NoError(t, err)

	require.Equal(t, 3, loaded.Len())
	open, ok := loaded.OpenOn("2020-02-03")
	require.True(t, ok)
	assert.Equal(t, "3235.66", open.String())
	assert.Equal(t, 2020, loaded.FirstYear())
}

func TestPriceSeriesRepository_LoadUnknownSymbol(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Load(ctx, "TQQQ")
	assert.ErrorIs(t, err, domain.ErrSeriesNotCached)
}

func TestPriceSeriesRepository_SaveReplacesPriorSeries(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "^GSPC", sampleSeries(t)))

	replacement, err := domain.NewPriceSeries([]domain.PricePoint{
		{Date: "2021-01-04", Open: decimal.RequireFromString("3764.61")},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, "^GSPC", replacement))

	loaded, err := repo.Load(ctx, "^GSPC")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	_, ok := loaded.OpenOn("2020-01-02")
	assert.False(t, ok)
}

func TestPriceSeriesRepository_SymbolsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "^GSPC", sampleSeries(t)))

	_, err := repo.Load(ctx, "BTC-USD")
	assert.ErrorIs(t, err, domain.ErrSeriesNotCached)
}
