package montecarlo

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/dcasim/internal/domain"
	"github.com/simaogato/dcasim/internal/usecase/simulate"
)

// varyingSeries builds a gapless monthly series whose price drifts upward so
// the two strategies genuinely diverge.
func varyingSeries(t *testing.T, startYear, endYear int) *domain.PriceSeries {
	t.Helper()
	var points []domain.PricePoint
	price := int64(100)
	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			points = append(points, domain.PricePoint{
				Date: fmt.Sprintf("%04d-%02d-01", year, month),
				Open: decimal.NewFromInt(price),
			})
			price += 3
		}
	}
	series, err := domain.NewPriceSeries(points)
	require.NoError(t, err)
	return series
}

func TestRun_SamplesStayInsideTheYearBounds(t *testing.T) {
	series := varyingSeries(t, 2000, 2010)
	driver := NewDriver(series, "^GSPC", rand.New(rand.NewSource(7)))

	experiment, err := driver.Run(2000, decimal.NewFromInt(12000), 250, 4)
	require.NoError(t, err)

	require.Len(t, experiment.Samples, 250)
	assert.Equal(t, "^GSPC", experiment.Symbol)
	assert.Equal(t, 4, experiment.TimesPerYear)
	for _, s := range experiment.Samples {
		assert.GreaterOrEqual(t, s.EndYear, s.StartYear)
		assert.GreaterOrEqual(t, s.StartYear, 2000)
		assert.LessOrEqual(t, s.EndYear, 2010)
		assert.Equal(t, 4, s.TimesPerYear)
		assert.True(t, s.Ratio.GreaterThan(decimal.Zero))
	}
}

func TestRun_RandomFrequencyDrawsFromValidSet(t *testing.T) {
	series := varyingSeries(t, 2000, 2010)
	driver := NewDriver(series, "^GSPC", rand.New(rand.NewSource(11)))

	experiment, err := driver.Run(2000, decimal.NewFromInt(12000), 200, RandomFrequency)
	require.NoError(t, err)

	assert.Equal(t, RandomFrequency, experiment.TimesPerYear)
	seen := map[int]bool{}
	for _, s := range experiment.Samples {
		assert.Contains(t, simulate.ValidFrequencies, s.TimesPerYear)
		seen[s.TimesPerYear] = true
	}
	// 200 draws over 5 values: every frequency should show up.
	assert.Len(t, seen, len(simulate.ValidFrequencies))
}

func TestRun_IsDeterministicUnderAFixedSeed(t *testing.T) {
	series := varyingSeries(t, 2000, 2010)
	amount := decimal.NewFromInt(12000)

	first, err := NewDriver(series, "^GSPC", rand.New(rand.NewSource(99))).Run(2000, amount, 50, RandomFrequency)
	require.NoError(t, err)
	second, err := NewDriver(series, "^GSPC", rand.New(rand.NewSource(99))).Run(2000, amount, 50, RandomFrequency)
	require.NoError(t, err)

	require.Len(t, second.Samples, len(first.Samples))
	for i := range first.Samples {
		assert.Equal(t, first.Samples[i].StartYear, second.Samples[i].StartYear)
		assert.Equal(t, first.Samples[i].EndYear, second.Samples[i].EndYear)
		assert.Equal(t, first.Samples[i].TimesPerYear, second.Samples[i].TimesPerYear)
		assert.True(t, first.Samples[i].Ratio.Equal(second.Samples[i].Ratio))
	}

	// Distinct runs are still distinct experiments.
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRun_SingleYearSeriesAlwaysYieldsUnitRatio(t *testing.T) {
	// Every window collapses to (2005, 2005) and at a flat price both
	// strategies buy the same number of shares.
	var points []domain.PricePoint
	for month := 1; month <= 12; month++ {
		points = append(points, domain.PricePoint{
			Date: fmt.Sprintf("2005-%02d-01", month),
			Open: decimal.NewFromInt(100),
		})
	}
	series, err := domain.NewPriceSeries(points)
	require.NoError(t, err)

	driver := NewDriver(series, "^GSPC", rand.New(rand.NewSource(3)))
	experiment, err := driver.Run(2005, decimal.NewFromInt(1200), 20, 12)
	require.NoError(t, err)

	for _, s := range experiment.Samples {
		assert.Equal(t, 2005, s.StartYear)
		assert.Equal(t, 2005, s.EndYear)
		assert.True(t, s.Ratio.Equal(decimal.NewFromInt(1)), s.Ratio.String())
	}
}

func TestRun_InvalidConfiguration(t *testing.T) {
	series := varyingSeries(t, 2000, 2010)
	amount := decimal.NewFromInt(12000)

	t.Run("missing random source", func(t *testing.T) {
		_, err := NewDriver(series, "^GSPC", nil).Run(2000, amount, 10, 4)
		assert.Error(t, err)
	})

	t.Run("unsupported frequency", func(t *testing.T) {
		_, err := NewDriver(series, "^GSPC", rand.New(rand.NewSource(1))).Run(2000, amount, 10, 5)
		assert.Error(t, err)
	})

	t.Run("first year outside coverage", func(t *testing.T) {
		_, err := NewDriver(series, "^GSPC", rand.New(rand.NewSource(1))).Run(1999, amount, 10, 4)
		assert.Error(t, err)

		_, err = NewDriver(series, "^GSPC", rand.New(rand.NewSource(1))).Run(2011, amount, 10, 4)
		assert.Error(t, err)
	})

	t.Run("non-positive iterations", func(t *testing.T) {
		_, err := NewDriver(series, "^GSPC", rand.New(rand.NewSource(1))).Run(2000, amount, 0, 4)
		assert.Error(t, err)
	})
}
