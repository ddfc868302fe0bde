package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/dcasim/internal/adapter/export"
	"github.com/simaogato/dcasim/internal/adapter/marketdata"
	"github.com/simaogato/dcasim/internal/adapter/repository/sqlite"
	"github.com/simaogato/dcasim/internal/domain"
	"github.com/simaogato/dcasim/internal/usecase/montecarlo"
	"github.com/simaogato/dcasim/internal/usecase/pricefeed"
	"github.com/simaogato/dcasim/internal/usecase/simulate"
	"github.com/simaogato/dcasim/internal/usecase/valuation"
)

const (
	defaultIterations = 1000
	firstDataYear     = 1983
	lastDataYear      = 2024
	horizonStartYear  = 2014 // fixed-horizon cross-index comparison starts here
	lumpSumMonth      = 1
	monthlyFrequency  = 12
)

// index pairs a Yahoo Finance symbol with the label used in output files.
type index struct {
	Symbol string
	Label  string
}

var indices = []index{
	{Symbol: "^GSPC", Label: "sp500"},
	{Symbol: "TQQQ", Label: "tqqq"},
	{Symbol: "HIBL", Label: "hibl"},
	{Symbol: "BTC-USD", Label: "btc"},
}

func main() {
	// 1. Configuration from environment (with local-run defaults)
	dataDir := os.Getenv("DCASIM_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	outDir := os.Getenv("DCASIM_OUT_DIR")
	if outDir == "" {
		outDir = "."
	}
	iterations := defaultIterations
	if v := os.Getenv("DCASIM_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("Invalid DCASIM_ITERATIONS %q", v)
		}
		iterations = n
	}
	yearlyAmount := decimal.NewFromInt(12000)
	if v := os.Getenv("DCASIM_YEARLY_AMOUNT"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			log.Fatalf("Invalid DCASIM_YEARLY_AMOUNT %q: %v", v, err)
		}
		yearlyAmount = amount
	}
	seed := time.Now().UnixNano()
	if v := os.Getenv("DCASIM_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("Invalid DCASIM_SEED %q: %v", v, err)
		}
		seed = n
	}
	rng := rand.New(rand.NewSource(seed))
	log.Printf("Random seed: %d", seed)

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data dir %s: %v", dataDir, err)
	}

	// 2. Wire the price feed: SQLite cache in front of Yahoo Finance
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		log.Fatalf("Failed to open price cache: %v", err)
	}
	defer store.Close()

	feed := pricefeed.NewService(sqlite.NewPriceSeriesRepository(store), marketdata.New())

	ctx := context.Background()
	series := make(map[string]*seriesWithMeta, len(indices))
	for _, idx := range indices {
		s, err := feed.Get(ctx, idx.Symbol, firstDataYear, lastDataYear)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", idx.Symbol, err)
		}
		if gaps := s.Gaps(); len(gaps) > 0 {
			log.Printf("WARNING: %s has %d month gaps (first: %s)", idx.Symbol, len(gaps), gaps[0])
		}
		log.Printf("Loaded %s: %d months, %d-%d", idx.Symbol, s.Len(), s.FirstYear(), s.LastYear())
		series[idx.Label] = &seriesWithMeta{index: idx, series: s}
	}

	sp500 := series["sp500"]

	// 3. Full-span comparison on the S&P 500: yearly lump sum each January
	//    vs the same amount spread over 12 monthly purchases
	annual, err := simulate.Annual(sp500.series, yearlyAmount, sp500.series.FirstYear(), sp500.series.LastYear(), lumpSumMonth, nil)
	if err != nil {
		log.Fatalf("Annual simulation failed: %v", err)
	}
	monthly, err := simulate.SubAnnual(sp500.series, yearlyAmount, sp500.series.FirstYear(), sp500.series.LastYear(), monthlyFrequency)
	if err != nil {
		log.Fatalf("Sub-annual simulation failed: %v", err)
	}

	log.Printf("Total shares held by yearly investor:  %s", annual.TotalShares)
	log.Printf("Total shares held by monthly investor: %s", monthly.TotalShares)
	log.Printf("Holdings ratio (yearly/monthly):       %s", annual.TotalShares.Div(monthly.TotalShares))

	// 4. Mark both ledgers to market and hand the series to the plot consumer
	for name, result := range map[string]*domain.SimulationResult{
		"yearly":  annual,
		"monthly": monthly,
	} {
		values, err := valuation.Portfolio(sp500.series, result.Ledger)
		if err != nil {
			log.Fatalf("Valuation of %s ledger failed: %v", name, err)
		}
		path := filepath.Join(outDir, fmt.Sprintf("sp500_%s_portfolio_values.csv", name))
		if err := export.ValuesToFile(path, values); err != nil {
			log.Fatalf("Failed to export %s values: %v", name, err)
		}
		log.Printf("Wrote %s", path)
	}

	// 5. Monte Carlo sweeps on the S&P 500 at biannual, quarterly and
	//    monthly sub-annual frequencies
	driver := montecarlo.NewDriver(sp500.series, sp500.index.Symbol, rng)
	for _, frequency := range []int{2, 4, 12} {
		experiment, err := driver.Run(sp500.series.FirstYear(), yearlyAmount, iterations, frequency)
		if err != nil {
			log.Fatalf("Monte Carlo (frequency %d) failed: %v", frequency, err)
		}
		path := filepath.Join(outDir, fmt.Sprintf("sp500_montecarlo_freq%d.csv", frequency))
		if err := export.SamplesToFile(path, experiment.Samples); err != nil {
			log.Fatalf("Failed to export experiment %s: %v", experiment.ID, err)
		}
		log.Printf("Experiment %s: %d samples at frequency %d -> %s", experiment.ID, len(experiment.Samples), frequency, path)
	}

	// 6. Fixed-horizon comparison across all indices: investors who started
	//    in 2014 (or the index's first full year, whichever is later)
	for _, idx := range indices {
		s := series[idx.Label].series
		start := horizonStartYear
		if s.FirstYear() > start {
			start = s.FirstYear()
		}

		annual, err := simulate.Annual(s, yearlyAmount, start, s.LastYear(), lumpSumMonth, nil)
		if err != nil {
			log.Fatalf("Annual simulation for %s failed: %v", idx.Symbol, err)
		}
		monthly, err := simulate.SubAnnual(s, yearlyAmount, start, s.LastYear(), monthlyFrequency)
		if err != nil {
			log.Fatalf("Sub-annual simulation for %s failed: %v", idx.Symbol, err)
		}
		log.Printf("%-8s started %d, yearly/monthly ratio: %s",
			idx.Symbol, start, annual.TotalShares.Div(monthly.TotalShares))
	}

	// 7. Monte Carlo on the high-beta indices at monthly frequency
	highBetaIterations := iterations / 2
	if highBetaIterations == 0 {
		highBetaIterations = 1
	}
	for _, label := range []string{"tqqq", "btc"} {
		s := series[label]
		driver := montecarlo.NewDriver(s.series, s.index.Symbol, rng)
		experiment, err := driver.Run(s.series.FirstYear(), yearlyAmount, highBetaIterations, monthlyFrequency)
		if err != nil {
			log.Fatalf("Monte Carlo for %s failed: %v", s.index.Symbol, err)
		}
		path := filepath.Join(outDir, fmt.Sprintf("%s_montecarlo_freq%d.csv", label, monthlyFrequency))
		if err := export.SamplesToFile(path, experiment.Samples); err != nil {
			log.Fatalf("Failed to export experiment %s: %v", experiment.ID, err)
		}
		log.Printf("Experiment %s: %d samples for %s -> %s", experiment.ID, len(experiment.Samples), s.index.Symbol, path)
	}
}

type seriesWithMeta struct {
	index  index
	series *domain.PriceSeries
}
