// Package marketdata implements domain.MarketDataSource against the Yahoo
// Finance chart API, producing one open price per calendar month dated on the
// month's first trading day.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/dcasim/internal/domain"
)

// DefaultBaseURL is the public Yahoo Finance query endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// userAgent identifies the client; Yahoo rejects requests without one.
const userAgent = "dcasim/1.0"

// Client fetches monthly price history from Yahoo Finance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// New creates a new Yahoo Finance client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// chartResponse mirrors the subset of the v8 chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open []*float64 `json:"open"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// MonthlyOpens fetches monthly bars for a symbol covering
// [firstYear, lastYear] and converts them into a PriceSeries. Each bar's
// timestamp is the month's first trading day and its open is that day's open
// price. If the provider's data begins mid-year, that leading partial year is
// dropped so the series always starts at a January.
func (c *Client) MonthlyOpens(ctx context.Context, symbol string, firstYear, lastYear int) (*domain.PriceSeries, error) {
	from := time.Date(firstYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(lastYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	url := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1mo",
		c.baseURL, symbol, from.Unix(), to.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building chart request for %s: %w", symbol, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching chart for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading chart response for %s: %w", symbol, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request for %s returned status %d", symbol, resp.StatusCode)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("parsing chart response for %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s (%s)",
			symbol, chart.Chart.Error.Description, chart.Chart.Error.Code)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart response for %s contains no quote data", symbol)
	}

	result := chart.Chart.Result[0]
	opens := result.Indicators.Quote[0].Open
	if len(opens) != len(result.Timestamp) {
		return nil, fmt.Errorf("chart response for %s has %d opens for %d timestamps",
			symbol, len(opens), len(result.Timestamp))
	}

	points := make([]domain.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if opens[i] == nil || *opens[i] <= 0 {
			// Null bars show up for halted or not-yet-listed months.
			continue
		}
		points = append(points, domain.PricePoint{
			Date: time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Open: decimal.NewFromFloat(*opens[i]),
		})
	}
	points = trimLeadingPartialYear(points)
	if len(points) == 0 {
		return nil, fmt.Errorf("chart response for %s yielded no usable monthly bars", symbol)
	}

	return domain.NewPriceSeries(points)
}

// trimLeadingPartialYear drops the first calendar year of points when its
// data does not begin in January, so every consumer sees full years only.
func trimLeadingPartialYear(points []domain.PricePoint) []domain.PricePoint {
	if len(points) == 0 {
		return points
	}
	first, err := time.Parse("2006-01-02", points[0].Date)
	if err != nil || first.Month() == time.January {
		return points
	}
	for i, p := range points {
		day, err := time.Parse("2006-01-02", p.Date)
		if err == nil && day.Year() > first.Year() {
			return points[i:]
		}
	}
	return nil
}
