package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDateNotFound signals that a (year, month) pair has no trading date in a
// PriceSeries. It is a recoverable condition: simulators handle it by rolling
// the purchase forward to the next month.
var ErrDateNotFound = errors.New("no trading date recorded for month")

// PricePoint is a single monthly observation: the first trading day of a
// calendar month and the index open price on that day.
type PricePoint struct {
	Date string // ISO date, "YYYY-MM-DD"
	Open decimal.Decimal
}

// PriceSeries is an ordered, read-only monthly price history for one index.
// It holds at most one entry per calendar month, in increasing date order.
// Month gaps are allowed at construction time (missing months are exactly
// what the roll-forward retry in the simulators exists for); callers that
// want to treat gaps as a data fault can inspect Gaps().
type PriceSeries struct {
	points    []PricePoint
	openByDay map[string]decimal.Decimal
	firstYear int
	lastYear  int
}

// NewPriceSeries validates the raw points and builds a PriceSeries.
// Rules enforced here:
//   - at least one point
//   - every date parses as YYYY-MM-DD
//   - every open price is strictly positive
//   - dates strictly increase, with at most one point per calendar month
func NewPriceSeries(points []PricePoint) (*PriceSeries, error) {
	if len(points) == 0 {
		return nil, errors.New("price series must have at least one point")
	}

	series := &PriceSeries{
		points:    make([]PricePoint, len(points)),
		openByDay: make(map[string]decimal.Decimal, len(points)),
	}
	copy(series.points, points)

	prevMonth := 0 // year*12 + month of the previous point
	for i, p := range series.points {
		day, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("price series date %q is not a valid ISO date: %w", p.Date, err)
		}
		if p.Open.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("price series open for %s must be positive, got %s", p.Date, p.Open)
		}

		month := day.Year()*12 + int(day.Month())
		if month <= prevMonth {
			return nil, fmt.Errorf("price series dates must increase with one entry per month, violated at %s", p.Date)
		}
		prevMonth = month

		series.openByDay[p.Date] = p.Open
		if i == 0 {
			series.firstYear = day.Year()
		}
		series.lastYear = day.Year()
	}

	return series, nil
}

// Len returns the number of monthly points in the series.
func (s *PriceSeries) Len() int {
	return len(s.points)
}

// Points returns a copy of the ordered monthly points.
func (s *PriceSeries) Points() []PricePoint {
	out := make([]PricePoint, len(s.points))
	copy(out, s.points)
	return out
}

// OpenOn returns the open price recorded for an exact trading date.
func (s *PriceSeries) OpenOn(date string) (decimal.Decimal, bool) {
	open, ok := s.openByDay[date]
	return open, ok
}

// FirstYear returns the year of the earliest point in the series.
func (s *PriceSeries) FirstYear() int {
	return s.firstYear
}

// LastYear returns the year of the latest point in the series.
func (s *PriceSeries) LastYear() int {
	return s.lastYear
}

// ResolveMonth returns the trading date recorded for (year, month).
// Years outside the series coverage and months outside [1,12] resolve to
// ErrDateNotFound rather than an invalid-argument failure: the caller's
// roll-forward loop treats both the same way.
//
// The series is date-ordered, so the first prefix match is the earliest
// (and authoritative) date for the month.
func (s *PriceSeries) ResolveMonth(year, month int) (string, error) {
	if year < s.firstYear || year > s.lastYear {
		return "", ErrDateNotFound
	}
	if month < 1 || month > 12 {
		return "", ErrDateNotFound
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	for _, p := range s.points {
		if len(p.Date) >= len(prefix) && p.Date[:len(prefix)] == prefix {
			return p.Date, nil
		}
	}
	return "", ErrDateNotFound
}

// Gaps lists the calendar months ("YYYY-MM") between the first and last
// point that have no trading date. A non-empty result means the upstream
// data acquisition produced a hole in the history.
func (s *PriceSeries) Gaps() []string {
	var gaps []string
	present := make(map[string]bool, len(s.points))
	for _, p := range s.points {
		present[p.Date[:7]] = true
	}

	first, _ := time.Parse("2006-01-02", s.points[0].Date)
	last, _ := time.Parse("2006-01-02", s.points[len(s.points)-1].Date)
	first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	last = time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		if !present[key] {
			gaps = append(gaps, key)
		}
	}
	return gaps
}
