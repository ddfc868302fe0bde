// Package valuation marks a purchase ledger to market against a monthly
// price series, producing the portfolio's value over time.
package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/dcasim/internal/domain"
)

// ValuePoint is the mark-to-market portfolio value on one trading date.
type ValuePoint struct {
	Date  string
	Value decimal.Decimal
}

// Portfolio walks every date of the series in order, growing the running
// share balance by whatever the ledger credits on that date, and records
// balance × open price. The output has exactly one point per series date,
// whether or not a purchase happened that month.
//
// Every ledger date must exist in the series; a ledger produced against a
// different series is rejected rather than silently valued at zero.
func Portfolio(series *domain.PriceSeries, ledger domain.PurchaseLedger) ([]ValuePoint, error) {
	for date := range ledger {
		if _, ok := series.OpenOn(date); !ok {
			return nil, fmt.Errorf("ledger date %s does not exist in the price series", date)
		}
	}

	points := series.Points()
	values := make([]ValuePoint, 0, len(points))
	heldShares := decimal.Zero

	for _, p := range points {
		heldShares = heldShares.Add(ledger.SharesOn(p.Date))
		values = append(values, ValuePoint{
			Date:  p.Date,
			Value: heldShares.Mul(p.Open),
		})
	}

	return values, nil
}
