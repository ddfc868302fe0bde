package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SharesFor converts a dollar amount into a fractional share count at a given
// per-share price.
//
// Precision: decimal.Decimal.Div rounds the quotient to
// decimal.DivisionPrecision (16) fractional digits. No coarser rounding is
// applied anywhere downstream, so accumulated totals and ratios carry that
// precision through.
func SharesFor(amount, price decimal.Decimal) (decimal.Decimal, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("share price must be positive, got %s", price)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("investment amount cannot be negative, got %s", amount)
	}
	return amount.Div(price), nil
}
