package domain

import "github.com/shopspring/decimal"

// PurchaseLedger maps a trading date to the fractional shares bought on that
// date. Built incrementally by a strategy simulator and read-only afterwards.
// Ledger dates are always a subset of the PriceSeries dates the simulation
// ran against.
type PurchaseLedger map[string]decimal.Decimal

// Credit records shares bought on a trading date. Two purchase events can
// resolve to the same date when a roll-forward lands on a later event's
// month; their amounts accumulate so the ledger sum always matches the
// simulation's running total.
func (l PurchaseLedger) Credit(date string, shares decimal.Decimal) {
	l[date] = l[date].Add(shares)
}

// SharesOn returns the shares bought on a date, zero if none.
func (l PurchaseLedger) SharesOn(date string) decimal.Decimal {
	return l[date]
}

// Sum returns the total shares across all ledger dates.
func (l PurchaseLedger) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, shares := range l {
		total = total.Add(shares)
	}
	return total
}

// SimulationResult is the outcome of one strategy simulation: the purchase
// ledger, the running total of shares held (kept redundantly for O(1)
// access), and the number of purchase events that were credited.
type SimulationResult struct {
	Ledger      PurchaseLedger
	TotalShares decimal.Decimal
	Events      int
}
