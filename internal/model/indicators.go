package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountingResult is the state of the holding derived from the ledger at a
// given market price.
type AccountingResult struct {
	CoinsHeld        decimal.Decimal
	CapitalInvested  decimal.Decimal // cost basis of CoinsHeld at average cost
	RealizedProfit   decimal.Decimal
	UnrealizedProfit decimal.Decimal // CoinsHeld*price - CapitalInvested
	TotalProfit      decimal.Decimal // RealizedProfit + UnrealizedProfit
}

// MarketValue returns the value of the coins held at price.
func (r AccountingResult) MarketValue(price decimal.Decimal) decimal.Decimal {
	return r.CoinsHeld.Mul(price)
}

// AverageCost returns the cost basis per coin, zero when nothing is held.
func (r AccountingResult) AverageCost() decimal.Decimal {
	if r.CoinsHeld.IsZero() {
		return decimal.Zero
	}
	return r.CapitalInvested.Div(r.CoinsHeld)
}

// Report holds everything computed for one tick.
type Report struct {
	Symbol         string
	Currency       string // ISO code amounts are quoted in
	Source         string
	Price          decimal.Decimal
	At             time.Time
	Balance        AccountingResult
	GainPct        decimal.Decimal // unrealized gain over capital invested, in percent
	TickDelta      Delta           // against the previous sample
	WindowDiff     Delta           // against the sample one lookback period ago
	WindowLen      int
	WindowCap      int
	WindowHigh     decimal.Decimal
	WindowLow      decimal.Decimal
	WindowAvg      decimal.Decimal
	WindowPosition decimal.Decimal // where Price sits between WindowLow (0) and WindowHigh (1)
}

// WindowFull reports whether the lookback comparison uses a full window.
func (r *Report) WindowFull() bool {
	return r.WindowCap > 0 && r.WindowLen >= r.WindowCap
}
