package calculator

import (
	"BitcoinTracker/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AbsoluteDelta returns current - previous.
func AbsoluteDelta(current, previous decimal.Decimal) decimal.Decimal {
	return current.Sub(previous)
}

// PercentageChange returns the change from previous to current in percent.
// It returns 0 when previous is 0 (cold start) instead of failing.
func PercentageChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

// NewDelta builds the absolute/percent pair shown to the user.
func NewDelta(current, previous decimal.Decimal) model.Delta {
	return model.Delta{
		Absolute: AbsoluteDelta(current, previous),
		Percent:  PercentageChange(current, previous),
	}
}

// GainPercentage returns the unrealized gain relative to the capital still
// invested, in percent. It is 0 when nothing is invested.
func GainPercentage(unrealized, capitalInvested decimal.Decimal) decimal.Decimal {
	if !capitalInvested.IsPositive() {
		return decimal.Zero
	}
	return unrealized.Div(capitalInvested).Mul(hundred)
}
