package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// WindowRange returns the highest and lowest sample.
func WindowRange(prices []decimal.Decimal) (high, low decimal.Decimal, err error) {
	if len(prices) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no samples provided")
	}
	return decimal.Max(prices[0], prices[1:]...), decimal.Min(prices[0], prices[1:]...), nil
}

// RangePosition returns where current sits within [low, high], clamped to
// 0..1. A flat range gives 0.5.
func RangePosition(current, high, low decimal.Decimal) (decimal.Decimal, error) {
	if high.Equal(low) {
		return decimal.NewFromFloat(0.5), nil
	}
	if high.LessThan(low) {
		return decimal.Zero, errors.New("high must be >= low")
	}
	pos := current.Sub(low).Div(high.Sub(low))
	if pos.IsNegative() {
		pos = decimal.Zero
	}
	if pos.GreaterThan(decimal.NewFromInt(1)) {
		pos = decimal.NewFromInt(1)
	}
	return pos, nil
}
