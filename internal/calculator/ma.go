package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []decimal.Decimal, period int) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, errors.New("period must be positive")
	}
	if len(prices) < period {
		return decimal.Zero, errors.New("not enough data for SMA calculation")
	}
	return average(prices[len(prices)-period:]), nil
}

// WindowAverage returns the mean of all samples, or an error when there are
// none.
func WindowAverage(prices []decimal.Decimal) (decimal.Decimal, error) {
	return CalculateSMA(prices, len(prices))
}

func average(prices []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p)
	}
	return sum.Div(decimal.NewFromInt(int64(len(prices))))
}
