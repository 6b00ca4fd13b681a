// Package format renders amounts the same way on the terminal and in chat
// messages.
package format

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// BTCDigits is the number of decimal places shown for coin quantities.
const BTCDigits = 8

// Currency formats amount in the given ISO currency, e.g. "$1,234.56".
// An empty code means USD. Unknown codes fall back to the plain amount
// followed by the code.
func Currency(amount decimal.Decimal, code string) string {
	if code == "" {
		code = money.USD
	}
	c := money.GetCurrency(code)
	if c == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, c.Code).Display()
}

// USD formats amount as US dollars.
func USD(amount decimal.Decimal) string {
	return Currency(amount, money.USD)
}

// BTC formats a coin quantity with eight decimal places.
func BTC(qty decimal.Decimal) string {
	return qty.StringFixed(BTCDigits) + " BTC"
}

// Fraction formats a 0..1 ratio as a whole percentage, e.g. "75%".
func Fraction(f decimal.Decimal) string {
	return f.Shift(2).StringFixed(0) + "%"
}

// Percent formats pct with an explicit sign, e.g. "+1.25%".
func Percent(pct decimal.Decimal) string {
	s := pct.StringFixed(2)
	if !pct.IsNegative() {
		s = "+" + s
	}
	return s + "%"
}
