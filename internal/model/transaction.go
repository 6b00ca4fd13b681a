package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TxKind tells which side of the market a transaction was on.
type TxKind string

const (
	TxBuy  TxKind = "buy"
	TxSell TxKind = "sell"
)

// ParseTxKind parses a ledger "type" tag. It is case-insensitive.
func ParseTxKind(s string) (TxKind, error) {
	switch TxKind(strings.ToLower(strings.TrimSpace(s))) {
	case TxBuy:
		return TxBuy, nil
	case TxSell:
		return TxSell, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is one ledger entry.
//
// For a buy, USDValue is the total cost paid and PriceAtTransaction is
// informational. For a sell, PriceAtTransaction drives the proceeds and
// USDValue is kept for audit only. BTCQuantity is always positive.
type Transaction struct {
	Kind               TxKind
	USDValue           decimal.Decimal
	BTCQuantity        decimal.Decimal
	PriceAtTransaction decimal.Decimal
	Date               time.Time // zero when the ledger does not carry dates
	Note               string
}

// Proceeds returns what a sell brought in at its own market price.
func (t Transaction) Proceeds() decimal.Decimal {
	return t.PriceAtTransaction.Mul(t.BTCQuantity)
}

func (t Transaction) String() string {
	on := "-"
	if !t.Date.IsZero() {
		on = t.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%s %s %s BTC ($%s)", on, t.Kind, t.BTCQuantity.StringFixed(8), t.USDValue.StringFixed(2))
}
