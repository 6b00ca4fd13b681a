// Package accounting derives the state of a Bitcoin holding from its ledger
// using average-cost-basis accounting.
//
// The engine is stateless: every call replays the full ledger from the first
// transaction, so the result never depends on earlier calls.
package accounting

import (
	"errors"
	"fmt"

	"BitcoinTracker/internal/ledger"
	"BitcoinTracker/internal/model"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidLedger is returned when the ledger cannot describe a real
	// holding, e.g. a sell of more coins than are held.
	ErrInvalidLedger = errors.New("invalid ledger")
	// ErrInvalidPrice is returned for a negative market price.
	ErrInvalidPrice = errors.New("invalid price")
)

// position is the running state while replaying the ledger.
type position struct {
	coins    decimal.Decimal
	capital  decimal.Decimal
	realized decimal.Decimal
}

func (p *position) buy(tx model.Transaction) {
	p.coins = p.coins.Add(tx.BTCQuantity)
	p.capital = p.capital.Add(tx.USDValue)
}

func (p *position) sell(tx model.Transaction) error {
	if !p.coins.IsPositive() {
		return fmt.Errorf("sell of %s BTC with nothing held", tx.BTCQuantity)
	}
	if tx.BTCQuantity.GreaterThan(p.coins) {
		return fmt.Errorf("sell of %s BTC exceeds %s BTC held", tx.BTCQuantity, p.coins)
	}

	var costOfSold decimal.Decimal
	if tx.BTCQuantity.Equal(p.coins) {
		// full liquidation: take the whole basis so no rounding residue is left
		costOfSold = p.capital
	} else {
		costOfSold = p.capital.Mul(tx.BTCQuantity).Div(p.coins)
	}

	p.realized = p.realized.Add(tx.Proceeds().Sub(costOfSold))
	p.coins = p.coins.Sub(tx.BTCQuantity)
	p.capital = p.capital.Sub(costOfSold)
	return nil
}

// ComputeBalance replays l in order and values the remaining coins at
// currentPrice.
//
// It returns ErrInvalidLedger (wrapped with the offending transaction index)
// as soon as a transaction cannot be applied; no partial result is returned.
// The ledger is never modified.
func ComputeBalance(l *ledger.Ledger, currentPrice decimal.Decimal) (model.AccountingResult, error) {
	if currentPrice.IsNegative() {
		return model.AccountingResult{}, fmt.Errorf("%w: %s", ErrInvalidPrice, currentPrice)
	}

	p, err := replay(l)
	if err != nil {
		return model.AccountingResult{}, err
	}

	unrealized := p.coins.Mul(currentPrice).Sub(p.capital)
	return model.AccountingResult{
		CoinsHeld:        p.coins,
		CapitalInvested:  p.capital,
		RealizedProfit:   p.realized,
		UnrealizedProfit: unrealized,
		TotalProfit:      p.realized.Add(unrealized),
	}, nil
}

// Check replays l without a market price and reports the first transaction
// that makes it invalid.
func Check(l *ledger.Ledger) error {
	_, err := replay(l)
	return err
}

func replay(l *ledger.Ledger) (position, error) {
	var p position
	for i, tx := range l.All() {
		if !tx.BTCQuantity.IsPositive() {
			return position{}, fmt.Errorf("transaction %d: quantity %s must be positive: %w", i, tx.BTCQuantity, ErrInvalidLedger)
		}
		switch tx.Kind {
		case model.TxBuy:
			p.buy(tx)
		case model.TxSell:
			if err := p.sell(tx); err != nil {
				return position{}, fmt.Errorf("transaction %d: %v: %w", i, err, ErrInvalidLedger)
			}
		default:
			return position{}, fmt.Errorf("transaction %d: unknown kind %q: %w", i, tx.Kind, ErrInvalidLedger)
		}
	}
	return p, nil
}
