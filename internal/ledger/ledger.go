// Package ledger holds the user's transaction history and loads it from disk.
package ledger

import (
	"iter"

	"BitcoinTracker/internal/model"
)

// Ledger is an ordered, read-only list of transactions. Insertion order is
// chronological order.
type Ledger struct {
	txs []model.Transaction
}

// New creates a ledger from txs. The slice is copied so later changes by the
// caller do not leak into the ledger.
func New(txs []model.Transaction) *Ledger {
	cp := make([]model.Transaction, len(txs))
	copy(cp, txs)
	return &Ledger{txs: cp}
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.txs)
}

// All iterates over the transactions in ledger order with their index.
func (l *Ledger) All() iter.Seq2[int, model.Transaction] {
	return func(yield func(int, model.Transaction) bool) {
		if l == nil {
			return
		}
		for i, tx := range l.txs {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Transactions returns a copy of the transactions.
func (l *Ledger) Transactions() []model.Transaction {
	if l == nil {
		return nil
	}
	cp := make([]model.Transaction, len(l.txs))
	copy(cp, l.txs)
	return cp
}

// Count returns the number of buys and sells.
func (l *Ledger) Count() (buys, sells int) {
	for _, tx := range l.All() {
		switch tx.Kind {
		case model.TxBuy:
			buys++
		case model.TxSell:
			sells++
		}
	}
	return buys, sells
}
