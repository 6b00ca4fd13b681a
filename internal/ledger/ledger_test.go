package ledger

import (
	"testing"

	"BitcoinTracker/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestLedger_CopiesInput(t *testing.T) {
	txs := []model.Transaction{
		{Kind: model.TxBuy, USDValue: d("100"), BTCQuantity: d("0.002")},
	}
	l := New(txs)
	txs[0].USDValue = d("1")

	assert.True(t, d("100").Equal(l.Transactions()[0].USDValue))

	out := l.Transactions()
	out[0].USDValue = d("2")
	assert.True(t, d("100").Equal(l.Transactions()[0].USDValue))
}

func TestLedger_All(t *testing.T) {
	l := New([]model.Transaction{
		{Kind: model.TxBuy},
		{Kind: model.TxSell},
		{Kind: model.TxBuy},
	})

	var kinds []model.TxKind
	for i, tx := range l.All() {
		assert.Equal(t, len(kinds), i)
		kinds = append(kinds, tx.Kind)
	}
	assert.Equal(t, []model.TxKind{model.TxBuy, model.TxSell, model.TxBuy}, kinds)

	buys, sells := l.Count()
	assert.Equal(t, 2, buys)
	assert.Equal(t, 1, sells)
}

func TestLedger_Nil(t *testing.T) {
	var l *Ledger
	assert.Zero(t, l.Len())
	assert.Empty(t, l.Transactions())
	for range l.All() {
		t.Fatal("nil ledger yielded a transaction")
	}
}
