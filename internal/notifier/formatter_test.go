package notifier

import (
	"testing"
	"time"

	"BitcoinTracker/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleReport() *model.Report {
	return &model.Report{
		Symbol: "BTCUSDT",
		Source: "binance",
		Price:  d("60000"),
		At:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Balance: model.AccountingResult{
			CoinsHeld:        d("0.01"),
			CapitalInvested:  d("500"),
			RealizedProfit:   d("20"),
			UnrealizedProfit: d("100"),
			TotalProfit:      d("120"),
		},
		GainPct:        d("20"),
		TickDelta:      model.Delta{Absolute: d("150"), Percent: d("0.25")},
		WindowDiff:     model.Delta{Absolute: d("-1200"), Percent: d("-1.96")},
		WindowLen:      40,
		WindowCap:      120,
		WindowHigh:     d("61200"),
		WindowLow:      d("59800"),
		WindowAvg:      d("60400"),
		WindowPosition: d("0.1428"),
	}
}

func TestFormatStatus(t *testing.T) {
	msg := FormatStatus(sampleReport())

	assert.Contains(t, msg, "Price: $60,000.00 (binance)")
	assert.Contains(t, msg, "Held: 0.01000000 BTC")
	assert.Contains(t, msg, "Balance: $600.00")
	assert.Contains(t, msg, "Capital invested: $500.00 (avg $50,000.00)")
	assert.Contains(t, msg, "Unrealized: $100.00 (+20.00%)")
	assert.Contains(t, msg, "Total: $120.00")
}

func TestFormatWindow(t *testing.T) {
	msg := FormatWindow(sampleReport())

	assert.Contains(t, msg, "40/120 samples")
	assert.Contains(t, msg, "Window: -$1,200.00 (-1.96%)")
	assert.Contains(t, msg, "still filling")
	assert.Contains(t, msg, "Position in range: 14%")
}

func TestFormat_ReportCurrency(t *testing.T) {
	r := sampleReport()
	r.Currency = "EUR"

	for _, msg := range []string{FormatStatus(r), FormatWindow(r), FormatAlert(r, model.Alert{Level: "WARN", Message: "moved"})} {
		assert.Contains(t, msg, "€")
		assert.NotContains(t, msg, "$")
	}
}

func TestFormatAlert(t *testing.T) {
	a := model.Alert{
		Rule:      model.AlertWindowMove,
		Level:     "CRITICAL",
		Percent:   d("-7"),
		Threshold: d("3"),
		Message:   "price moved -7.00% over the last 120 samples",
	}
	msg := FormatAlert(sampleReport(), a)

	assert.Contains(t, msg, "🚨")
	assert.Contains(t, msg, "BTCUSDT CRITICAL")
	assert.Contains(t, msg, "Threshold: 3.00%")
	assert.Contains(t, msg, a.Message)
}

func TestFormat_NoReport(t *testing.T) {
	assert.Equal(t, "No price sample yet.", FormatStatus(nil))
	assert.Contains(t, FormatDailySummary(nil), "No price sample yet.")
}
