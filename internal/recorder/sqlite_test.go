package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"BitcoinTracker/internal/id"
	"BitcoinTracker/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "nested", "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func sample(at time.Time, symbol, source, price string) *model.PriceSample {
	return &model.PriceSample{
		ID:        id.New(at),
		Symbol:    symbol,
		Source:    source,
		Price:     decimal.RequireFromString(price),
		FetchedAt: at,
	}
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := newTestSQLite(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, p := range []string{"60000.01", "60010.5", "59990.12345678", "60100"} {
		require.NoError(t, r.RecordSample(sample(base.Add(time.Duration(i)*30*time.Second), "BTCUSDT", "binance", p)))
	}
	require.NoError(t, r.RecordSample(sample(base, "BTCUSDT", "coinbase", "1")))
	require.NoError(t, r.RecordSample(sample(base, "BTCEUR", "binance", "2")))

	got, err := r.RecentSamples("BTCUSDT", "binance", base, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "60010.5", got[0].Price.String())
	assert.Equal(t, "59990.12345678", got[1].Price.String())
	assert.Equal(t, "60100", got[2].Price.String())
	assert.True(t, got[0].FetchedAt.Before(got[2].FetchedAt))
	assert.Equal(t, base.Add(30*time.Second).UnixMilli(), got[0].FetchedAt.UnixMilli())
}

func TestSQLiteRecorder_Since(t *testing.T) {
	r := newTestSQLite(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.RecordSample(sample(base.Add(-2*time.Hour), "BTCUSDT", "binance", "50000")))
	require.NoError(t, r.RecordSample(sample(base, "BTCUSDT", "binance", "60000")))

	got, err := r.RecentSamples("BTCUSDT", "binance", base.Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "60000", got[0].Price.String())
}

func TestSQLiteRecorder_DuplicateID(t *testing.T) {
	r := newTestSQLite(t)
	s := sample(time.Now(), "BTCUSDT", "binance", "1")
	require.NoError(t, r.RecordSample(s))
	assert.Error(t, r.RecordSample(s))
}

func TestNoopRecorder(t *testing.T) {
	r := NewNoopRecorder()
	assert.NoError(t, r.RecordSample(&model.PriceSample{}))
	got, err := r.RecentSamples("BTCUSDT", "binance", time.Time{}, 10)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, r.Close())
}
