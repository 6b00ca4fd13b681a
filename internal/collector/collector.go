package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"BitcoinTracker/internal/id"
	"BitcoinTracker/internal/model"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuote is returned when a source answers with a price that cannot
// be used (zero or negative).
var ErrInvalidQuote = errors.New("invalid quote")

// MockFetcher returns controllable prices for development and testing.
// Each call consumes the next entry of Prices; the last one repeats.
type MockFetcher struct {
	mu     sync.Mutex
	Prices []decimal.Decimal
	Err    error
	calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCurrentPrice(ctx context.Context, _ string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	m.calls++
	if m.Err != nil {
		return decimal.Zero, m.Err
	}
	if len(m.Prices) == 0 {
		return decimal.Zero, errors.New("mock: no prices")
	}
	i := m.calls - 1
	if i >= len(m.Prices) {
		i = len(m.Prices) - 1
	}
	return m.Prices[i], nil
}

// Calls returns how many times FetchCurrentPrice was called.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Collector fetches one validated price sample per call.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Timeout time.Duration
	now     func() time.Time
}

// NewCollector creates a new Collector. timeout bounds each fetch on top of
// the HTTP client timeout.
func NewCollector(fetcher Fetcher, symbol string, timeout time.Duration) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Timeout: timeout, now: time.Now}
}

// Collect fetches the current price and returns it as a sample.
func (c *Collector) Collect(ctx context.Context) (model.PriceSample, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	price, err := c.Fetcher.FetchCurrentPrice(ctx, c.Symbol)
	if err != nil {
		return model.PriceSample{}, fmt.Errorf("fetch current price: %w", err)
	}
	if !price.IsPositive() {
		return model.PriceSample{}, fmt.Errorf("%s returned %s: %w", c.Fetcher.Name(), price, ErrInvalidQuote)
	}

	at := c.now()
	return model.PriceSample{
		ID:        id.New(at),
		Symbol:    c.Symbol,
		Source:    c.Fetcher.Name(),
		Price:     price,
		FetchedAt: at,
	}, nil
}

// NewFetcher returns the fetcher registered under name.
func NewFetcher(name, baseURL, proxyURL string, timeout time.Duration) (Fetcher, error) {
	switch name {
	case "", "binance":
		return NewBinanceFetcher(baseURL, proxyURL, timeout), nil
	case "coinbase":
		return NewCoinbaseFetcher(baseURL, proxyURL, timeout), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", name)
	}
}
