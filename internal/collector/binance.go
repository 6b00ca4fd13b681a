package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

const defaultBinanceURL = "https://api.binance.com"

// BinanceFetcher implements Fetcher using the Binance public ticker endpoint.
type BinanceFetcher struct {
	BaseURL  string
	Client   *http.Client
	validate *validator.Validate
}

// NewBinanceFetcher creates a Binance fetcher. An empty baseURL uses the
// public API.
func NewBinanceFetcher(baseURL, proxyURL string, timeout time.Duration) *BinanceFetcher {
	if baseURL == "" {
		baseURL = defaultBinanceURL
	}
	return &BinanceFetcher{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Client:   newHTTPClient(proxyURL, timeout),
		validate: validator.New(),
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// binanceTicker is the response of /api/v3/ticker/price.
//
//	{"symbol": "BTCUSDT", "price": "64012.55000000"}
type binanceTicker struct {
	Symbol string `json:"symbol" validate:"required"`
	Price  string `json:"price" validate:"required,numeric"`
}

func (f *BinanceFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", f.BaseURL, url.QueryEscape(strings.ToUpper(symbol)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("binance read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}

	var ticker binanceTicker
	if err := json.Unmarshal(body, &ticker); err != nil {
		return decimal.Zero, fmt.Errorf("binance decode: %w", err)
	}
	if err := f.validate.Struct(&ticker); err != nil {
		return decimal.Zero, fmt.Errorf("binance ticker: %w", err)
	}
	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("binance price %q: %w", ticker.Price, err)
	}
	return price, nil
}
