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

const defaultCoinbaseURL = "https://api.coinbase.com"

// CoinbaseFetcher implements Fetcher using the Coinbase spot price API.
type CoinbaseFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Coinbase pair
	validate  *validator.Validate
}

// NewCoinbaseFetcher creates a Coinbase fetcher. An empty baseURL uses the
// public API.
func NewCoinbaseFetcher(baseURL, proxyURL string, timeout time.Duration) *CoinbaseFetcher {
	if baseURL == "" {
		baseURL = defaultCoinbaseURL
	}
	return &CoinbaseFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  newHTTPClient(proxyURL, timeout),
		SymbolMap: map[string]string{
			"BTCUSDT": "BTC-USD",
			"BTCUSD":  "BTC-USD",
			"BTCEUR":  "BTC-EUR",
		},
		validate: validator.New(),
	}
}

func (f *CoinbaseFetcher) Name() string { return "coinbase" }

func (f *CoinbaseFetcher) pair(symbol string) string {
	if mapped, ok := f.SymbolMap[strings.ToUpper(symbol)]; ok {
		return mapped
	}
	return symbol
}

// coinbaseSpot is the response of /v2/prices/{pair}/spot.
type coinbaseSpot struct {
	Data struct {
		Amount   string `json:"amount" validate:"required,numeric"`
		Base     string `json:"base"`
		Currency string `json:"currency"`
	} `json:"data"`
	Errors []struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (f *CoinbaseFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/v2/prices/%s/spot", f.BaseURL, url.PathEscape(f.pair(symbol)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("coinbase fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("coinbase read body: %w", err)
	}

	var spot coinbaseSpot
	if err := json.Unmarshal(body, &spot); err != nil {
		if resp.StatusCode != http.StatusOK {
			return decimal.Zero, fmt.Errorf("coinbase: status %d, body: %s", resp.StatusCode, string(body))
		}
		return decimal.Zero, fmt.Errorf("coinbase decode: %w", err)
	}
	if len(spot.Errors) > 0 {
		return decimal.Zero, fmt.Errorf("coinbase api error: %s", spot.Errors[0].Message)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("coinbase: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := f.validate.Struct(&spot); err != nil {
		return decimal.Zero, fmt.Errorf("coinbase spot: %w", err)
	}
	price, err := decimal.NewFromString(spot.Data.Amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("coinbase price %q: %w", spot.Data.Amount, err)
	}
	return price, nil
}
