package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Fetcher defines the interface for fetching a spot price.
type Fetcher interface {
	FetchCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	Name() string
}

// newHTTPClient builds a client with a hard timeout and optional proxy.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
