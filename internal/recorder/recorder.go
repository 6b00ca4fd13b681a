package recorder

import (
	"time"

	"BitcoinTracker/internal/model"
)

// Recorder persists fetched price samples so the lookback window survives a
// restart. Computed balances are never stored; they are always derived from
// the ledger.
type Recorder interface {
	RecordSample(s *model.PriceSample) error
	// RecentSamples returns up to limit samples for symbol/source fetched at
	// or after since, oldest first.
	RecentSamples(symbol, source string, since time.Time, limit int) ([]model.PriceSample, error)
	Close() error
}
