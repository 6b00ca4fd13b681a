package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSample is a single quote fetched from a price source.
type PriceSample struct {
	ID        string
	Symbol    string
	Source    string
	Price     decimal.Decimal
	FetchedAt time.Time
}

// Delta compares a price with an earlier one.
type Delta struct {
	Absolute decimal.Decimal
	Percent  decimal.Decimal
}
