package model

import "github.com/shopspring/decimal"

// AlertRule identifies what triggered an alert.
type AlertRule string

const (
	AlertTickMove   AlertRule = "TICK_MOVE"
	AlertWindowMove AlertRule = "WINDOW_MOVE"
	AlertProfitFlip AlertRule = "PROFIT_FLIP"
)

// Alert is the output of the alert engine for one tick.
type Alert struct {
	Rule      AlertRule
	Level     string // "WARN" or "CRITICAL"
	Percent   decimal.Decimal
	Threshold decimal.Decimal
	Message   string
}
