// Package alert turns tick reports into price move and profit alerts.
package alert

import (
	"fmt"
	"time"

	"BitcoinTracker/internal/model"

	"github.com/shopspring/decimal"
)

// Levels maps how many times a threshold was exceeded to an alert level.
var Levels = []struct {
	MinMultiple decimal.Decimal
	Level       string
}{
	{decimal.NewFromInt(2), "CRITICAL"},
	{decimal.NewFromInt(1), "WARN"},
}

// mapLevel returns the level for a move of pct against threshold, or "" when
// the move stays below it.
func mapLevel(pct, threshold decimal.Decimal) string {
	if !threshold.IsPositive() {
		return ""
	}
	multiple := pct.Abs().Div(threshold)
	for _, l := range Levels {
		if multiple.GreaterThanOrEqual(l.MinMultiple) {
			return l.Level
		}
	}
	return ""
}

// rank orders levels; a higher rank is more severe.
func rank(level string) int {
	for i, l := range Levels {
		if l.Level == level {
			return len(Levels) - i
		}
	}
	return 0
}

type firing struct {
	at    time.Time
	level string
}

// Thresholds configures when a move is worth an alert. A zero threshold
// disables its rule.
type Thresholds struct {
	TickMovePercent   decimal.Decimal
	WindowMovePercent decimal.Decimal
	// Cooldown suppresses repeats of the same rule unless the level rises.
	Cooldown time.Duration
}

// Engine evaluates reports one tick at a time. It remembers the previous
// report and when each rule last fired; it is owned by the monitor loop.
type Engine struct {
	thresholds Thresholds
	lastFired  map[model.AlertRule]firing
	prev       *model.Report
}

// NewEngine creates an alert engine.
func NewEngine(th Thresholds) *Engine {
	return &Engine{thresholds: th, lastFired: make(map[model.AlertRule]firing)}
}

// Evaluate returns the alerts raised by r.
func (e *Engine) Evaluate(r *model.Report) []model.Alert {
	var alerts []model.Alert

	if a, ok := e.tickMove(r); ok {
		alerts = append(alerts, a)
	}
	if a, ok := e.windowMove(r); ok {
		alerts = append(alerts, a)
	}
	if a, ok := e.profitFlip(r); ok {
		alerts = append(alerts, a)
	}

	fired := alerts[:0]
	for _, a := range alerts {
		if e.coolingDown(a, r.At) {
			continue
		}
		e.lastFired[a.Rule] = firing{at: r.At, level: a.Level}
		fired = append(fired, a)
	}

	prev := *r
	e.prev = &prev
	return fired
}

// coolingDown reports whether a should be suppressed: the same rule fired
// within the cooldown at the same or a higher level.
func (e *Engine) coolingDown(a model.Alert, at time.Time) bool {
	last, ok := e.lastFired[a.Rule]
	if !ok || at.Sub(last.at) >= e.thresholds.Cooldown {
		return false
	}
	return rank(a.Level) <= rank(last.level)
}

func (e *Engine) tickMove(r *model.Report) (model.Alert, bool) {
	if e.prev == nil {
		return model.Alert{}, false
	}
	level := mapLevel(r.TickDelta.Percent, e.thresholds.TickMovePercent)
	if level == "" {
		return model.Alert{}, false
	}
	return model.Alert{
		Rule:      model.AlertTickMove,
		Level:     level,
		Percent:   r.TickDelta.Percent,
		Threshold: e.thresholds.TickMovePercent,
		Message:   fmt.Sprintf("price moved %s%% since the last update", r.TickDelta.Percent.StringFixed(2)),
	}, true
}

func (e *Engine) windowMove(r *model.Report) (model.Alert, bool) {
	if r.WindowLen < 2 {
		return model.Alert{}, false
	}
	level := mapLevel(r.WindowDiff.Percent, e.thresholds.WindowMovePercent)
	if level == "" {
		return model.Alert{}, false
	}
	return model.Alert{
		Rule:      model.AlertWindowMove,
		Level:     level,
		Percent:   r.WindowDiff.Percent,
		Threshold: e.thresholds.WindowMovePercent,
		Message:   fmt.Sprintf("price moved %s%% over the last %d samples", r.WindowDiff.Percent.StringFixed(2), r.WindowLen),
	}, true
}

// profitFlip fires when total profit crosses zero.
func (e *Engine) profitFlip(r *model.Report) (model.Alert, bool) {
	if e.prev == nil {
		return model.Alert{}, false
	}
	before, after := e.prev.Balance.TotalProfit.Sign(), r.Balance.TotalProfit.Sign()
	if before == after || after == 0 {
		return model.Alert{}, false
	}
	msg := "holding is back in profit"
	if after < 0 {
		msg = "holding is now at a loss"
	}
	return model.Alert{
		Rule:    model.AlertProfitFlip,
		Level:   "WARN",
		Percent: r.GainPct,
		Message: msg,
	}, true
}
