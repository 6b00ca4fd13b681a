// Package scheduler drives the tracker: one price tick per interval, plus
// cron jobs and chat commands that read the latest report.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"BitcoinTracker/internal/accounting"
	"BitcoinTracker/internal/alert"
	"BitcoinTracker/internal/calculator"
	"BitcoinTracker/internal/collector"
	"BitcoinTracker/internal/display"
	"BitcoinTracker/internal/ledger"
	"BitcoinTracker/internal/model"
	"BitcoinTracker/internal/notifier"
	"BitcoinTracker/internal/recorder"
	"BitcoinTracker/internal/window"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// notifyRetries is how many times a failed notification is retried.
const notifyRetries = 3

// Monitor owns the price window and runs the tick loop. Everything a tick
// touches is mutated only from the loop goroutine; the last report is shared
// with cron jobs and chat commands under mu.
type Monitor struct {
	Collector *collector.Collector
	Ledger    *ledger.Ledger
	Window    *window.PriceWindow
	Recorder  recorder.Recorder
	Notifier  notifier.Notifier
	Alerts    *alert.Engine
	// Renderer is optional; when nil nothing is drawn.
	Renderer *display.Renderer
	Interval time.Duration
	Lookback time.Duration
	Currency string

	cron *cron.Cron
	mu   sync.RWMutex
	last *model.Report
}

// Options sets the loop timing and the window size. A zero WindowCapacity
// derives it from Lookback / Interval; an empty Currency means USD.
type Options struct {
	Interval       time.Duration
	Lookback       time.Duration
	WindowCapacity int
	Currency       string
}

// NewMonitor creates a monitor with an empty window.
func NewMonitor(col *collector.Collector, l *ledger.Ledger, rec recorder.Recorder, n notifier.Notifier, opts Options) *Monitor {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if n == nil {
		n = notifier.LogNotifier{}
	}
	capacity := opts.WindowCapacity
	if capacity <= 0 {
		capacity = window.CapacityForInterval(opts.Lookback, opts.Interval)
	}
	return &Monitor{
		Collector: col,
		Ledger:    l,
		Window:    window.New(capacity),
		Recorder:  rec,
		Notifier:  n,
		Alerts:    alert.NewEngine(alert.Thresholds{Cooldown: opts.Lookback}),
		Interval:  opts.Interval,
		Lookback:  opts.Lookback,
		Currency:  opts.Currency,
		cron:      cron.New(cron.WithSeconds()),
	}
}

// WarmUp refills the window from recorded samples younger than one lookback
// period so the window comparison survives restarts. It returns the number
// of samples loaded.
func (m *Monitor) WarmUp(now time.Time) (int, error) {
	samples, err := m.Recorder.RecentSamples(m.Collector.Symbol, m.Collector.Fetcher.Name(), now.Add(-m.Lookback), m.Window.Cap())
	if err != nil {
		return 0, fmt.Errorf("load recent samples: %w", err)
	}
	for _, s := range samples {
		m.Window.Push(s.Price)
	}
	if len(samples) > 0 {
		log.Info().Int("samples", len(samples)).Msg("price window warmed up from recorder")
	}
	return len(samples), nil
}

// Tick runs one update: fetch a sample, push it into the window, recompute
// the balance from the full ledger and evaluate alerts.
func (m *Monitor) Tick(ctx context.Context) (*model.Report, error) {
	sample, err := m.Collector.Collect(ctx)
	if err != nil {
		return nil, err
	}
	price := sample.Price

	prev, hasPrev := m.Window.Latest()
	m.Window.Push(price)
	if err := m.Recorder.RecordSample(&sample); err != nil {
		log.Error().Err(err).Msg("record sample")
	}

	bal, err := accounting.ComputeBalance(m.Ledger, price)
	if err != nil {
		return nil, fmt.Errorf("compute balance: %w", err)
	}

	rep := &model.Report{
		Symbol:    sample.Symbol,
		Currency:  m.Currency,
		Source:    sample.Source,
		Price:     price,
		At:        sample.FetchedAt,
		Balance:   bal,
		GainPct:   calculator.GainPercentage(bal.UnrealizedProfit, bal.CapitalInvested),
		WindowLen: m.Window.Len(),
		WindowCap: m.Window.Cap(),
	}
	if hasPrev {
		rep.TickDelta = calculator.NewDelta(price, prev)
	} else {
		rep.TickDelta = calculator.NewDelta(price, price)
	}
	// Until the window is full the oldest sample stands in for the one a
	// whole lookback ago.
	ref, _ := m.Window.Oldest()
	rep.WindowDiff = calculator.NewDelta(price, ref)

	values := m.Window.Values()
	if high, low, err := calculator.WindowRange(values); err == nil {
		rep.WindowHigh, rep.WindowLow = high, low
		if pos, err := calculator.RangePosition(price, high, low); err == nil {
			rep.WindowPosition = pos
		}
	}
	if avg, err := calculator.WindowAverage(values); err == nil {
		rep.WindowAvg = avg
	}

	m.mu.Lock()
	m.last = rep
	m.mu.Unlock()

	for _, a := range m.Alerts.Evaluate(rep) {
		log.Info().Str("rule", string(a.Rule)).Str("level", a.Level).Msg(a.Message)
		m.trySend(ctx, notifier.FormatAlert(rep, a))
	}
	return rep, nil
}

// Run ticks every Interval until ctx is cancelled. A failed fetch skips the
// tick; an invalid ledger stops the loop with an error.
func (m *Monitor) Run(ctx context.Context) error {
	log.Info().
		Str("symbol", m.Collector.Symbol).
		Str("source", m.Collector.Fetcher.Name()).
		Dur("interval", m.Interval).
		Int("window", m.Window.Cap()).
		Msg("monitor started")

	for {
		if ctx.Err() != nil {
			break
		}
		rep, err := m.Tick(ctx)
		switch {
		case err == nil:
			if m.Renderer != nil {
				m.Renderer.Render(rep)
			}
		case ctx.Err() != nil:
		case errors.Is(err, accounting.ErrInvalidLedger), errors.Is(err, accounting.ErrInvalidPrice):
			return err
		default:
			log.Warn().Err(err).Msg("tick failed")
			if m.Renderer != nil {
				m.Renderer.Error(err)
			}
		}
		if err := m.wait(ctx); err != nil {
			break
		}
	}
	log.Info().Msg("monitor stopped")
	return nil
}

func (m *Monitor) wait(ctx context.Context) error {
	if m.Renderer != nil {
		return m.Renderer.Countdown(ctx, m.Interval)
	}
	timer := time.NewTimer(m.Interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// LastReport returns the report of the latest successful tick, or nil.
func (m *Monitor) LastReport() *model.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.last == nil {
		return nil
	}
	r := *m.last
	return &r
}

// RegisterDailySummary schedules the summary message on a cron spec with a
// seconds field, e.g. "0 0 9 * * *".
func (m *Monitor) RegisterDailySummary(ctx context.Context, spec string) error {
	if _, err := m.cron.AddFunc(spec, func() { m.SendDailySummary(ctx) }); err != nil {
		return fmt.Errorf("register daily summary: %w", err)
	}
	return nil
}

// SendDailySummary sends the latest report as a summary message.
func (m *Monitor) SendDailySummary(ctx context.Context) {
	log.Info().Msg("sending daily summary")
	m.trySend(ctx, notifier.FormatDailySummary(m.LastReport()))
}

// Start starts the cron scheduler.
func (m *Monitor) Start() {
	m.cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// HandleCommand processes a user command and returns a reply.
func (m *Monitor) HandleCommand(command string) string {
	switch command {
	case "/balance", "/start":
		return notifier.FormatStatus(m.LastReport())
	case "/status", "/window":
		return notifier.FormatWindow(m.LastReport())
	default:
		return notifier.FormatHelp()
	}
}

type retrySender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

func (m *Monitor) trySend(ctx context.Context, text string) {
	var err error
	if rs, ok := m.Notifier.(retrySender); ok {
		err = rs.SendWithRetry(ctx, text, notifyRetries)
	} else {
		err = m.Notifier.Send(ctx, text)
	}
	if err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
