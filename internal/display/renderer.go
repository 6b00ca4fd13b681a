// Package display renders tick reports as a colored terminal table.
package display

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"BitcoinTracker/internal/format"
	"BitcoinTracker/internal/model"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

const (
	labelWidth  = 22
	clearScreen = "\033[H\033[2J"
)

// Renderer writes reports to out. It owns no global console state.
type Renderer struct {
	out      io.Writer
	lookback time.Duration
	currency string
	noColor  bool
	clear    bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithoutColor disables ANSI colors.
func WithoutColor() Option { return func(r *Renderer) { r.noColor = true } }

// WithoutClear keeps previous output on screen instead of redrawing.
func WithoutClear() Option { return func(r *Renderer) { r.clear = false } }

// WithCurrency sets the ISO code money amounts are shown in.
func WithCurrency(code string) Option { return func(r *Renderer) { r.currency = code } }

// NewRenderer creates a renderer. lookback labels the window comparison row.
func NewRenderer(out io.Writer, lookback time.Duration, opts ...Option) *Renderer {
	r := &Renderer{out: out, lookback: lookback, currency: "USD", clear: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if r.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

// signColor is green for values >= 0 and red below.
func (r *Renderer) signColor(v decimal.Decimal) *color.Color {
	if v.IsNegative() {
		return r.paint(color.FgRed)
	}
	return r.paint(color.FgGreen)
}

func (r *Renderer) line(label, value string, c *color.Color) {
	padding := labelWidth - len(label)
	if padding < 0 {
		padding = 0
	}
	fmt.Fprint(r.out, label, strings.Repeat(" ", padding))
	c.Fprintln(r.out, value)
}

func (r *Renderer) money(v decimal.Decimal) string {
	return format.Currency(v, r.currency)
}

// useReportCurrency switches to the report's currency when it names one.
func (r *Renderer) useReportCurrency(rep *model.Report) {
	if rep.Currency != "" {
		r.currency = rep.Currency
	}
}

func (r *Renderer) delta(d model.Delta) string {
	return fmt.Sprintf("%s (%s)", r.money(d.Absolute), format.Percent(d.Percent))
}

// Render draws the table for one tick.
func (r *Renderer) Render(rep *model.Report) {
	if r.clear {
		fmt.Fprint(r.out, clearScreen)
	}
	r.useReportCurrency(rep)
	bal := rep.Balance
	white := r.paint(color.FgWhite)

	r.paint(color.FgYellow).Fprintf(r.out, "*** %s | %s ***\n", rep.Symbol, rep.Source)
	r.line("Current price:", r.money(rep.Price), white)
	r.line("BTC held:", format.BTC(bal.CoinsHeld), white)
	r.line("Balance:", r.money(bal.MarketValue(rep.Price)), white)
	r.line("Capital invested:", r.money(bal.CapitalInvested), white)
	r.line("Since last update:", r.delta(rep.TickDelta), r.signColor(rep.TickDelta.Absolute))

	label := fmt.Sprintf("Last %s:", shortDuration(r.lookback))
	if !rep.WindowFull() {
		label = fmt.Sprintf("Last %d/%d samples:", rep.WindowLen, rep.WindowCap)
	}
	r.line(label, r.delta(rep.WindowDiff), r.signColor(rep.WindowDiff.Absolute))
	r.line("Window high / low:", fmt.Sprintf("%s / %s (at %s)",
		r.money(rep.WindowHigh), r.money(rep.WindowLow), format.Fraction(rep.WindowPosition)), white)

	fmt.Fprintln(r.out)
	r.paint(color.FgYellow).Fprintln(r.out, "*** Profit ***")
	r.line("Gain:", format.Percent(rep.GainPct), r.signColor(rep.GainPct))
	r.line("Realized:", r.money(bal.RealizedProfit), r.signColor(bal.RealizedProfit))
	r.line("Unrealized:", r.money(bal.UnrealizedProfit), r.signColor(bal.UnrealizedProfit))
	r.line("Total:", r.money(bal.TotalProfit), r.signColor(bal.TotalProfit))
	r.paint(color.FgCyan).Fprintf(r.out, "Updated %s\n", rep.At.Local().Format("2006-01-02 15:04:05"))
}

// Error shows a failed tick without clearing the last table.
func (r *Renderer) Error(err error) {
	r.paint(color.FgRed).Fprintf(r.out, "\nupdate failed: %v\n", err)
}

// Countdown shows the seconds left until the next update, redrawing the
// same line once per second. It returns ctx.Err() when cancelled.
func (r *Renderer) Countdown(ctx context.Context, d time.Duration) error {
	deadline := time.Now().Add(d)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	timer := time.NewTimer(d)
	defer timer.Stop()

	hiBlack := r.paint(color.FgHiBlack)
	for {
		left := time.Until(deadline).Round(time.Second)
		if left < 0 {
			left = 0
		}
		hiBlack.Fprintf(r.out, "\rNext update in %3ds", int(left/time.Second))
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return ctx.Err()
		case <-timer.C:
			fmt.Fprint(r.out, "\r", strings.Repeat(" ", 24), "\r")
			return nil
		case <-ticker.C:
		}
	}
}

// shortDuration renders 1h0m0s as "1h" and 30m0s as "30m".
func shortDuration(d time.Duration) string {
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}
