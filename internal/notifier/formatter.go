package notifier

import (
	"fmt"
	"strings"

	"BitcoinTracker/internal/format"
	"BitcoinTracker/internal/model"

	"github.com/shopspring/decimal"
)

// money formats amount in the report's currency.
func money(r *model.Report, amount decimal.Decimal) string {
	return format.Currency(amount, r.Currency)
}

// FormatAlert formats a price or profit alert into a Telegram message.
func FormatAlert(r *model.Report, a model.Alert) string {
	var b strings.Builder

	icon := "⚠️"
	if a.Level == "CRITICAL" {
		icon = "🚨"
	}
	fmt.Fprintf(&b, "%s <b>%s %s</b> | %s\n\n", icon, r.Symbol, a.Level, r.At.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "%s\n", a.Message)
	if a.Threshold.IsPositive() {
		fmt.Fprintf(&b, "Threshold: %s%%\n", a.Threshold.StringFixed(2))
	}
	fmt.Fprintf(&b, "Price: %s\n", money(r, r.Price))
	fmt.Fprintf(&b, "Total profit: %s\n", money(r, r.Balance.TotalProfit))
	return b.String()
}

// FormatStatus formats the holding at the last tick.
func FormatStatus(r *model.Report) string {
	if r == nil {
		return "No price sample yet."
	}
	var b strings.Builder
	bal := r.Balance

	fmt.Fprintf(&b, "💰 <b>%s balance</b> | %s\n\n", r.Symbol, r.At.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Price: %s (%s)\n", money(r, r.Price), r.Source)
	fmt.Fprintf(&b, "Held: %s\n", format.BTC(bal.CoinsHeld))
	fmt.Fprintf(&b, "Balance: %s\n", money(r, bal.MarketValue(r.Price)))
	fmt.Fprintf(&b, "Capital invested: %s (avg %s)\n", money(r, bal.CapitalInvested), money(r, bal.AverageCost()))
	fmt.Fprintf(&b, "Realized: %s\n", money(r, bal.RealizedProfit))
	fmt.Fprintf(&b, "Unrealized: %s (%s)\n", money(r, bal.UnrealizedProfit), format.Percent(r.GainPct))
	fmt.Fprintf(&b, "Total: %s\n", money(r, bal.TotalProfit))
	return b.String()
}

// FormatWindow formats the price movement over the lookback window.
func FormatWindow(r *model.Report) string {
	if r == nil {
		return "No price sample yet."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>%s window</b> | %d/%d samples\n\n", r.Symbol, r.WindowLen, r.WindowCap)
	fmt.Fprintf(&b, "Last update: %s (%s)\n", money(r, r.TickDelta.Absolute), format.Percent(r.TickDelta.Percent))
	fmt.Fprintf(&b, "Window: %s (%s)\n", money(r, r.WindowDiff.Absolute), format.Percent(r.WindowDiff.Percent))
	fmt.Fprintf(&b, "High: %s | Low: %s | Avg: %s\n", money(r, r.WindowHigh), money(r, r.WindowLow), money(r, r.WindowAvg))
	fmt.Fprintf(&b, "Position in range: %s\n", format.Fraction(r.WindowPosition))
	if !r.WindowFull() {
		b.WriteString("\nWindow is still filling; the comparison uses the oldest sample.")
	}
	return b.String()
}

// FormatDailySummary formats the scheduled summary message.
func FormatDailySummary(r *model.Report) string {
	if r == nil {
		return "📅 <b>Daily summary</b>\n\nNo price sample yet."
	}
	return "📅 <b>Daily summary</b>\n\n" + FormatStatus(r) + "\n" + FormatWindow(r)
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "Commands:\n• /balance\n• /status\n• /window"
}
