package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"BitcoinTracker/internal/alert"
	"BitcoinTracker/internal/config"
	"BitcoinTracker/internal/display"
	"BitcoinTracker/internal/notifier"
	"BitcoinTracker/internal/recorder"
	"BitcoinTracker/internal/scheduler"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var noTable bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll the price and show the holding until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			logFile := cfg.Log.File
			if noTable {
				logFile = ""
			}
			closeLog, err := setupLogging(cfg.Log.Level, logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			m, cleanup, err := buildMonitor(ctx, cfg)
			if err != nil {
				log.Error().Err(err).Msg("startup failed")
				return err
			}
			defer cleanup()
			if !noTable {
				m.Renderer = display.NewRenderer(cmd.OutOrStdout(), cfg.Lookback, display.WithCurrency(cfg.Currency))
			}

			m.Start()
			defer m.Stop()

			if err := m.Run(ctx); err != nil {
				log.Error().Err(err).Msg("monitor failed")
				return err
			}
			log.Info().Msg("tracker stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&noTable, "no-table", false, "log reports instead of drawing the terminal table")
	return cmd
}

// buildMonitor wires the monitor from config. cleanup closes the recorder.
func buildMonitor(ctx context.Context, cfg *config.Config) (*scheduler.Monitor, func(), error) {
	l, err := loadLedger(cfg.LedgerFile)
	if err != nil {
		return nil, nil, err
	}
	buys, sells := l.Count()
	log.Info().Str("file", cfg.LedgerFile).Int("buys", buys).Int("sells", sells).Msg("ledger loaded")

	col, err := newCollector(cfg)
	if err != nil {
		return nil, nil, err
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.RecordingEnabled() {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}
	cleanup := func() {
		if err := rec.Close(); err != nil {
			log.Error().Err(err).Msg("close recorder")
		}
	}

	var n notifier.Notifier = notifier.LogNotifier{}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.BaseURL, cfg.Proxy)
		n = tn
	}

	m := scheduler.NewMonitor(col, l, rec, n, monitorOptions(cfg))
	m.Alerts = alert.NewEngine(alert.Thresholds{
		TickMovePercent:   decimal.NewFromFloat(cfg.Alerts.TickMovePercent),
		WindowMovePercent: decimal.NewFromFloat(cfg.Alerts.WindowMovePercent),
		Cooldown:          cfg.Lookback,
	})
	if _, err := m.WarmUp(time.Now()); err != nil {
		log.Warn().Err(err).Msg("warm up price window")
	}
	if err := m.RegisterDailySummary(ctx, cfg.Schedule.DailySummaryCron); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("schedule: %w", err)
	}
	if tn != nil {
		go tn.StartPolling(ctx, m.HandleCommand)
		log.Info().Msg("telegram polling started")
	}
	return m, cleanup, nil
}
