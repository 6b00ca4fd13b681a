package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"BitcoinTracker/internal/accounting"
	"BitcoinTracker/internal/collector"
	"BitcoinTracker/internal/config"
	"BitcoinTracker/internal/ledger"
	"BitcoinTracker/internal/scheduler"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "tracker",
		Short:        "Track the value and profit of a Bitcoin holding",
		SilenceUsage: true,
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCmd(opts),
		newBalanceCmd(opts),
		newValidateCmd(opts),
	)
	return cmd
}

// loadConfig reads and validates the config.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// setupLogging points the global logger at stderr, or at path when it is
// not empty. The returned func releases the log file.
func setupLogging(level, path string) (func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)

	if path == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

// loadLedger reads the ledger and rejects it when it cannot be replayed.
func loadLedger(path string) (*ledger.Ledger, error) {
	l, err := ledger.Load(path)
	if err != nil {
		return nil, err
	}
	if err := accounting.Check(l); err != nil {
		return nil, fmt.Errorf("ledger %s: %w", path, err)
	}
	return l, nil
}

func monitorOptions(cfg *config.Config) scheduler.Options {
	return scheduler.Options{
		Interval:       cfg.Interval,
		Lookback:       cfg.Lookback,
		WindowCapacity: cfg.WindowCapacity(),
		Currency:       cfg.Currency,
	}
}

func newCollector(cfg *config.Config) (*collector.Collector, error) {
	fetcher, err := collector.NewFetcher(cfg.DataSource.Name, cfg.DataSource.BaseURL, cfg.Proxy, cfg.FetchTimeout)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")
	return collector.NewCollector(fetcher, cfg.Symbol, cfg.FetchTimeout), nil
}
