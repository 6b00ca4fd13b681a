package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"BitcoinTracker/internal/window"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Symbol       string        `yaml:"symbol"`
	Currency     string        `yaml:"currency"`
	LedgerFile   string        `yaml:"ledger_file"`
	Interval     time.Duration `yaml:"interval"`
	Lookback     time.Duration `yaml:"lookback"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	DataSource   struct {
		Name    string `yaml:"name"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"data_source"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"telegram"`
	Alerts struct {
		TickMovePercent   float64 `yaml:"tick_move_percent"`
		WindowMovePercent float64 `yaml:"window_move_percent"`
	} `yaml:"alerts"`
	Schedule struct {
		DailySummaryCron string `yaml:"daily_summary_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
		Disabled   bool   `yaml:"disabled"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: defaults and the environment are enough to run.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TRACKER_LEDGER"); v != "" {
		c.LedgerFile = v
	}
	if v := os.Getenv("TRACKER_SYMBOL"); v != "" {
		c.Symbol = v
	}
	if v := os.Getenv("TRACKER_SOURCE"); v != "" {
		c.DataSource.Name = v
	}
	if v := os.Getenv("TRACKER_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TRACKER_INTERVAL: %w", err)
		}
		c.Interval = d
	}
	if v := os.Getenv("TRACKER_TICK_ALERT_PERCENT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TRACKER_TICK_ALERT_PERCENT: %w", err)
		}
		c.Alerts.TickMovePercent = f
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Symbol == "" {
		c.Symbol = "BTCUSDT"
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	if c.LedgerFile == "" {
		c.LedgerFile = "transactions.json"
	}
	if c.Interval == 0 {
		c.Interval = 30 * time.Second
	}
	if c.Lookback == 0 {
		c.Lookback = time.Hour
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.DataSource.Name == "" {
		c.DataSource.Name = "binance"
	}
	if c.Schedule.DailySummaryCron == "" {
		c.Schedule.DailySummaryCron = "0 0 9 * * *"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/tracker.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "data/tracker.log"
	}
}

// WindowCapacity is the number of samples that cover one lookback period at
// the configured polling interval.
func (c *Config) WindowCapacity() int {
	return window.CapacityForInterval(c.Lookback, c.Interval)
}

// RecordingEnabled reports whether price samples are stored in SQLite.
func (c *Config) RecordingEnabled() bool {
	return !c.Database.Disabled && c.Database.SQLitePath != ""
}

// TelegramEnabled reports whether alerts and commands go to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.LedgerFile == "" {
		return fmt.Errorf("ledger_file is required")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.Lookback < c.Interval {
		return fmt.Errorf("lookback (%s) must be at least one interval (%s)", c.Lookback, c.Interval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	switch c.DataSource.Name {
	case "binance", "coinbase":
	default:
		return fmt.Errorf("data_source.name %q is not supported", c.DataSource.Name)
	}
	if c.Alerts.TickMovePercent < 0 || c.Alerts.WindowMovePercent < 0 {
		return fmt.Errorf("alert thresholds must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
