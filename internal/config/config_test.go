package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", cfg.Symbol)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "transactions.json", cfg.LedgerFile)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, time.Hour, cfg.Lookback)
	assert.Equal(t, "binance", cfg.DataSource.Name)
	assert.Equal(t, "data/tracker.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.RecordingEnabled())
	assert.False(t, cfg.TelegramEnabled())
	assert.Equal(t, 120, cfg.WindowCapacity())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
symbol: BTCEUR
ledger_file: ledger.yaml
interval: 1m
lookback: 2h
fetch_timeout: 5s
data_source:
  name: coinbase
database:
  disabled: true
alerts:
  tick_move_percent: 1.5
  window_move_percent: 3
telegram:
  bot_token: token
  chat_id: "42"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "BTCEUR", cfg.Symbol)
	assert.Equal(t, "ledger.yaml", cfg.LedgerFile)
	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "coinbase", cfg.DataSource.Name)
	assert.False(t, cfg.RecordingEnabled())
	assert.True(t, cfg.TelegramEnabled())
	assert.InDelta(t, 1.5, cfg.Alerts.TickMovePercent, 1e-9)
	assert.Equal(t, 120, cfg.WindowCapacity())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Recording(t *testing.T) {
	cfg, err := Load(writeConfig(t, "database:\n  sqlite_path: \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "data/tracker.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.RecordingEnabled())

	cfg, err = Load(writeConfig(t, "database:\n  sqlite_path: samples.db\n  disabled: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "samples.db", cfg.Database.SQLitePath)
	assert.False(t, cfg.RecordingEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRACKER_LEDGER", "/tmp/ledger.json")
	t.Setenv("TRACKER_INTERVAL", "15s")
	t.Setenv("TRACKER_SOURCE", "coinbase")
	t.Setenv("SQLITE_PATH", "/tmp/samples.db")

	cfg, err := Load(writeConfig(t, "interval: 1m\n"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ledger.json", cfg.LedgerFile)
	assert.Equal(t, 15*time.Second, cfg.Interval)
	assert.Equal(t, "coinbase", cfg.DataSource.Name)
	assert.Equal(t, "/tmp/samples.db", cfg.Database.SQLitePath)
	assert.Equal(t, 240, cfg.WindowCapacity())
}

func TestLoad_BadInput(t *testing.T) {
	_, err := Load(writeConfig(t, "interval: [\n"))
	assert.Error(t, err)

	t.Setenv("TRACKER_INTERVAL", "soon")
	_, err = Load(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no ledger", func(c *Config) { c.LedgerFile = "" }},
		{"negative interval", func(c *Config) { c.Interval = -time.Second }},
		{"lookback shorter than interval", func(c *Config) { c.Lookback = 10 * time.Second }},
		{"unknown source", func(c *Config) { c.DataSource.Name = "kraken" }},
		{"negative threshold", func(c *Config) { c.Alerts.WindowMovePercent = -1 }},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "token" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
