package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "transactions.json")
	require.NoError(t, os.WriteFile(ledgerPath, []byte(`{"transactions":[
		{"type":"buy","cost_in_usd":100,"quantity_in_btc":0.002},
		{"type":"buy","cost_in_usd":300,"quantity_in_btc":0.002},
		{"type":"sell","quantity_in_btc":0.002,"price_in_usd":250000}
	]}`), 0o644))

	out, err := runCmd(t, "validate", "--config", filepath.Join(dir, "missing.yaml"), ledgerPath)
	require.NoError(t, err)
	assert.Contains(t, out, "3 transactions (2 buys, 1 sells)")
	assert.Contains(t, out, "held 0.00200000 BTC, capital invested $200.00, realized $300.00")
}

func TestValidateCmd_OverSell(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "transactions.yaml")
	require.NoError(t, os.WriteFile(ledgerPath, []byte(`
transactions:
  - {type: buy, cost_in_usd: 100, quantity_in_btc: 0.001}
  - {type: sell, quantity_in_btc: 0.002, price_in_usd: 50000}
`), 0o644))

	_, err := runCmd(t, "validate", "--config", filepath.Join(dir, "missing.yaml"), ledgerPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ledger")
}

func TestSetupLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tracker.log")
	closeLog, err := setupLogging("debug", path)
	require.NoError(t, err)
	closeLog()
	assert.FileExists(t, path)

	_, err = setupLogging("info", "")
	require.NoError(t, err)

	_, err = setupLogging("loud", "")
	assert.Error(t, err)
}
