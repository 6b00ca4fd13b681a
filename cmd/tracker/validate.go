package main

import (
	"fmt"

	"BitcoinTracker/internal/accounting"
	"BitcoinTracker/internal/format"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [ledger]",
		Short: "Check that a ledger loads and replays without errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg.Log.Level, "")
			if err != nil {
				return err
			}
			defer closeLog()

			path := cfg.LedgerFile
			if len(args) == 1 {
				path = args[0]
			}
			l, err := loadLedger(path)
			if err != nil {
				return err
			}
			res, err := accounting.ComputeBalance(l, decimal.Zero)
			if err != nil {
				return err
			}
			buys, sells := l.Count()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d transactions (%d buys, %d sells)\n", path, l.Len(), buys, sells)
			fmt.Fprintf(out, "held %s, capital invested %s, realized %s\n",
				format.BTC(res.CoinsHeld), format.Currency(res.CapitalInvested, cfg.Currency), format.Currency(res.RealizedProfit, cfg.Currency))
			return nil
		},
	}
}
