package main

import (
	"fmt"

	"BitcoinTracker/internal/display"
	"BitcoinTracker/internal/recorder"
	"BitcoinTracker/internal/scheduler"

	"github.com/spf13/cobra"
)

func newBalanceCmd(root *rootOptions) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Fetch the price once, print the holding and exit",
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

			l, err := loadLedger(cfg.LedgerFile)
			if err != nil {
				return err
			}
			col, err := newCollector(cfg)
			if err != nil {
				return err
			}

			m := scheduler.NewMonitor(col, l, recorder.NewNoopRecorder(), nil, monitorOptions(cfg))
			rep, err := m.Tick(cmd.Context())
			if err != nil {
				return fmt.Errorf("balance: %w", err)
			}

			opts := []display.Option{display.WithoutClear(), display.WithCurrency(cfg.Currency)}
			if plain {
				opts = append(opts, display.WithoutColor())
			}
			display.NewRenderer(cmd.OutOrStdout(), cfg.Lookback, opts...).Render(rep)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}
