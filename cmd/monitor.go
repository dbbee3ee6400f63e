package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agritrace/farmtrace/internal/monitoring"
)

var monitorWatch bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Check registry compliance health",
	Long:  "One-shot by default: collects a compliance snapshot, prints it, and sends any threshold alerts. With --watch, runs the periodic checker until interrupted.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		collector := monitoring.NewCollector(st)
		alerter := monitoring.NewAlerter(cfg.Monitoring)

		if monitorWatch {
			monitoring.NewChecker(collector, alerter, cfg.Monitoring).Run(ctx)
			return nil
		}

		snap, err := collector.Collect(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return err
		}

		alerts := alerter.Evaluate(snap)
		sent := alerter.SendAlerts(ctx, alerts)
		zap.L().Info("compliance check complete",
			zap.Int("alerts_triggered", len(alerts)),
			zap.Int("alerts_sent", sent),
		)
		return nil
	},
}

func init() {
	monitorCmd.Flags().BoolVar(&monitorWatch, "watch", false, "run the periodic checker instead of a one-shot check")
	rootCmd.AddCommand(monitorCmd)
}
