package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agritrace/farmtrace/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "farmtrace",
	Short: "Farm antimicrobial treatment registry",
	Long:  "Tracks antimicrobial treatments per animal, classifies MRL residue compliance, and serves dashboard aggregates over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
