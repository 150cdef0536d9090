package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tlc-leads/dealerseed/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dealerseed",
	Short: "Dealer directory seeding utilities",
	Long:  "Converts the dealer roster spreadsheet into normalized JSON and expands each dealer's coverage area to every ZIP code within a radius.",
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
