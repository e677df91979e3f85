package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tradelift/seogen/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "seogen",
	Short: "SEO page generation engine for contractor businesses",
	Long:  "Expands a business's service and location catalog into a full set of SEO pages: templated content, sampled LLM-enhanced pages, JSON-LD structured data, and an HTTP delivery API.",
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
