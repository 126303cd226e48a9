package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KI-IAN/llm-web-scrapper/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "llm-web-scrapper",
	Short: "Scrape web pages and query their content with an LLM",
	Long:  "Scrapes a page via Firecrawl or a local headless browser, then answers natural-language questions about the content using NVIDIA NIM, Google Gemini, or Anthropic models.",
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
