package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KI-IAN/llm-web-scrapper/internal/model"
)

var scrapeBackend string

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape a single page and print its markdown content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := model.ParseBackend(scrapeBackend)
		if err != nil {
			return err
		}

		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Scraper.Scrape(cmd.Context(), model.ScrapeRequest{
			URL:     args[0],
			Backend: backend,
		})
		if err != nil {
			return err
		}

		zap.L().Info("scrape complete",
			zap.String("title", result.Title),
			zap.Int("bytes", len(result.Content)),
			zap.Duration("elapsed", result.Elapsed),
		)
		fmt.Fprintln(cmd.OutOrStdout(), result.Content)
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeBackend, "backend", string(model.BackendBrowser), "scraping backend (firecrawl or browser)")
	rootCmd.AddCommand(scrapeCmd)
}
