package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KI-IAN/llm-web-scrapper/internal/model"
)

var (
	extractFile     string
	extractProvider string
	extractModel    string
	extractFormat   string
)

var extractCmd = &cobra.Command{
	Use:   "extract <question>",
	Short: "Answer a question about previously scraped content",
	Long:  "Reads page content from --file (or stdin when --file is \"-\") and answers the question with the selected model.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := model.ParseProvider(extractProvider)
		if err != nil {
			return err
		}
		format, err := model.ParseFormat(extractFormat)
		if err != nil {
			return err
		}

		content, err := readContent(extractFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Extractor.Extract(cmd.Context(), model.ExtractionRequest{
			Content:  string(content),
			Query:    args[0],
			Provider: provider,
			Model:    extractModel,
			Format:   format,
		})
		if err != nil {
			return err
		}

		zap.L().Info("extraction complete",
			zap.String("model", result.Model),
			zap.Int64("input_tokens", result.Usage.InputTokens),
			zap.Int64("output_tokens", result.Usage.OutputTokens),
			zap.Duration("elapsed", result.Elapsed),
		)
		fmt.Fprintln(cmd.OutOrStdout(), result.Answer)
		return nil
	},
}

func readContent(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, eris.Wrap(err, "read stdin")
		}
		return content, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read content file %s", path)
	}
	return content, nil
}

func init() {
	extractCmd.Flags().StringVar(&extractFile, "file", "-", "file with scraped content, or - for stdin")
	extractCmd.Flags().StringVar(&extractProvider, "provider", string(model.ProviderGoogle), "LLM provider (nvidia, google, or anthropic)")
	extractCmd.Flags().StringVar(&extractModel, "model", "gemini-2.5-flash", "model name")
	extractCmd.Flags().StringVar(&extractFormat, "format", string(model.FormatText), "answer format (table, json, or text)")
	rootCmd.AddCommand(extractCmd)
}
