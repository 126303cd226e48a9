package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models usable with the configured API keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		choices := env.Extractor.Choices()
		if len(choices) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no providers configured; set NVIDIA_API_KEY, GOOGLE_API_KEY, or ANTHROPIC_API_KEY")
			return nil
		}
		for _, c := range choices {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Provider, c.Model)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
