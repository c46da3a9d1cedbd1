package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codeorigin",
	Short: "Detect whether code was written by an AI or a human",
	Long: `CodeOrigin submits code samples to an analysis service and reports
whether they look AI-generated or human-written, together with a confidence
score and the indicators behind the verdict.

Available commands:
  analyze  - Analyze a file, stdin, or a built-in sample once
  session  - Interactive session with history and retry
  version  - Print version information

The analysis service location comes from .codeorigin/config.json (workspace
or home) or the CODEORIGIN_ANALYZER_URL environment variable, and defaults
to http://localhost:8080.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sessionCmd)
}
