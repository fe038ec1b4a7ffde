package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/helmcode/sentiment-triage/cmd"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sentiment-triage",
		Short: "Keyword-based sentiment and severity triage",
		Long: `sentiment-triage reads a JSON document {"text": "..."} from standard input,
assigns a coarse sentiment (positive, negative, neutral) and severity
(low, medium, high) by keyword matching, and writes the result as JSON to
standard output. Failures are written as {"error": "..."} to standard error.`,
		Args:          cobra.NoArgs,
		RunE:          cmd.RunStdin,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddGlobalFlags(rootCmd)
	cmd.AddStdinFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewClassifyCmd(),
		cmd.NewServeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sentiment-triage version %s\n", version)
		},
	}
}
