package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/helmcode/sentiment-triage/pkg/analyzer"
	"github.com/helmcode/sentiment-triage/pkg/classifier"
	"github.com/helmcode/sentiment-triage/pkg/formatter"
	"github.com/helmcode/sentiment-triage/pkg/parser"
	"github.com/helmcode/sentiment-triage/pkg/upstream"
)

var (
	classifyOutputFormat string
	classifyRulesFile    string
	classifyUpstreamURL  string
	classifyTimeout      time.Duration
)

func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [TEXT]",
		Short: "Classify a text and print its sentiment and severity",
		Long: `Classify a text by keyword matching and print the sentiment and severity.

When TEXT is omitted a JSON document {"text": "..."} is read from standard input.

Examples:
  # Classify a text given as argument
  sentiment-triage classify "There was an emergency"

  # Read the request from stdin and print JSON
  echo '{"text":"Please heed this warning"}' | sentiment-triage classify -o json

  # Ask an external sentiment service first, falling back to keywords
  sentiment-triage classify "I need help" --upstream http://localhost:5000/analyze`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringVarP(&classifyOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&classifyRulesFile, "rules", "", "YAML keyword rules file (overrides config rules_file)")
	cmd.Flags().StringVar(&classifyUpstreamURL, "upstream", "", "Sentiment service URL (overrides config upstream.url)")
	cmd.Flags().DurationVar(&classifyTimeout, "timeout", 0, "Sentiment service timeout (overrides config upstream.timeout)")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		text, err = readTextFromStdin(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	rulesFile := cfg.RulesFile
	if classifyRulesFile != "" {
		rulesFile = classifyRulesFile
	}
	c, err := classifier.NewFromFile(rulesFile)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	upstreamURL := cfg.Upstream.URL
	if classifyUpstreamURL != "" {
		upstreamURL = classifyUpstreamURL
	}
	timeout, err := cfg.UpstreamTimeout()
	if err != nil {
		return err
	}
	if classifyTimeout > 0 {
		timeout = classifyTimeout
	}

	a := analyzer.New(c, logger)
	if upstreamURL != "" {
		a = analyzer.NewWithUpstream(c, upstream.NewWithTimeout(upstreamURL, timeout), logger)
	}

	var s *spinner.Spinner
	if upstreamURL != "" && classifyOutputFormat == "human" {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		s.Suffix = " Asking sentiment service..."
		s.Start()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	analysis := a.Analyze(ctx, text)

	if s != nil {
		s.Stop()
	}

	return formatter.DisplayResult(cmd.OutOrStdout(), text, analysis, classifyOutputFormat)
}

func readTextFromStdin(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no TEXT argument given and stdin is a terminal")
		}
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	input, err := parser.ParseInput(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse stdin: %w", err)
	}
	return input.Text, nil
}
