package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/sentiment-triage/pkg/analyzer"
	"github.com/helmcode/sentiment-triage/pkg/classifier"
	"github.com/helmcode/sentiment-triage/pkg/server"
	"github.com/helmcode/sentiment-triage/pkg/upstream"
)

var (
	serveAddr        string
	serveRulesFile   string
	serveUpstreamURL string
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sentiment analysis HTTP API",
		Long: `Serve POST /api/analyze-sentiment with body {"text": "..."}.

If an upstream sentiment service is configured it is asked first; when it
fails the keyword classifier answers and a warning is attached.

Examples:
  # Listen on the configured address (default :8080)
  sentiment-triage serve

  # Listen on another port and forward to an external service
  sentiment-triage serve --addr :9000 --upstream http://ml.internal/analyze`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config server.addr)")
	cmd.Flags().StringVar(&serveRulesFile, "rules", "", "YAML keyword rules file (overrides config rules_file)")
	cmd.Flags().StringVar(&serveUpstreamURL, "upstream", "", "Sentiment service URL (overrides config upstream.url)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rulesFile := cfg.RulesFile
	if serveRulesFile != "" {
		rulesFile = serveRulesFile
	}
	c, err := classifier.NewFromFile(rulesFile)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	upstreamURL := cfg.Upstream.URL
	if serveUpstreamURL != "" {
		upstreamURL = serveUpstreamURL
	}

	a := analyzer.New(c, logger)
	if upstreamURL != "" {
		timeout, err := cfg.UpstreamTimeout()
		if err != nil {
			return err
		}
		up := upstream.NewWithTimeout(upstreamURL, timeout)
		a = analyzer.NewWithUpstream(c, up, logger)
		logger.Info("Using sentiment service", zap.String("url", up.URL()), zap.Duration("timeout", up.Timeout()))
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Serving on %s", addr))
	if err := server.New(a, logger).Run(ctx, addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
