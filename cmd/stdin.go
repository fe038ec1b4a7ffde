package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/sentiment-triage/pkg/adapter"
	"github.com/helmcode/sentiment-triage/pkg/classifier"
)

var (
	stdinRulesFile   string
	stdinFailOnError bool
)

// AddStdinFlags registers the flags of the default stdin/stdout mode.
func AddStdinFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&stdinRulesFile, "rules", "", "YAML keyword rules file (overrides config rules_file)")
	cmd.Flags().BoolVar(&stdinFailOnError, "fail-on-error", false, "Exit with status 1 when an error object is written")
}

// RunStdin reads one JSON document from stdin and writes the classification
// to stdout, or a single error object to stderr. The exit status stays 0 on
// reported errors unless --fail-on-error is set.
func RunStdin(cmd *cobra.Command, args []string) error {
	err := runStdin(cmd)
	if err == nil {
		return nil
	}
	if stdinFailOnError {
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}

func runStdin(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return report(cmd, err)
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = newLogger(cfg); err != nil {
			return report(cmd, err)
		}
		defer func() { _ = logger.Sync() }()
	}

	rulesFile := cfg.RulesFile
	if stdinRulesFile != "" {
		rulesFile = stdinRulesFile
	}
	c, err := classifier.NewFromFile(rulesFile)
	if err != nil {
		return report(cmd, err)
	}

	return adapter.New(c, logger).Run(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func report(cmd *cobra.Command, err error) error {
	if werr := adapter.WriteError(cmd.ErrOrStderr(), err); werr != nil {
		return werr
	}
	return err
}
