package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/client-go/util/homedir"
)

// Config holds sentiment-triage configuration.
type Config struct {
	// Path to a YAML keyword rule table; empty means the built-in table
	RulesFile string `yaml:"rules_file"`

	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// UpstreamConfig points at an optional external sentiment service.
type UpstreamConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Upstream: UpstreamConfig{
			Timeout: "10s",
		},
	}
}

// DefaultPath returns $HOME/.config/sentiment-triage/config.yaml, or an
// empty string when the home directory is unknown.
func DefaultPath() string {
	home := homedir.HomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "sentiment-triage", "config.yaml")
}

// Load reads the config file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SENTIMENT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SENTIMENT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("SENTIMENT_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SENTIMENT_UPSTREAM_URL"); v != "" {
		c.Upstream.URL = v
	}
	if v := os.Getenv("SENTIMENT_UPSTREAM_TIMEOUT"); v != "" {
		c.Upstream.Timeout = v
	}
	if v := os.Getenv("SENTIMENT_RULES_FILE"); v != "" {
		c.RulesFile = v
	}
}

// Validate checks enumerated fields and durations.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q (supported: debug, info, warn, error)", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format %q (supported: json, console)", c.Logging.Format)
	}
	if _, err := c.UpstreamTimeout(); err != nil {
		return err
	}
	return nil
}

// UpstreamTimeout parses Upstream.Timeout; empty means zero, which the
// upstream client replaces with its own default.
func (c *Config) UpstreamTimeout() (time.Duration, error) {
	if c.Upstream.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Upstream.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid upstream.timeout %q: %w", c.Upstream.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid upstream.timeout %q: must not be negative", c.Upstream.Timeout)
	}
	return d, nil
}
