// Package config loads navigator settings from the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	LogLevel  string `env:"NAVIGATOR_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"NAVIGATOR_LOG_FORMAT" envDefault:"console"`

	// ScriptPath replays answers from a YAML file instead of reading stdin.
	ScriptPath string `env:"NAVIGATOR_SCRIPT"`
	MetricsDir string `env:"NAVIGATOR_METRICS_DIR"`

	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIModel      string        `env:"NAVIGATOR_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL    string        `env:"NAVIGATOR_OPENAI_BASE_URL"`
	NarrativeTimeout time.Duration `env:"NAVIGATOR_NARRATIVE_TIMEOUT" envDefault:"20s"`

	OTelEndpoint string `env:"NAVIGATOR_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment, then lets flags in args override it.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")
	fs.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "YAML file with scripted answers")
	fs.StringVar(&cfg.MetricsDir, "metrics-dir", cfg.MetricsDir, "directory for session CSV records")
	fs.StringVar(&cfg.OpenAIModel, "model", cfg.OpenAIModel, "chat model used for the narrative")
	fs.DurationVar(&cfg.NarrativeTimeout, "narrative-timeout", cfg.NarrativeTimeout, "timeout for the narrative call")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
