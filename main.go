package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"navigator/config"
	"navigator/engine"
	"navigator/narrative"
	"navigator/telemetry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	if err := config.SetupLogging(cfg, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, stdin io.Reader, stdout io.Writer) error {
	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	lines := engine.NewLineInput(stdin)
	defer lines.Close()
	var input engine.Input = lines
	if cfg.ScriptPath != "" {
		script, err := engine.LoadScript(cfg.ScriptPath)
		if err != nil {
			return err
		}
		input = script
	}

	var narrator narrative.Generator = narrative.Static{}
	if cfg.OpenAIAPIKey != "" {
		narrator = narrative.NewOpenAI(cfg.OpenAIAPIKey,
			narrative.WithModel(cfg.OpenAIModel),
			narrative.WithBaseURL(cfg.OpenAIBaseURL),
			narrative.WithTimeout(cfg.NarrativeTimeout),
		)
	} else {
		log.Info().Msg("OPENAI_API_KEY not set, using the built-in narrative")
	}

	fmt.Fprintln(stdout, "========================================")
	fmt.Fprintln(stdout, "      GRANDMASTER STRATEGY NAVIGATOR")
	fmt.Fprintln(stdout, "========================================")

	session := engine.NewSession(input, stdout,
		engine.WithNarrator(narrator),
		engine.WithMetricsDir(cfg.MetricsDir),
		engine.WithEcho(cfg.ScriptPath != ""),
	)
	_, err = session.Run(ctx)
	if errors.Is(err, engine.ErrAbandoned) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(stdout, "Session ended.")
		return nil
	}
	return err
}
