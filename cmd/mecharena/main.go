// Package main is the entry point for MechArena.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/mecharena/internal/game"
	"github.com/samdwyer/mecharena/internal/logging"
	"github.com/samdwyer/mecharena/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	mode := flag.String("mode", "", "play or simulate, overrides the config")
	flag.Parse()

	// Load .env file for local development
	// This makes HONEYCOMB_MECHARENA_API_KEY available
	if err := godotenv.Load(); err != nil {
		logging.Info("no .env file loaded", logging.Fields{"reason": err.Error()})
	}

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logging.Warn("telemetry disabled", logging.Fields{"error": err.Error()})
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logging.Error("telemetry shutdown failed", err, nil)
			}
		}()
	}

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal("failed to load config", err, logging.Fields{"path": *configPath})
	}
	if *mode != "" {
		cfg.Mode = *mode
		if err := cfg.Validate(); err != nil {
			logging.Fatal("invalid mode", err, nil)
		}
	}

	cat, err := game.LoadCatalog()
	if err != nil {
		logging.Fatal("failed to load game data", err, nil)
	}

	if cfg.Mode == game.ModeSimulate {
		simulate(ctx, cat, cfg)
		return
	}

	if err := play(ctx, cat, cfg); err != nil {
		logging.Fatal("game error", err, nil)
	}
}

func simulate(ctx context.Context, cat *game.Catalog, cfg game.Config) {
	result, err := game.Simulate(ctx, cat, cfg)
	if err != nil {
		logging.Fatal("simulation failed", err, nil)
	}

	fmt.Printf("%d matches, %d turns\n", result.Matches, result.Turns)
	fmt.Printf("  %-10s %d wins\n", cfg.Player.Name, result.Wins["p1"])
	fmt.Printf("  %-10s %d wins\n", cfg.Opponent.Name, result.Wins["p2"])
	fmt.Printf("  %-10s %d\n", "draws", result.Draws)
}

// play runs the terminal match. Logs go to cfg.LogFile while tcell owns the
// screen.
func play(ctx context.Context, cat *game.Catalog, cfg game.Config) error {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logging.SetOutput(f)
	} else {
		logging.SetOutput(io.Discard)
	}

	g, err := game.New(cfg, cat)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}
	defer g.Close()

	return g.Run(ctx)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_MECHARENA_API_KEY")
	dataset := os.Getenv("HONEYCOMB_MECHARENA_DATASET")
	if dataset == "" {
		dataset = "mecharena"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
