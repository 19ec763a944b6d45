// Package main is the entry point for Minesweeper.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samdwyer/minesweeper/internal/config"
	"github.com/samdwyer/minesweeper/internal/console"
	"github.com/samdwyer/minesweeper/internal/game"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	mode := flag.String("mode", "", "Front-end: tui or console (empty to use config default)")
	size := flag.Int("size", -1, "Board size (-1 to use config default)")
	mines := flag.Int("mines", -1, "Number of mines (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Random seed, 0 for time-based (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	// Load .env file for local development.
	// Missing is fine - env vars might be set directly.
	envErr := godotenv.Load()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	applyFlags(*mode, *size, *mines, *seed, *logLevel)

	cfg := config.Get()

	closeLog, err := setupLogging(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open log file")
	}
	defer closeLog()

	if envErr != nil {
		log.Debug().Err(envErr).Msg(".env file not loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		setupOTelEnv(cfg.Telemetry.Dataset)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Telemetry setup failed, running without tracing")
			telemetry.Disable()
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down telemetry")
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	config.WatchConfig(func(c config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
			return
		}
		log.Info().
			Int("size", c.Game.Size).
			Int("mines", c.Game.Mines).
			Msg("Config reloaded, applies to the next game")
	})

	settings := func() game.Config { return config.Get().GameSettings() }

	log.Info().
		Str("mode", cfg.UI.Mode).
		Int("size", cfg.Game.Size).
		Int("mines", cfg.Game.Mines).
		Str("config_file", config.ConfigFilePath()).
		Msg("Starting Minesweeper")

	if err := run(ctx, cfg.UI.Mode, settings); err != nil {
		log.Error().Err(err).Msg("Game error")
		fmt.Fprintf(os.Stderr, "minesweeper: %v\n", err)
		os.Exit(1)
	}
}

// run starts the selected front-end and blocks until the player quits.
func run(ctx context.Context, mode string, settings func() game.Config) error {
	if mode == config.ModeConsole {
		// Unblock the pending read on interrupt
		go func() {
			<-ctx.Done()
			os.Stdin.Close()
		}()

		err := console.New(os.Stdin, os.Stdout, settings).Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	g, err := game.New(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}
	return g.Run(ctx)
}

// applyFlags pushes explicitly given flags into the config so they survive
// file reloads.
func applyFlags(mode string, size, mines int, seed int64, logLevel string) {
	overrides := map[string]any{}
	if mode != "" {
		overrides["ui.mode"] = mode
	}
	if size != -1 {
		overrides["game.size"] = size
	}
	if mines != -1 {
		overrides["game.mines"] = mines
	}
	if seed != -1 {
		overrides["game.seed"] = seed
	}
	if logLevel != "" {
		overrides["logging.level"] = logLevel
	}

	if len(overrides) == 0 {
		return
	}
	if err := config.Override(overrides); err != nil {
		log.Fatal().Err(err).Msg("Invalid command line override")
	}
}

// setupLogging configures the global zerolog logger and returns a func that
// releases the log file, if one was opened.
func setupLogging(cfg config.Config) (func(), error) {
	var logLevel zerolog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var out io.Writer
	closeFn := func() {}
	switch {
	case cfg.Logging.File != "":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		out = f
		closeFn = func() { f.Close() }
	case cfg.UI.Mode == config.ModeTUI:
		// tcell owns the terminal
		out = io.Discard
	default:
		out = os.Stderr
	}

	if cfg.Logging.Format == "json" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.Logging.File != "",
		})
	}
	return closeFn, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv(defaultDataset string) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the header
	// is built here rather than read from OTEL_EXPORTER_OTLP_HEADERS.
	apiKey := os.Getenv("MINESWEEPER_HONEYCOMB_API_KEY")
	dataset := os.Getenv("MINESWEEPER_HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = defaultDataset
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
