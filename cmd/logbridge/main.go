// Package main implements the logbridge CLI for exercising the shim
// against the capture sink or a live OTLP collector.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/logbridge/internal/config"
	"github.com/fyrsmithlabs/logbridge/pkg/logging"
	"github.com/fyrsmithlabs/logbridge/pkg/telemetry"
)

var (
	// configPath overrides the default config file location
	configPath string
	// logLevel overrides the configured backend log level
	logLevel string
	// version information (set via ldflags during build)
	version = "dev"
)

// cliConfig aggregates the sections the CLI loads from file and env.
type cliConfig struct {
	Logging   *logging.Config   `koanf:"logging"`
	Telemetry *telemetry.Config `koanf:"telemetry"`
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logbridge",
	Short: "Structured-observability shim demo and diagnostics",
	Long: `logbridge exercises the observability shim: ambient context,
spans, redaction, and backend selection.

Without a collector, events land in the in-memory capture sink and are
printed as JSON. With telemetry enabled (config file or
LOGBRIDGE_TELEMETRY_ENABLED=true), events are forwarded over OTLP.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/logbridge/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "level", "", "minimum backend log level (debug, info, warn, error)")
	rootCmd.AddCommand(demoCmd)
}

// demoCmd emits a representative event sequence.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Emit sample events through the shim",
	Long: `Emit a sample sequence of leveled events, nested spans, ambient
context, and a redacted credential field.

Examples:
  # Capture-only, print the sink
  logbridge demo

  # Forward to a local collector
  LOGBRIDGE_TELEMETRY_ENABLED=true logbridge demo`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg := cliConfig{
		Logging:   logging.NewDefaultConfig(),
		Telemetry: telemetry.NewDefaultConfig(),
	}
	if err := config.Load(configPath, &cfg); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		lvl, err := logging.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("parsing --level: %w", err)
		}
		cfg.Logging.Level = lvl
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tel, err := telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer tel.Shutdown(ctx)

	opts := []logging.Option{}
	if provider := tel.LoggerProvider(); provider != nil {
		backend, err := logging.NewZapBackend(cfg.Logging, provider)
		if err != nil {
			return fmt.Errorf("initializing backend: %w", err)
		}
		defer backend.Sync()
		opts = append(opts, logging.WithBackend(backend))
	}

	logger, err := logging.New(cfg.Logging, opts...)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	emitDemo(logger)

	if !logger.RealBackend() {
		return printSink(cmd, logger.Sink())
	}
	fmt.Fprintln(cmd.OutOrStdout(), "events forwarded to real backend")
	return nil
}

// emitDemo walks the shim's surface: ambient context, nested spans,
// call-site precedence, and redaction.
func emitDemo(logger *logging.Logger) {
	release := logger.Context(logging.Fields{"operation": "demo", "attempt": 1})
	defer release()

	logger.Info("demo started", logging.Fields{"pid": os.Getpid()})

	outer := logger.StartSpan("process-batch", logging.Fields{"batch": 1})
	inner := logger.StartSpan("parse-item")
	logger.Debug("parsing item", logging.Fields{"item": "a1"})
	time.Sleep(5 * time.Millisecond)
	inner.End()
	outer.End()

	logger.Warn("credential received", logging.Fields{
		"user":     "demo",
		"password": "hunter2",
	})

	if err := failingStep(); err != nil {
		logger.Error("step failed", logging.Fields{"error": err})
	}
}

func failingStep() error {
	return errors.New("demo step intentionally failed")
}

// printSink renders captured entries as JSON lines.
func printSink(cmd *cobra.Command, sink *logging.Sink) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, e := range sink.Entries() {
		record := map[string]any{
			"ts":     e.Timestamp().Format(time.RFC3339Nano),
			"level":  e.Level().String(),
			"msg":    e.Message(),
			"fields": e.Fields(),
		}
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}
	}
	return nil
}
