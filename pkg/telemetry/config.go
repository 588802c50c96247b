// Package telemetry manages the optional OpenTelemetry log backend for
// logbridge.
package telemetry

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/logbridge/internal/config"
)

// Config holds telemetry configuration.
type Config struct {
	Enabled        bool           `koanf:"enabled"`
	Endpoint       string         `koanf:"endpoint"`
	Protocol       string         `koanf:"protocol"` // "grpc" or "http/protobuf"
	ServiceName    string         `koanf:"service_name"`
	ServiceVersion string         `koanf:"service_version"`
	Insecure       bool           `koanf:"insecure"` // Use insecure connection (no TLS)
	TLSSkipVerify  bool           `koanf:"tls_skip_verify"`
	AuthToken      config.Secret  `koanf:"auth_token"` // Bearer token for authenticated collectors
	Export         ExportConfig   `koanf:"export"`
	Shutdown       ShutdownConfig `koanf:"shutdown"`
}

// ExportConfig controls log batching and export.
type ExportConfig struct {
	Interval config.Duration `koanf:"interval"`
}

// ShutdownConfig controls graceful shutdown behavior.
type ShutdownConfig struct {
	Timeout config.Duration `koanf:"timeout"`
}

// NewDefaultConfig returns telemetry defaults. Disabled by default so
// the shim works out of the box without a collector; set
// LOGBRIDGE_TELEMETRY_ENABLED=true or configure telemetry in
// config.yaml to enable.
func NewDefaultConfig() *Config {
	return &Config{
		Enabled:        false,
		Endpoint:       "localhost:4317",
		Protocol:       "grpc",
		ServiceName:    "logbridge",
		ServiceVersion: "0.1.0",
		Insecure:       true, // Insecure by default for local dev; set false for production TLS
		Export: ExportConfig{
			Interval: config.Duration(5 * time.Second),
		},
		Shutdown: ShutdownConfig{
			Timeout: config.Duration(5 * time.Second),
		},
	}
}

// Validate checks configuration for errors.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil // No validation needed if disabled
	}

	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when telemetry is enabled")
	}
	if c.Protocol != "" && c.Protocol != "grpc" && c.Protocol != "http/protobuf" {
		return fmt.Errorf("protocol must be 'grpc' or 'http/protobuf', got %q", c.Protocol)
	}
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required when telemetry is enabled")
	}
	if c.ServiceVersion == "" {
		return fmt.Errorf("service_version is required when telemetry is enabled")
	}
	if c.Export.Interval.Duration() <= 0 {
		return fmt.Errorf("export interval must be > 0")
	}
	if c.Shutdown.Timeout.Duration() <= 0 {
		return fmt.Errorf("shutdown timeout must be > 0")
	}
	return nil
}
