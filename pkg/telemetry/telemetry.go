package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// Telemetry owns the optional OTel log backend for one process.
//
// Absence of a backend is configuration, not an error: a disabled
// config yields a no-op instance, and provider initialization errors
// degrade gracefully instead of failing the caller.
type Telemetry struct {
	config *Config

	loggerProvider *sdklog.LoggerProvider

	// Health tracking
	healthy  atomic.Bool
	degraded atomic.Bool
}

// New creates a Telemetry instance and initializes the log provider.
//
// If telemetry is disabled in config, returns a no-op instance whose
// LoggerProvider is nil, which selects the capture path downstream.
func New(ctx context.Context, cfg *Config) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	t := &Telemetry{config: cfg}
	t.healthy.Store(true)

	if !cfg.Enabled {
		return t, nil
	}

	res, err := newResource(cfg)
	if err != nil {
		t.setDegraded()
		return t, nil
	}

	lp, err := newLoggerProvider(ctx, cfg, res)
	if err != nil {
		t.setDegraded()
		return t, nil
	}
	t.loggerProvider = lp

	return t, nil
}

// LoggerProvider returns the provider for the zap→OTel bridge, or nil
// when telemetry is disabled or degraded.
func (t *Telemetry) LoggerProvider() log.LoggerProvider {
	if t == nil || t.loggerProvider == nil {
		return nil
	}
	return t.loggerProvider
}

// Shutdown flushes and stops the provider. Uses the configured
// shutdown timeout when the context has no deadline.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.loggerProvider == nil {
		return nil
	}

	if _, ok := ctx.Deadline(); !ok && t.config != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.Shutdown.Timeout.Duration())
		defer cancel()
	}

	t.healthy.Store(false)
	if err := t.loggerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("log provider shutdown: %w", err)
	}
	return nil
}

// ForceFlush immediately exports all pending log records.
func (t *Telemetry) ForceFlush(ctx context.Context) error {
	if t == nil || t.loggerProvider == nil {
		return nil
	}
	if err := t.loggerProvider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("log flush: %w", err)
	}
	return nil
}

// HealthStatus is the current backend health.
type HealthStatus struct {
	Healthy  bool
	Degraded bool
}

// Health returns the current telemetry health status.
func (t *Telemetry) Health() HealthStatus {
	if t == nil {
		return HealthStatus{Healthy: false, Degraded: true}
	}
	return HealthStatus{
		Healthy:  t.healthy.Load(),
		Degraded: t.degraded.Load(),
	}
}

// IsEnabled returns true if telemetry is enabled and healthy.
func (t *Telemetry) IsEnabled() bool {
	if t == nil || t.config == nil {
		return false
	}
	return t.config.Enabled && t.healthy.Load() && !t.degraded.Load()
}

func (t *Telemetry) setDegraded() {
	t.degraded.Store(true)
}
