// pkg/logging/backend.go
package logging

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Backend is the real telemetry export path. The shim's only contract
// with it is "forward after redaction, do not forward before". When no
// backend is configured, entries route to the capture sink instead.
type Backend interface {
	Forward(level zapcore.Level, msg string, fields Fields, ts time.Time)
}

// ZapBackend forwards entries through a zap logger whose core tees a
// local stdout encoder with the OTel log bridge.
type ZapBackend struct {
	zap *zap.Logger
}

// NewZapBackend builds the backend from config.
// otelProvider can be nil to disable OTel output.
func NewZapBackend(cfg *Config, otelProvider log.LoggerProvider) (*ZapBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	core := newDualCore(cfg, otelProvider)

	zapLogger := zap.New(core)

	if len(cfg.Fields) > 0 {
		fields := make([]zap.Field, 0, len(cfg.Fields))
		for k, v := range cfg.Fields {
			fields = append(fields, zap.String(k, v))
		}
		zapLogger = zapLogger.With(fields...)
	}

	return &ZapBackend{zap: zapLogger}, nil
}

// Forward exports one already-redacted event. Fields are emitted in
// sorted key order so output is stable.
func (b *ZapBackend) Forward(level zapcore.Level, msg string, fields Fields, _ time.Time) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	zfields := make([]zap.Field, 0, len(fields))
	for _, k := range keys {
		zfields = append(zfields, zap.Any(k, fields[k]))
	}
	b.zap.Log(level, msg, zfields...)
}

// Sync flushes any buffered log entries.
func (b *ZapBackend) Sync() error {
	err := b.zap.Sync()
	// Ignore sync errors on stdout/stderr (common on Linux)
	if err != nil && isStdoutSyncError(err) {
		return nil
	}
	return err
}

// newDualCore creates a core with stdout and/or OTel outputs.
func newDualCore(cfg *Config, otelProvider log.LoggerProvider) zapcore.Core {
	cores := make([]zapcore.Core, 0, 2)

	writer := zapcore.AddSync(os.Stdout)
	cores = append(cores, zapcore.NewCore(newEncoder(cfg.Format), writer, cfg.Level))

	if otelProvider != nil {
		cores = append(cores, otelzap.NewCore("logbridge",
			otelzap.WithLoggerProvider(otelProvider),
		))
	}

	var core zapcore.Core
	if len(cores) == 1 {
		core = cores[0]
	} else {
		core = zapcore.NewTee(cores...)
	}

	return newSampledCore(core, cfg.Sampling)
}

// newEncoder creates JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

// isStdoutSyncError checks if error is a harmless stdout/stderr sync
// error. On Linux, syncing stdout/stderr returns EINVAL or ENOTTY.
func isStdoutSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
