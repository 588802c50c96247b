// pkg/logging/logger.go
package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Logger is the leveled emit surface for one logical execution scope.
// It owns the scope's context stack and capture sink. Every emit path
// is identical: effective ambient context, call-site fields over it,
// redaction, entry construction, then routing — to the real backend if
// one is configured, else to the sink.
//
// One Logger per test invocation or request; parallel workers must
// each construct their own.
type Logger struct {
	config   *Config
	redactor *Redactor
	stack    *Stack
	sink     *Sink
	backend  Backend
}

// Option configures a Logger.
type Option func(*Logger)

// WithBackend routes emitted entries to a real backend instead of the
// capture sink. Selection happens once, at construction.
func WithBackend(b Backend) Option {
	return func(l *Logger) { l.backend = b }
}

// WithSink substitutes a caller-owned sink, e.g. to share one sink
// across sequential sub-scopes of a single test.
func WithSink(s *Sink) Option {
	return func(l *Logger) { l.sink = s }
}

// New creates a Logger from config. With no options, entries are
// captured in a fresh sink.
func New(cfg *Config, opts ...Option) (*Logger, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	redactor, err := NewRedactor(cfg.Redaction)
	if err != nil {
		return nil, fmt.Errorf("failed to create redactor: %w", err)
	}

	l := &Logger{
		config:   cfg,
		redactor: redactor,
		stack:    NewStack(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sink == nil {
		l.sink = NewSink()
	}
	return l, nil
}

// Sink returns the logger's capture sink. Entries only land here when
// no real backend is configured.
func (l *Logger) Sink() *Sink { return l.sink }

// Stack returns the logger's context stack.
func (l *Logger) Stack() *Stack { return l.stack }

// RealBackend reports whether entries route to a real backend.
func (l *Logger) RealBackend() bool { return l.backend != nil }

// Leveled emit methods. These are the sole level-specific entry points
// and share one merge path.

func (l *Logger) Debug(msg string, fields ...Fields) {
	l.emit(zapcore.DebugLevel, msg, fields)
}

func (l *Logger) Info(msg string, fields ...Fields) {
	l.emit(zapcore.InfoLevel, msg, fields)
}

func (l *Logger) Warn(msg string, fields ...Fields) {
	l.emit(zapcore.WarnLevel, msg, fields)
}

func (l *Logger) Error(msg string, fields ...Fields) {
	l.emit(zapcore.ErrorLevel, msg, fields)
}

// emit merges ambient context with call-site fields (fields win on
// collision), redacts, and routes the resulting entry.
func (l *Logger) emit(level zapcore.Level, msg string, fields []Fields) {
	merged := l.stack.Effective()
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	merged = l.redactor.Apply(merged)

	entry := newEntry(level, msg, merged, time.Now())

	if l.backend != nil {
		l.backend.Forward(entry.level, entry.message, entry.fields, entry.timestamp)
		return
	}
	l.sink.append(entry)
}
