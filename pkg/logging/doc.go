// Package logging is a structured-observability shim: leveled log
// events, nested timing spans, ambient key/value context, and
// sensitive-field redaction, fully functional with or without a real
// telemetry backend.
//
// # Overview
//
// Three mechanisms compose through one emit path:
//   - Ambient context: a per-scope frame stack merged into every event
//   - Spans: scoped timers emitting one summary event on completion
//   - Capture sink: in-memory store of emitted events for assertions
//
// Every event is redacted before it is considered emitted, then routed
// to the real backend when one is configured and to the capture sink
// otherwise. Callers observe no difference beyond the absence of
// external export.
//
// # Usage
//
// Create a logger per logical scope (test invocation, request):
//
//	logger, err := logging.New(logging.NewDefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Emit with ambient context:
//
//	defer logger.Context(logging.Fields{"operation": "index"})()
//	logger.Info("repository indexed", logging.Fields{"files": 412})
//
// Time an operation:
//
//	span := logger.StartSpan("embed-batch", logging.Fields{"batch": 3})
//	defer span.End()
//
// # Backend selection
//
// Pass WithBackend to route to a real exporter; the ZapBackend tees a
// local JSON encoder with the OTel log bridge:
//
//	tel, _ := telemetry.New(ctx, telemetryCfg)
//	backend, _ := logging.NewZapBackend(cfg, tel.LoggerProvider())
//	logger, _ := logging.New(cfg, logging.WithBackend(backend))
//
// Selection is decided once at construction. Absence of a backend is
// not an error; it selects the capture path.
//
// # Testing
//
// Use NewCapture for a scope-fresh logger and sink:
//
//	logger, sink := logging.NewCapture(t)
//	logger.Info("test message", logging.Fields{"key": "value"})
//	sink.AssertLogged(t, zapcore.InfoLevel, "test message")
//	sink.AssertNoSecrets(t)
//
// Gate tests that need a live collector:
//
//	logging.RequireRealBackend(t, true)
//
// # Concurrency
//
// A Logger, its Stack, and its Sink belong to one logical execution
// scope. Parallel workers must each own their own Logger; the Sink
// tolerates concurrent appends but cross-goroutine ordering is
// best-effort only.
package logging
