// Package telemetry initializes and manages the optional OTLP log
// backend.
//
// The backend is probed once, at process start, behind a single narrow
// interface (log.LoggerProvider): when disabled or unreachable the
// provider is nil and the logging shim routes to its in-memory capture
// sink with no behavioral difference observable to callers.
//
//	tel, err := telemetry.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tel.Shutdown(ctx)
//
//	backend, err := logging.NewZapBackend(logCfg, tel.LoggerProvider())
//
// Telemetry failures never crash the application; the instance
// degrades and Health() reports it.
package telemetry
