package telemetry

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc/credentials"
)

// newResource creates a resource describing the service.
func newResource(cfg *Config) (*resource.Resource, error) {
	// Standalone resource to avoid schema URL conflicts with
	// resource.Default(), which uses a different semconv version.
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	), nil
}

// newLoggerProvider creates a LoggerProvider with an OTLP log exporter.
func newLoggerProvider(ctx context.Context, cfg *Config, res *resource.Resource) (*sdklog.LoggerProvider, error) {
	var exporter sdklog.Exporter
	var err error

	protocol := cfg.Protocol
	if protocol == "" {
		protocol = "grpc"
	}

	headers := authHeaders(cfg)

	switch protocol {
	case "http/protobuf":
		// HTTP/protobuf exporter for HTTPS endpoints
		opts := []otlploghttp.Option{
			otlploghttp.WithEndpoint(stripScheme(cfg.Endpoint)),
		}
		if headers != nil {
			opts = append(opts, otlploghttp.WithHeaders(headers))
		}
		if cfg.Insecure {
			opts = append(opts, otlploghttp.WithInsecure())
		} else if cfg.TLSSkipVerify {
			// Skip TLS verification for internal CAs
			opts = append(opts, otlploghttp.WithTLSClientConfig(&tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // User explicitly requested
			}))
		}
		exporter, err = otlploghttp.New(ctx, opts...)
	default: // "grpc"
		opts := []otlploggrpc.Option{
			otlploggrpc.WithEndpoint(cfg.Endpoint),
		}
		if headers != nil {
			opts = append(opts, otlploggrpc.WithHeaders(headers))
		}
		if cfg.Insecure {
			opts = append(opts, otlploggrpc.WithInsecure())
		} else if cfg.TLSSkipVerify {
			// Skip TLS verification for internal CAs
			opts = append(opts, otlploggrpc.WithTLSCredentials(credentials.NewTLS(&tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // User explicitly requested
			})))
		}
		exporter, err = otlploggrpc.New(ctx, opts...)
	}

	if err != nil {
		return nil, fmt.Errorf("creating log exporter: %w", err)
	}

	processor := sdklog.NewBatchProcessor(exporter,
		sdklog.WithExportInterval(cfg.Export.Interval.Duration()),
	)

	lp := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(processor),
	)

	return lp, nil
}

// authHeaders builds the export headers for an authenticated
// collector, or nil when no token is configured. The token lives in a
// config.Secret so it can never leak through logs or serialization.
func authHeaders(cfg *Config) map[string]string {
	if !cfg.AuthToken.IsSet() {
		return nil
	}
	return map[string]string{
		"Authorization": "Bearer " + cfg.AuthToken.Value(),
	}
}

// stripScheme removes http:// or https:// from an endpoint URL.
// The OTel HTTP exporters expect just host:port, not full URLs.
func stripScheme(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return endpoint
}
