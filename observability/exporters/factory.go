// Package exporters selects the OpenTelemetry trace exporter and
// metrics reader that observability.NewObserver wires into its SDK
// providers, from a small table of known exporter names, returning a
// corefault.Error for anything outside it.
package exporters

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/corevane/resilicore/corefault"
)

// NewTracingExporter creates a trace span exporter based on the exporter name.
// Supported exporters: stdout, otlp, jaeger, none
func NewTracingExporter(ctx context.Context, name string) (sdktrace.SpanExporter, error) {
	const op = "exporters.NewTracingExporter"

	switch name {
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
		if err != nil {
			return nil, corefault.Wrap(corefault.Instantiation, op, "stdout trace exporter", err)
		}
		return exp, nil

	case "otlp":
		endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
		if endpoint == "" {
			endpoint = os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")
		}
		if endpoint == "" {
			return nil, corefault.New(corefault.Validation, op,
				"OTLP endpoint not configured: set OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")
		}
		exp, err := otlptracegrpc.New(ctx)
		if err != nil {
			return nil, corefault.Wrap(corefault.Instantiation, op, "OTLP trace exporter", err)
		}
		return exp, nil

	case "jaeger":
		// Jaeger now speaks OTLP natively; we reuse the OTLP exporter
		// but gate it on the Jaeger-specific endpoint variable.
		endpoint := os.Getenv("OTEL_EXPORTER_JAEGER_ENDPOINT")
		if endpoint == "" {
			return nil, corefault.New(corefault.Validation, op,
				"Jaeger endpoint not configured: set OTEL_EXPORTER_JAEGER_ENDPOINT")
		}
		exp, err := otlptracegrpc.New(ctx)
		if err != nil {
			return nil, corefault.Wrap(corefault.Instantiation, op, "Jaeger (OTLP) trace exporter", err)
		}
		return exp, nil

	case "none", "":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
		if err != nil {
			return nil, corefault.Wrap(corefault.Instantiation, op, "no-op trace exporter", err)
		}
		return exp, nil

	default:
		return nil, corefault.New(corefault.ConfigurationNotFound, op, "unknown exporter: "+name)
	}
}

// NewMetricsReader creates a metrics reader based on the exporter name.
// Supported exporters: stdout, otlp, prometheus, none
func NewMetricsReader(ctx context.Context, name string) (sdkmetric.Reader, error) {
	const op = "exporters.NewMetricsReader"

	switch name {
	case "stdout":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stdout))
		if err != nil {
			return nil, corefault.Wrap(corefault.Instantiation, op, "stdout metrics exporter", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "otlp":
		endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
		if endpoint == "" {
			endpoint = os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT")
		}
		if endpoint == "" {
			return nil, corefault.New(corefault.Validation, op,
				"OTLP metrics endpoint not configured: set OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_METRICS_ENDPOINT")
		}
		exp, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, corefault.Wrap(corefault.Instantiation, op, "OTLP metrics exporter", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "prometheus":
		exp, err := prometheus.New()
		if err != nil {
			return nil, corefault.Wrap(corefault.Instantiation, op, "Prometheus exporter", err)
		}
		return exp, nil

	case "none", "":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
		if err != nil {
			return nil, corefault.Wrap(corefault.Instantiation, op, "no-op metrics exporter", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	default:
		return nil, corefault.New(corefault.ConfigurationNotFound, op, "unknown metrics exporter: "+name)
	}
}
