package observability

import "errors"

// Configuration errors.
var (
	ErrMissingServiceName     = errors.New("observability: service name is required")
	ErrInvalidSamplePct       = errors.New("observability: sample percentage must be between 0.0 and 1.0")
	ErrInvalidTracingExporter = errors.New("observability: invalid tracing exporter")
	ErrInvalidMetricsExporter = errors.New("observability: invalid metrics exporter")
	ErrInvalidLogLevel        = errors.New("observability: invalid log level")
)

// Runtime errors.
var (
	ErrNilObserver          = errors.New("observability: observer is nil")
	ErrMissingComponentName = errors.New("observability: component name is required")
)

// Validation constants.
const (
	MinSamplePct = 0.0
	MaxSamplePct = 1.0
)

// ValidTracingExporters lists valid tracing exporter names.
var ValidTracingExporters = []string{"otlp", "jaeger", "stdout", "none", ""}

// ValidMetricsExporters lists valid metrics exporter names.
var ValidMetricsExporters = []string{"otlp", "prometheus", "stdout", "none", ""}

// ValidLogLevels lists valid log level names.
var ValidLogLevels = []string{"debug", "info", "warn", "error", ""}
