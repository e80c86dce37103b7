package observability

import (
	"context"
	"errors"
	"testing"
)

func TestValidateRequiresServiceName(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingServiceName) {
		t.Fatalf("got %v, want ErrMissingServiceName", err)
	}
}

func TestValidateRejectsUnknownTracingExporter(t *testing.T) {
	cfg := Config{ServiceName: "svc", Tracing: TracingConfig{Enabled: true, Exporter: "carrier-pigeon"}}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidTracingExporter) {
		t.Fatalf("got %v, want ErrInvalidTracingExporter", err)
	}
}

func TestValidateRejectsOutOfRangeSamplePct(t *testing.T) {
	cfg := Config{ServiceName: "svc", Tracing: TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.5}}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidSamplePct) {
		t.Fatalf("got %v, want ErrInvalidSamplePct", err)
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := Config{ServiceName: "svc", Logging: LoggingConfig{Enabled: true, Level: "shout"}}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("got %v, want ErrInvalidLogLevel", err)
	}
}

func TestValidateAcceptsFullyDisabledConfig(t *testing.T) {
	cfg := Config{ServiceName: "svc"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestNewObserverWithEverythingDisabledUsesNoopProviders(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "svc"})
	if err != nil {
		t.Fatalf("NewObserver: %v", err)
	}
	if obs.Tracer() == nil || obs.Meter() == nil || obs.Logger() == nil {
		t.Fatal("expected non-nil tracer/meter/logger even when disabled")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestNoOpObserverIsUsable(t *testing.T) {
	obs := NoOp()
	obs.Logger().Info(context.Background(), "hello")
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
