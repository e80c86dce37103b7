// Package observability provides tracing, metrics, and structured
// logging for resilience components (circuit breakers, retriers, rate
// limiters, bulkheads, timeouts).
//
// It is a pure instrumentation library: no execution, no transport, no
// I/O beyond exporter setup. Callers wire an Observer into the root
// resilicore.Executor via Middleware, and into individual components
// via the Instrument* helpers.
package observability
