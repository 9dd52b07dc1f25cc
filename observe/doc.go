// Package observe provides telemetry primitives for the cache core.
//
// It wires OpenTelemetry tracing and metrics plus structured JSON logging
// behind a single Observer, with exporter factories for otlp, prometheus,
// and stdout backends.
package observe
