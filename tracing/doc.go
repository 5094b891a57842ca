// Package tracing wires OpenTelemetry into session building, proxy retrieval
// and job submission. Spans are no-ops until Init or InitWithExporter is called.
package tracing
