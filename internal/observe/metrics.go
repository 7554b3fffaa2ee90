// Package observe provides application-wide observability primitives for
// activitymcp: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint on the telemetry listener. A
// package-level default [Metrics] instance ([DefaultMetrics]) is provided for
// convenience; tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all activitymcp metrics.
const meterName = "github.com/MrWong99/activitymcp"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use; the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms ---

	// ToolDuration tracks end-to-end MCP tool call latency.
	ToolDuration metric.Float64Histogram

	// SubmissionDuration tracks the backend HTTP round trip. Use with
	// attributes:
	//   attribute.String("backend", ...), attribute.String("kind", ...)
	SubmissionDuration metric.Float64Histogram

	// --- Counters ---

	// ToolCalls counts tool invocations. Use with attributes:
	//   attribute.String("tool", ...), attribute.String("status", ...)
	ToolCalls metric.Int64Counter

	// Submissions counts classified backend responses. Use with attributes:
	//   attribute.String("backend", ...), attribute.String("kind", ...),
	//   attribute.String("outcome", ...)
	Submissions metric.Int64Counter

	// DocumentReads counts documentation lookups. Use with attributes:
	//   attribute.String("document", ...), attribute.String("status", ...)
	DocumentReads metric.Int64Counter

	// --- Error counters ---

	// TransportErrors counts submissions that never produced an HTTP
	// response. Use with attribute:
	//   attribute.String("backend", ...)
	TransportErrors metric.Int64Counter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks telemetry listener request time. Use with
	// attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// remote API round trips.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.ToolDuration, err = m.Float64Histogram("activitymcp.tool.duration",
		metric.WithDescription("Latency of MCP tool calls."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SubmissionDuration, err = m.Float64Histogram("activitymcp.submission.duration",
		metric.WithDescription("Latency of activity submissions to the reporting backends."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.ToolCalls, err = m.Int64Counter("activitymcp.tool.calls",
		metric.WithDescription("Total tool invocations by tool name and status."),
	); err != nil {
		return nil, err
	}
	if met.Submissions, err = m.Int64Counter("activitymcp.submissions",
		metric.WithDescription("Total backend submissions by backend, activity kind, and outcome."),
	); err != nil {
		return nil, err
	}
	if met.DocumentReads, err = m.Int64Counter("activitymcp.document.reads",
		metric.WithDescription("Total documentation reads by document and status."),
	); err != nil {
		return nil, err
	}

	// Error counters.
	if met.TransportErrors, err = m.Int64Counter("activitymcp.transport.errors",
		metric.WithDescription("Total submissions that failed before a response was received."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("activitymcp.http.request.duration",
		metric.WithDescription("Telemetry listener request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordToolCall records one tool invocation and its latency.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, d time.Duration) {
	m.ToolCalls.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("tool", tool),
			attribute.String("status", status),
		),
	)
	m.ToolDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(attribute.String("tool", tool)),
	)
}

// RecordSubmission records one classified backend response and the round
// trip latency.
func (m *Metrics) RecordSubmission(ctx context.Context, backend, kind, outcome string, d time.Duration) {
	m.Submissions.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("backend", backend),
			attribute.String("kind", kind),
			attribute.String("outcome", outcome),
		),
	)
	m.SubmissionDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(
			attribute.String("backend", backend),
			attribute.String("kind", kind),
		),
	)
}

// RecordTransportError records a submission that failed at the network layer.
func (m *Metrics) RecordTransportError(ctx context.Context, backend string) {
	m.TransportErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("backend", backend)),
	)
}

// RecordDocumentRead records a documentation lookup.
func (m *Metrics) RecordDocumentRead(ctx context.Context, document, status string) {
	m.DocumentReads.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("document", document),
			attribute.String("status", status),
		),
	)
}
