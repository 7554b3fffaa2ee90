package observe

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// collect gathers all metric data from the reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name across all scope metrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumWhere returns the value of the first data point of a sum metric whose
// attribute key equals value.
func sumWhere(t *testing.T, rm metricdata.ResourceMetrics, name, key, value string) int64 {
	t.Helper()
	met := findMetric(rm, name)
	if met == nil {
		t.Fatalf("metric %q not found", name)
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %q is not a sum", name)
	}
	for _, dp := range sum.DataPoints {
		for _, kv := range dp.Attributes.ToSlice() {
			if string(kv.Key) == key && kv.Value.AsString() == value {
				return dp.Value
			}
		}
	}
	t.Fatalf("metric %q has no data point with %s=%s", name, key, value)
	return 0
}

func TestNewMetrics_CreatesWithoutError(t *testing.T) {
	m, _ := newTestMetrics(t)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestRecordToolCall(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordToolCall(ctx, "submit_mvp_video", "ok", 120*time.Millisecond)
	m.RecordToolCall(ctx, "submit_mvp_video", "ok", 80*time.Millisecond)
	m.RecordToolCall(ctx, "submit_mvp_video", "invalid_params", time.Millisecond)

	rm := collect(t, reader)
	if got := sumWhere(t, rm, "activitymcp.tool.calls", "status", "ok"); got != 2 {
		t.Errorf("ok calls = %d, want 2", got)
	}

	met := findMetric(rm, "activitymcp.tool.duration")
	if met == nil {
		t.Fatal("tool duration metric not found")
	}
	hist, ok := met.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("tool duration is not a histogram")
	}
	if len(hist.DataPoints) == 0 || hist.DataPoints[0].Count != 3 {
		t.Errorf("tool duration data points = %+v, want one point with 3 samples", hist.DataPoints)
	}
}

func TestRecordSubmission(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordSubmission(ctx, "MVP", "mvp_video", "success", time.Second)
	m.RecordSubmission(ctx, "GDE", "gde_story", "rate_limited", time.Second)
	m.RecordSubmission(ctx, "GDE", "gde_story", "rate_limited", time.Second)

	rm := collect(t, reader)
	if got := sumWhere(t, rm, "activitymcp.submissions", "outcome", "rate_limited"); got != 2 {
		t.Errorf("rate_limited = %d, want 2", got)
	}
	if got := sumWhere(t, rm, "activitymcp.submissions", "outcome", "success"); got != 1 {
		t.Errorf("success = %d, want 1", got)
	}
	if findMetric(rm, "activitymcp.submission.duration") == nil {
		t.Error("submission duration metric not found")
	}
}

func TestRecordTransportError(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordTransportError(context.Background(), "GDE")

	rm := collect(t, reader)
	if got := sumWhere(t, rm, "activitymcp.transport.errors", "backend", "GDE"); got != 1 {
		t.Errorf("transport errors = %d, want 1", got)
	}
}

func TestRecordDocumentRead(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordDocumentRead(ctx, "mvp-api-reference", "ok")
	m.RecordDocumentRead(ctx, "nonexistent", "not_found")

	rm := collect(t, reader)
	if got := sumWhere(t, rm, "activitymcp.document.reads", "status", "not_found"); got != 1 {
		t.Errorf("not_found reads = %d, want 1", got)
	}
}

func TestDefaultMetrics_ReturnsSameInstance(t *testing.T) {
	// DefaultMetrics uses the global OTel provider so we just check
	// that repeated calls return the same pointer.
	a := DefaultMetrics()
	b := DefaultMetrics()
	if a != b {
		t.Error("DefaultMetrics returned different pointers")
	}
}
