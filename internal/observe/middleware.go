package observe

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// probeWriter records the status and body size of a probe or scrape
// response. Only the first WriteHeader counts.
type probeWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (p *probeWriter) WriteHeader(code int) {
	if p.status == 0 {
		p.status = code
	}
	p.ResponseWriter.WriteHeader(code)
}

func (p *probeWriter) Write(b []byte) (int, error) {
	if p.status == 0 {
		p.status = http.StatusOK
	}
	n, err := p.ResponseWriter.Write(b)
	p.written += int64(n)
	return n, err
}

func (p *probeWriter) code() int {
	if p.status == 0 {
		return http.StatusOK
	}
	return p.status
}

// statusClass buckets a status code as "2xx", "4xx" and so on.
func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

// Middleware instruments the telemetry listener. Each request gets a server
// span that continues an incoming traceparent, an X-Request-ID response
// header and a duration sample in [Metrics.HTTPRequestDuration]. Scrapes are
// frequent, so completion is logged at debug level.
func Middleware(m *Metrics) func(http.Handler) http.Handler {
	prop := propagation.TraceContext{}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path

			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := StartSpan(ctx, "HTTP "+r.Method+" "+path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(path),
				),
			)
			defer span.End()

			ctx, reqID := WithRequestID(ctx)
			w.Header().Set("X-Request-ID", reqID)
			prop.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			pw := &probeWriter{ResponseWriter: w}
			next.ServeHTTP(pw, r.WithContext(ctx))
			status := pw.code()
			elapsed := time.Since(start)

			m.HTTPRequestDuration.Record(ctx, elapsed.Seconds(),
				metric.WithAttributes(
					attribute.String("method", r.Method),
					attribute.String("path", path),
					attribute.String("status_class", statusClass(status)),
				),
			)
			span.SetAttributes(
				semconv.HTTPResponseStatusCode(status),
				semconv.HTTPResponseBodySize(int(pw.written)),
			)
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			Logger(ctx).LogAttrs(ctx, slog.LevelDebug, "telemetry request",
				slog.String("method", r.Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Int64("bytes", pw.written),
				slog.Duration("duration", elapsed),
			)
		})
	}
}
