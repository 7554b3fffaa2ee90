// Package submit sends normalized activities to their reporting backend and
// classifies the response into a caller-facing [Result].
//
// Every call performs exactly one HTTP POST. There are no retries; a
// rate-limited or failed submission is reported back to the caller, who
// decides whether to try again.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MrWong99/activitymcp/internal/activity"
	"github.com/MrWong99/activitymcp/internal/capability"
	"github.com/MrWong99/activitymcp/internal/observe"
)

// maxBodyBytes caps how much of a backend response is kept.
const maxBodyBytes = 1 << 20 // 1 MiB

// ErrBackendDisabled is returned when the activity's backend has no usable
// credentials.
var ErrBackendDisabled = errors.New("submit: backend not enabled")

// Outcome classifies a backend response.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeAuthFailed   Outcome = "auth_failed"
	OutcomeRejected     Outcome = "rejected"
	OutcomeRateLimited  Outcome = "rate_limited"
	OutcomeBackendError Outcome = "backend_error"
)

// Result is the classified outcome of one submission that reached the
// backend.
type Result struct {
	Backend activity.Backend
	Kind    activity.Kind
	Outcome Outcome

	// Status is the HTTP status code and Body the raw response body.
	Status int
	Body   string

	// Text is the message shown to the caller, including remediation steps
	// for failures.
	Text string
}

// OK reports whether the backend accepted the activity.
func (r *Result) OK() bool { return r.Outcome == OutcomeSuccess }

// TransportError is returned when a submission produced no HTTP response.
type TransportError struct {
	Backend  activity.Backend
	Kind     activity.Kind
	Headline string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("submit: %s %s: %v", e.Backend, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Message is the caller-facing description of the failure.
func (e *TransportError) Message() string {
	where := target(e.Kind)
	if e.Backend == activity.MVP {
		where = "Activity type: " + e.Kind.TypeName()
	}
	return fmt.Sprintf("Failed to submit %s activity:\n\n%v\n\n%s\nTitle: %s",
		e.Backend, e.Err, where, e.Headline)
}

// Client posts activities to the backends described by a capability set.
// It is safe for concurrent use.
type Client struct {
	caps    *capability.Set
	http    *http.Client
	metrics *observe.Metrics
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMetrics records submissions on m instead of [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New returns a Client for caps. The default HTTP client propagates trace
// context and records client spans through otelhttp.
func New(caps *capability.Set, opts ...Option) *Client {
	c := &Client{
		caps: caps,
		http: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, o := range opts {
		o(c)
	}
	if c.metrics == nil {
		c.metrics = observe.DefaultMetrics()
	}
	return c
}

// mvpEnvelope is the request body shape the MVP API expects.
type mvpEnvelope struct {
	Activity activity.Activity `json:"activity"`
}

// Submit sends a to its backend. A non-nil error is returned only when no
// classified response exists: the backend is disabled, the body could not be
// encoded, or the request failed in transit (*TransportError).
func (c *Client) Submit(ctx context.Context, a activity.Activity) (*Result, error) {
	kind := a.Kind()
	backend := kind.Backend()
	capab, ok := c.caps.Get(backend)
	if !ok || !capab.Enabled {
		return nil, fmt.Errorf("%w: %s", ErrBackendDisabled, backend)
	}

	var payload any = a
	if backend == activity.MVP {
		payload = mvpEnvelope{Activity: a}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("submit: encode %s: %w", kind, err)
	}

	url := capab.BaseURL + kind.Endpoint()
	ctx, span := observe.StartSpan(ctx, "submit "+string(kind))
	defer span.End()
	span.SetAttributes(
		attribute.String("backend", string(backend)),
		attribute.String("kind", string(kind)),
		attribute.String("url.full", url),
	)

	log := observe.Logger(ctx).With(
		slog.String("backend", string(backend)),
		slog.String("kind", string(kind)),
	)

	start := time.Now()
	status, respBody, err := c.post(ctx, url, capab.Token, body)
	if err != nil {
		c.metrics.RecordTransportError(ctx, string(backend))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		log.Warn("submission failed in transit", "err", err)
		return nil, &TransportError{Backend: backend, Kind: kind, Headline: a.Headline(), Err: err}
	}
	elapsed := time.Since(start)

	res := classify(a, status, respBody)
	c.metrics.RecordSubmission(ctx, string(backend), string(kind), string(res.Outcome), elapsed)
	span.SetAttributes(
		attribute.Int("http.response.status_code", status),
		attribute.String("outcome", string(res.Outcome)),
	)

	if res.OK() {
		log.Info("activity submitted", "status", status, "duration", elapsed)
	} else {
		span.SetStatus(codes.Error, string(res.Outcome))
		log.Warn("backend rejected activity", "status", status, "outcome", res.Outcome, "duration", elapsed)
	}
	return res, nil
}

func (c *Client) post(ctx context.Context, url, token string, body []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, "", fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, string(data), nil
}
