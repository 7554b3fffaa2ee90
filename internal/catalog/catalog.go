// Package catalog builds the set of MCP tools the server advertises and
// routes tool calls to their implementation.
//
// The catalog is computed once from the resolved capability set. Submission
// tools exist only for enabled backends; the two documentation tools are
// always present. A [Catalog] is read-only after [New] returns and is safe
// for concurrent use.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MrWong99/activitymcp/internal/activity"
	"github.com/MrWong99/activitymcp/internal/capability"
	"github.com/MrWong99/activitymcp/internal/docs"
	"github.com/MrWong99/activitymcp/internal/observe"
	"github.com/MrWong99/activitymcp/internal/submit"
)

// ErrUnsupportedTool matches every [*UnsupportedToolError].
var ErrUnsupportedTool = errors.New("catalog: unsupported tool")

// UnsupportedToolError is returned by [Catalog.Call] for a name that is not
// advertised. Backend is set when the name belongs to a disabled backend.
type UnsupportedToolError struct {
	Name    string
	Backend activity.Backend
}

func (e *UnsupportedToolError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("%s tools are not enabled. Please configure %s credentials.", e.Backend, e.Backend)
	}
	return "Unknown tool: " + e.Name
}

func (e *UnsupportedToolError) Is(target error) bool { return target == ErrUnsupportedTool }

// ValidationError reports arguments that do not conform to the tool's
// input schema.
type ValidationError struct {
	Tool string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Submitter sends a normalized activity to its backend.
type Submitter interface {
	Submit(ctx context.Context, a activity.Activity) (*submit.Result, error)
}

// Documents is the read side of the documentation store.
type Documents interface {
	List() []docs.Entry
	Names() []string
	Read(ctx context.Context, name string) (docs.Entry, string, error)
}

type handler func(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error)

type entry struct {
	tool     *mcp.Tool
	resolved *jsonschema.Resolved
	call     handler
}

// Catalog is the immutable tool table.
type Catalog struct {
	caps    *capability.Set
	docs    Documents
	sub     Submitter
	norm    activity.Normalizer
	metrics *observe.Metrics

	entries map[string]*entry
	tools   []*mcp.Tool
}

// Option configures a [Catalog].
type Option func(*Catalog)

// WithMetrics records tool calls on m instead of [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(c *Catalog) { c.metrics = m }
}

// New builds the catalog for caps. Every advertised schema is resolved up
// front so that a malformed schema fails startup rather than a call.
func New(caps *capability.Set, d Documents, sub Submitter, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		caps:    caps,
		docs:    d,
		sub:     sub,
		norm:    activity.Normalizer{UserProfileID: caps.MVP.ProfileID},
		entries: make(map[string]*entry),
	}
	for _, o := range opts {
		o(c)
	}
	if c.metrics == nil {
		c.metrics = observe.DefaultMetrics()
	}

	if err := c.add(listDocumentationTool(), c.listDocumentation); err != nil {
		return nil, err
	}
	if err := c.add(getDocumentationTool(d.Names()), c.getDocumentation); err != nil {
		return nil, err
	}
	for _, b := range caps.Backends() {
		for _, k := range activity.Kinds(b) {
			schema, err := activity.Schema(k)
			if err != nil {
				return nil, err
			}
			tool := &mcp.Tool{
				Name:        k.ToolName(),
				Description: k.Description(),
				InputSchema: schema,
			}
			if err := c.add(tool, c.submitter(k)); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Catalog) add(tool *mcp.Tool, h handler) error {
	schema, ok := tool.InputSchema.(*jsonschema.Schema)
	if !ok {
		return fmt.Errorf("catalog: tool %s has no input schema", tool.Name)
	}
	rs, err := schema.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true})
	if err != nil {
		return fmt.Errorf("catalog: resolve schema for %s: %w", tool.Name, err)
	}
	c.entries[tool.Name] = &entry{tool: tool, resolved: rs, call: h}
	c.tools = append(c.tools, tool)
	return nil
}

// Tools returns the advertised tools in a stable order. The returned tools
// are shared and must not be modified.
func (c *Catalog) Tools() []*mcp.Tool {
	out := make([]*mcp.Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// Has reports whether name is an advertised tool.
func (c *Catalog) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Call runs the named tool with raw JSON arguments. Caller-visible outcomes,
// including backend rejections, are returned as a result with IsError set.
// A non-nil error is a protocol-level failure: [ErrUnsupportedTool],
// [*ValidationError] or an internal error; see [ProtocolError].
func (c *Catalog) Call(ctx context.Context, name string, args json.RawMessage) (*mcp.CallToolResult, error) {
	ctx, _ = observe.WithRequestID(ctx)
	ctx, span := observe.StartSpan(ctx, "tool "+name)
	defer span.End()
	start := time.Now()
	log := observe.Logger(ctx).With(slog.String("tool", name))

	res, err := c.call(ctx, name, args)

	status := "ok"
	switch {
	case err != nil:
		status = "error"
		span.RecordError(err)
		log.Warn("tool call failed", "err", err)
	case res.IsError:
		status = "failed"
		log.Info("tool call returned an error result")
	default:
		log.Debug("tool call succeeded")
	}
	c.metrics.RecordToolCall(ctx, name, status, time.Since(start))
	return res, err
}

func (c *Catalog) call(ctx context.Context, name string, args json.RawMessage) (*mcp.CallToolResult, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, c.unsupported(name)
	}

	m, err := decodeArgs(args)
	if err != nil {
		return nil, &ValidationError{Tool: name, Err: err}
	}
	if err := e.resolved.ApplyDefaults(&m); err != nil {
		return nil, &ValidationError{Tool: name, Err: err}
	}
	if err := e.resolved.Validate(m); err != nil {
		return nil, &ValidationError{Tool: name, Err: err}
	}
	normalized, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("catalog: re-encode arguments for %s: %w", name, err)
	}
	return e.call(ctx, normalized)
}

func (c *Catalog) unsupported(name string) error {
	kindName, ok := strings.CutPrefix(name, "submit_")
	if !ok {
		return &UnsupportedToolError{Name: name}
	}
	k, err := activity.ParseKind(kindName)
	if err != nil || c.caps.Enabled(k.Backend()) {
		return &UnsupportedToolError{Name: name}
	}
	return &UnsupportedToolError{Name: name, Backend: k.Backend()}
}

// decodeArgs parses raw tool arguments into a JSON object. Absent or null
// arguments are an empty object.
func decodeArgs(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

func (c *Catalog) submitter(k activity.Kind) handler {
	return func(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
		a, err := c.norm.Normalize(k, args)
		if err != nil {
			if invalidInput(err) {
				return nil, &ValidationError{Tool: k.ToolName(), Err: err}
			}
			return nil, err
		}
		res, err := c.sub.Submit(ctx, a)
		if err != nil {
			return nil, err
		}
		return textResult(res.Text, !res.OK()), nil
	}
}

// invalidInput reports whether a normalization error stems from argument
// values the schema cannot express, such as a non-existent calendar day.
func invalidInput(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.Is(err, activity.ErrInvalidDate) || errors.As(err, &typeErr)
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

// ProtocolError maps an error returned by [Catalog.Call] onto the JSON-RPC
// error sent to the client.
func ProtocolError(err error) error {
	var (
		unsupported *UnsupportedToolError
		invalid     *ValidationError
		transport   *submit.TransportError
	)
	switch {
	case errors.As(err, &unsupported):
		code := int64(jsonrpc.CodeMethodNotFound)
		if unsupported.Backend != "" {
			code = jsonrpc.CodeInvalidRequest
		}
		return &jsonrpc.Error{Code: code, Message: unsupported.Error()}
	case errors.As(err, &invalid):
		return &jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: invalid.Error()}
	case errors.As(err, &transport):
		return &jsonrpc.Error{Code: jsonrpc.CodeInternalError, Message: transport.Message()}
	}
	return &jsonrpc.Error{Code: jsonrpc.CodeInternalError, Message: err.Error()}
}
