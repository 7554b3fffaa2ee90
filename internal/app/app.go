// Package app wires the activity reporting subsystems into an MCP server.
//
// The App struct owns the lifecycle: New resolves the tool catalog and
// registers tools and documentation resources on an [mcp.Server], and Run
// serves a single client session until the transport closes or the context
// is cancelled.
//
// For testing, inject doubles via functional options (WithSubmitter,
// WithTransport, etc.). When an option is not provided, New creates real
// implementations from the config.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MrWong99/activitymcp/internal/capability"
	"github.com/MrWong99/activitymcp/internal/catalog"
	"github.com/MrWong99/activitymcp/internal/config"
	"github.com/MrWong99/activitymcp/internal/docs"
	"github.com/MrWong99/activitymcp/internal/health"
	"github.com/MrWong99/activitymcp/internal/observe"
	"github.com/MrWong99/activitymcp/internal/submit"
)

const (
	// ServerName and ServerVersion identify the server during MCP
	// initialisation.
	ServerName    = "activity-reporting-server"
	ServerVersion = "0.2.0"
)

const instructions = "Submit community activities to the Google Developer Experts (Advocu) " +
	"and Microsoft MVP programs. Only tools for backends with configured credentials are listed. " +
	"Use list_documentation and get_documentation for field references."

// App owns the MCP server and the subsystems behind its tools.
type App struct {
	cfg  *config.Config
	caps *capability.Set

	docs      *docs.Store
	submitter catalog.Submitter
	metrics   *observe.Metrics
	transport mcp.Transport
	logger    *slog.Logger

	catalog *catalog.Catalog
	server  *mcp.Server
}

// Option is a functional option for New.
type Option func(*App)

// WithSubmitter replaces the HTTP submission client.
func WithSubmitter(s catalog.Submitter) Option {
	return func(a *App) { a.submitter = s }
}

// WithMetrics records on m instead of [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithTransport serves over t instead of stdio.
func WithTransport(t mcp.Transport) Option {
	return func(a *App) { a.transport = t }
}

// WithLogger sets the logger handed to the MCP server.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// New builds the server for cfg and the resolved capabilities.
func New(cfg *config.Config, caps *capability.Set, opts ...Option) (*App, error) {
	a := &App{cfg: cfg, caps: caps}
	for _, o := range opts {
		o(a)
	}
	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.transport == nil {
		a.transport = &mcp.StdioTransport{}
	}
	if a.submitter == nil {
		a.submitter = submit.New(caps, submit.WithMetrics(a.metrics))
	}
	a.docs = docs.New(cfg.Docs.Dir, a.metrics)

	cat, err := catalog.New(caps, a.docs, a.submitter, catalog.WithMetrics(a.metrics))
	if err != nil {
		return nil, fmt.Errorf("app: build catalog: %w", err)
	}
	a.catalog = cat

	a.server = mcp.NewServer(
		&mcp.Implementation{Name: ServerName, Version: ServerVersion},
		&mcp.ServerOptions{Instructions: instructions, Logger: a.logger},
	)
	a.server.AddReceivingMiddleware(a.unlistedTools)
	for _, tool := range cat.Tools() {
		a.server.AddTool(tool, a.callTool)
	}
	for _, e := range a.docs.List() {
		a.server.AddResource(&mcp.Resource{
			URI:         e.URI(),
			Name:        e.Name,
			Title:       e.Title,
			Description: e.Description,
			MIMEType:    docs.MIMEType,
		}, a.readResource)
	}
	return a, nil
}

// Server returns the underlying MCP server.
func (a *App) Server() *mcp.Server { return a.server }

// Catalog returns the tool catalog.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// Docs returns the documentation store.
func (a *App) Docs() *docs.Store { return a.docs }

// Checkers returns the readiness checks for the telemetry listener.
func (a *App) Checkers() []health.Checker {
	return []health.Checker{
		{Name: "docs", Check: a.docs.Check},
		health.CapabilityChecker(a.caps),
	}
}

// Run serves one MCP session on the configured transport. It returns when
// the client disconnects or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("mcp server starting",
		"name", ServerName,
		"version", ServerVersion,
		"tools", len(a.catalog.Tools()),
		"capabilities", a.caps,
	)
	if err := a.server.Run(ctx, a.transport); err != nil && ctx.Err() == nil {
		return fmt.Errorf("app: serve: %w", err)
	}
	return nil
}

func (a *App) callTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := a.catalog.Call(ctx, req.Params.Name, req.Params.Arguments)
	if err != nil {
		return nil, catalog.ProtocolError(err)
	}
	return res, nil
}

// unlistedTools answers tools/call for names the server has not registered,
// so that disabled-backend and unknown tools get the catalog's errors.
func (a *App) unlistedTools(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if call, ok := req.(*mcp.CallToolRequest); ok && call.Params != nil && !a.catalog.Has(call.Params.Name) {
			res, err := a.callTool(ctx, call)
			if err != nil {
				return nil, err
			}
			return res, nil
		}
		return next(ctx, method, req)
	}
}

func (a *App) readResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	e, ok := a.docs.LookupURI(uri)
	if !ok {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	_, content, err := a.docs.Read(ctx, e.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", e.Title, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: docs.MIMEType,
			Text:     content,
		}},
	}, nil
}
