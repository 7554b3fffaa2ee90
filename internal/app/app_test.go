package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/MrWong99/activitymcp/internal/activity"
	"github.com/MrWong99/activitymcp/internal/app"
	"github.com/MrWong99/activitymcp/internal/capability"
	"github.com/MrWong99/activitymcp/internal/config"
	"github.com/MrWong99/activitymcp/internal/observe"
	"github.com/MrWong99/activitymcp/internal/submit"
	submitmock "github.com/MrWong99/activitymcp/internal/submit/mock"
)

// testConfig returns a config whose docs directory holds one document.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "MCP_RESOURCES.md"), []byte("resources guide"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Docs.Dir = dir
	return cfg
}

func gdeOnly() *capability.Set {
	return &capability.Set{
		GDE: capability.Capability{Backend: activity.GDE, Enabled: true, Token: "t", BaseURL: "http://gde.invalid"},
		MVP: capability.Capability{Backend: activity.MVP, Missing: []string{config.EnvMVPAccessToken}},
	}
}

func testMetrics(t *testing.T) *observe.Metrics {
	t.Helper()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m
}

// connect starts the app on an in-memory transport and returns a connected
// client session.
func connect(t *testing.T, sub *submitmock.Submitter) *mcp.ClientSession {
	t.Helper()
	serverT, clientT := mcp.NewInMemoryTransports()

	a, err := app.New(testConfig(t), gdeOnly(),
		app.WithSubmitter(sub),
		app.WithMetrics(testMetrics(t)),
		app.WithTransport(serverT),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestServer_ListTools(t *testing.T) {
	cs := connect(t, &submitmock.Submitter{})

	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		if strings.HasPrefix(tool.Name, "submit_mvp_") {
			t.Errorf("MVP tool %s advertised without MVP credentials", tool.Name)
		}
	}
	if len(names) != 9 {
		t.Errorf("got %d tools %v, want 9 (2 documentation + 7 GDE)", len(names), names)
	}
}

func TestServer_SubmitGDEWorkshop(t *testing.T) {
	sub := &submitmock.Submitter{}
	cs := connect(t, sub)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "submit_gde_workshop",
		Arguments: map[string]any{
			"title":        "Go workshop",
			"description":  "Hands-on concurrency",
			"activityDate": "2025-05-01",
			"metrics":      map[string]any{"attendees": 30},
			"eventFormat":  "Virtual",
			"activityUrl":  "https://example.com/workshop",
		},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}

	got := sub.Activities()
	if len(got) != 1 {
		t.Fatalf("submitted %d activities, want 1", len(got))
	}
	w, ok := got[0].(*activity.Workshop)
	if !ok {
		t.Fatalf("submitted %T, want *activity.Workshop", got[0])
	}
	if w.Title != "Go workshop" || w.Tags == nil || w.Private {
		t.Errorf("normalized workshop = %+v", w)
	}
}

func TestServer_BackendFailureIsErrorContent(t *testing.T) {
	sub := &submitmock.Submitter{Result: &submit.Result{
		Outcome: submit.OutcomeAuthFailed,
		Status:  401,
		Text:    "GDE authentication failed.",
	}}
	cs := connect(t, sub)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "submit_gde_product_feedback",
		Arguments: map[string]any{
			"title":              "Early access feedback",
			"description":        "Gemini API",
			"activityDate":       "2025-05-01",
			"contentType":        "Early access program",
			"productDescription": "Gemini",
			"metrics":            map[string]any{"timeSpent": 60},
		},
	})
	if err != nil {
		t.Fatalf("CallTool returned protocol error: %v", err)
	}
	if !res.IsError || resultText(t, res) != "GDE authentication failed." {
		t.Errorf("result = %+v", res)
	}
}

func TestServer_InvalidArguments(t *testing.T) {
	sub := &submitmock.Submitter{}
	cs := connect(t, sub)

	_, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "submit_gde_story",
		Arguments: map[string]any{"title": "x"},
	})
	var wire *jsonrpc.Error
	if !errors.As(err, &wire) || wire.Code != jsonrpc.CodeInvalidParams {
		t.Fatalf("err = %v, want invalid params", err)
	}
	if len(sub.Activities()) != 0 {
		t.Error("invalid arguments must not be submitted")
	}
}

func TestServer_UnlistedTools(t *testing.T) {
	sub := &submitmock.Submitter{}
	cs := connect(t, sub)

	tests := []struct {
		tool     string
		wantCode int64
		wantMsg  string
	}{
		{"submit_mvp_video", jsonrpc.CodeInvalidRequest, "MVP tools are not enabled. Please configure MVP credentials."},
		{"submit_gde_podcast", jsonrpc.CodeMethodNotFound, "Unknown tool: submit_gde_podcast"},
	}
	for _, tc := range tests {
		t.Run(tc.tool, func(t *testing.T) {
			_, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      tc.tool,
				Arguments: map[string]any{"title": "x"},
			})
			var wire *jsonrpc.Error
			if !errors.As(err, &wire) {
				t.Fatalf("err = %v, want a JSON-RPC error", err)
			}
			if wire.Code != tc.wantCode || wire.Message != tc.wantMsg {
				t.Errorf("got (%d, %q), want (%d, %q)", wire.Code, wire.Message, tc.wantCode, tc.wantMsg)
			}
		})
	}
	if len(sub.Activities()) != 0 {
		t.Error("unlisted tools must not reach the backend")
	}
}

func TestServer_Resources(t *testing.T) {
	cs := connect(t, &submitmock.Submitter{})
	ctx := context.Background()

	list, err := cs.ListResources(ctx, nil)
	if err != nil {
		t.Fatalf("ListResources: %v", err)
	}
	if len(list.Resources) != 5 {
		t.Errorf("got %d resources, want 5", len(list.Resources))
	}
	for _, r := range list.Resources {
		if !strings.HasPrefix(r.URI, "docs://") || r.MIMEType != "text/markdown" {
			t.Errorf("resource %+v", r)
		}
	}

	read, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: "docs://mcp-resources"})
	if err != nil {
		t.Fatalf("ReadResource: %v", err)
	}
	if len(read.Contents) != 1 || read.Contents[0].Text != "resources guide" {
		t.Errorf("contents = %+v", read.Contents)
	}

	if _, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: "docs://missing"}); err == nil {
		t.Error("reading an unknown resource should fail")
	}
}

func TestApp_Checkers(t *testing.T) {
	a, err := app.New(testConfig(t), gdeOnly(), app.WithSubmitter(&submitmock.Submitter{}), app.WithMetrics(testMetrics(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, c := range a.Checkers() {
		if err := c.Check(context.Background()); err != nil {
			t.Errorf("checker %s: %v", c.Name, err)
		}
	}
}

func TestApp_CheckersReportMissingDocs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Docs.Dir = filepath.Join(cfg.Docs.Dir, "absent")
	a, err := app.New(cfg, gdeOnly(), app.WithSubmitter(&submitmock.Submitter{}), app.WithMetrics(testMetrics(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	failed := map[string]bool{}
	for _, c := range a.Checkers() {
		failed[c.Name] = c.Check(context.Background()) != nil
	}
	if !failed["docs"] || failed["backends"] {
		t.Errorf("failed checks = %v, want only docs", failed)
	}
}
