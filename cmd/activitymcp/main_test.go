package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/MrWong99/activitymcp/internal/activity"
	"github.com/MrWong99/activitymcp/internal/capability"
	"github.com/MrWong99/activitymcp/internal/config"
)

func execTools(t *testing.T, args ...string) string {
	t.Helper()
	configPath = ""
	cmd := toolsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("tools %v: %v", args, err)
	}
	return out.String()
}

func TestToolsCmd_JSON(t *testing.T) {
	out := execTools(t, "--all")

	var tools []struct {
		Name        string         `json:"name"`
		InputSchema map[string]any `json:"inputSchema"`
	}
	if err := json.Unmarshal([]byte(out), &tools); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(tools) != 13 {
		t.Fatalf("got %d tools, want 13 (2 documentation + 7 GDE + 4 MVP)", len(tools))
	}
	for _, tool := range tools {
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type = %v", tool.Name, tool.InputSchema["type"])
		}
	}
}

func TestToolsCmd_Markdown(t *testing.T) {
	out := execTools(t, "--all", "--format", "markdown")

	for _, want := range []string{
		"# MCP Tools (Generated)",
		"- `submit_gde_story`",
		"    - `title` (required)",
		"- `get_documentation`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestToolsCmd_UnknownFormat(t *testing.T) {
	configPath = ""
	cmd := toolsCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--all", "--format", "yaml"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestPrintStartupSummary(t *testing.T) {
	cfg := config.Default()
	caps := &capability.Set{
		GDE: capability.Capability{Backend: activity.GDE, Enabled: true},
		MVP: capability.Capability{Backend: activity.MVP},
	}

	var buf bytes.Buffer
	printStartupSummary(&buf, cfg, caps, 9)
	out := buf.String()

	for _, want := range []string{"GDE (Advocu)    : enabled", "MVP             : (disabled)", "Tools           : 9"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Telemetry") {
		t.Error("telemetry line printed without a listen address")
	}
}

func TestClip(t *testing.T) {
	if got := clip("short"); got != "short" {
		t.Errorf("clip(short) = %q", got)
	}
	if got := clip("/a/very/long/documentation/path"); got != "/a/very/long/doc…" {
		t.Errorf("clip(long) = %q", got)
	}
}
