package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MrWong99/activitymcp/internal/docs"
)

const (
	ListDocumentationTool = "list_documentation"
	GetDocumentationTool  = "get_documentation"
)

func listDocumentationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ListDocumentationTool,
		Description: "List all available documentation resources for the GDE and MVP activity APIs.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}
}

// getDocumentationTool accepts any string so that an unknown name yields a
// "not found" result listing the valid names instead of a protocol error.
func getDocumentationTool(names []string) *mcp.Tool {
	return &mcp.Tool{
		Name:        GetDocumentationTool,
		Description: "Get the content of a documentation resource by name.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"documentName": {
					Type:        "string",
					Description: "Name of the document to retrieve. One of: " + strings.Join(names, ", "),
				},
			},
			Required: []string{"documentName"},
		},
	}
}

func (c *Catalog) listDocumentation(_ context.Context, _ json.RawMessage) (*mcp.CallToolResult, error) {
	entries := c.docs.List()
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%d. **%s** (%s)\n   %s", i+1, e.Title, e.Name, e.Description)
	}
	return textResult("Available Documentation:\n\n"+strings.Join(parts, "\n\n"), false), nil
}

func (c *Catalog) getDocumentation(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in struct {
		DocumentName string `json:"documentName"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, fmt.Errorf("catalog: decode %s arguments: %w", GetDocumentationTool, err)
	}

	e, content, err := c.docs.Read(ctx, in.DocumentName)
	switch {
	case errors.Is(err, docs.ErrNotFound):
		return textResult(fmt.Sprintf("Documentation not found: %s\n\nAvailable docs: %s",
			in.DocumentName, strings.Join(c.docs.Names(), ", ")), true), nil
	case err != nil:
		return textResult(fmt.Sprintf("Failed to read %s: %v", e.Title, err), true), nil
	}
	return textResult("# "+e.Title+"\n\n"+content, false), nil
}
