// Package docs serves the bundled Markdown documentation. The set of
// documents is fixed; their contents are read from a directory on every
// request, so edits to the files are visible without a restart.
package docs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrWong99/activitymcp/internal/observe"
)

// MIMEType is the media type of every document.
const MIMEType = "text/markdown"

// URIScheme prefixes the resource URI of every document.
const URIScheme = "docs://"

// ErrNotFound is returned for names outside the registry.
var ErrNotFound = errors.New("docs: document not found")

// Entry describes one document.
type Entry struct {
	Name        string
	Title       string
	Description string

	// File is relative to the store directory.
	File string
}

// URI is the MCP resource URI of e.
func (e Entry) URI() string { return URIScheme + e.Name }

var registry = []Entry{
	{
		Name:        "api-reference",
		Title:       "API Reference",
		Description: "Complete API documentation for both Microsoft MVP and Google GDE (Advocu) APIs",
		File:        "API.md",
	},
	{
		Name:        "mvp-api-reference",
		Title:       "MVP API Reference",
		Description: "Detailed Microsoft MVP API reference with field specifications and examples",
		File:        "MVP_API_REFERENCE.md",
	},
	{
		Name:        "mvp-fixes-changelog",
		Title:       "MVP Integration Fixes Changelog",
		Description: "Complete changelog of fixes applied to MVP integration",
		File:        "CHANGELOG_MVP_FIXES.md",
	},
	{
		Name:        "error-handling",
		Title:       "Error Handling Improvements",
		Description: "Documentation of error handling improvements and best practices",
		File:        "ERROR_HANDLING_IMPROVEMENTS.md",
	},
	{
		Name:        "mcp-resources",
		Title:       "MCP Resources Guide",
		Description: "Guide on how to use MCP resources to access documentation",
		File:        "MCP_RESOURCES.md",
	},
}

// Store reads registered documents from a directory. It is safe for
// concurrent use.
type Store struct {
	dir     string
	metrics *observe.Metrics
}

// New returns a Store reading from dir. A nil m selects
// [observe.DefaultMetrics].
func New(dir string, m *observe.Metrics) *Store {
	if m == nil {
		m = observe.DefaultMetrics()
	}
	return &Store{dir: dir, metrics: m}
}

// Dir is the directory documents are read from.
func (s *Store) Dir() string { return s.dir }

// List returns every registered document in a stable order.
func (s *Store) List() []Entry {
	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// Names returns the registered document names.
func (s *Store) Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the entry registered under name.
func (s *Store) Lookup(name string) (Entry, bool) {
	for _, e := range registry {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// LookupURI returns the entry whose resource URI is uri.
func (s *Store) LookupURI(uri string) (Entry, bool) {
	name, ok := strings.CutPrefix(uri, URIScheme)
	if !ok {
		return Entry{}, false
	}
	return s.Lookup(name)
}

// Read returns the entry and current contents of the named document. An
// unknown name yields an error wrapping [ErrNotFound]; a registered
// document that cannot be read yields the wrapped I/O error.
func (s *Store) Read(ctx context.Context, name string) (Entry, string, error) {
	e, ok := s.Lookup(name)
	if !ok {
		s.metrics.RecordDocumentRead(ctx, name, "not_found")
		return Entry{}, "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err := ctx.Err(); err != nil {
		return e, "", fmt.Errorf("docs: read %s: %w", name, err)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, e.File))
	if err != nil {
		s.metrics.RecordDocumentRead(ctx, name, "error")
		observe.Logger(ctx).Warn("documentation unreadable", "document", name, "err", err)
		return e, "", fmt.Errorf("docs: read %s: %w", name, err)
	}
	s.metrics.RecordDocumentRead(ctx, name, "ok")
	return e, string(data), nil
}

// Check reports whether the documentation directory exists. Individual
// missing files are not an error here; they surface on read.
func (s *Store) Check(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("docs: %s is not a directory", s.dir)
	}
	return nil
}
