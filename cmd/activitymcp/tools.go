package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/MrWong99/activitymcp/internal/activity"
	"github.com/MrWong99/activitymcp/internal/capability"
	"github.com/MrWong99/activitymcp/internal/catalog"
	"github.com/MrWong99/activitymcp/internal/docs"
	"github.com/MrWong99/activitymcp/internal/submit"
)

func toolsCmd() *cobra.Command {
	var (
		all    bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog that serve would advertise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			var caps *capability.Set
			if all {
				caps = &capability.Set{
					GDE: capability.Capability{Backend: activity.GDE, Enabled: true},
					MVP: capability.Capability{Backend: activity.MVP, Enabled: true, ProfileID: 1},
				}
			} else if caps, err = capability.Resolve(cfg); err != nil {
				return err
			}

			cat, err := catalog.New(caps, docs.New(cfg.Docs.Dir, nil), submit.New(caps))
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return writeToolsJSON(cmd.OutOrStdout(), cat.Tools())
			case "markdown":
				writeToolsMarkdown(cmd.OutOrStdout(), cat.Tools())
				return nil
			default:
				return fmt.Errorf("unknown format %q (want json or markdown)", format)
			}
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include every backend regardless of configured credentials")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or markdown")
	return cmd
}

func docsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "List the documentation resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store := docs.New(cfg.Docs.Dir, nil)
			out := cmd.OutOrStdout()
			for _, e := range store.List() {
				fmt.Fprintf(out, "%-22s %-30s %s\n", e.Name, e.URI(), e.File)
			}
			if err := store.Check(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	}
}

func writeToolsJSON(w io.Writer, tools []*mcp.Tool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tools)
}

func writeToolsMarkdown(w io.Writer, tools []*mcp.Tool) {
	fmt.Fprintln(w, "# MCP Tools (Generated)")
	fmt.Fprintln(w)
	for _, t := range tools {
		fmt.Fprintf(w, "- `%s`\n", t.Name)
		if t.Description != "" {
			fmt.Fprintf(w, "  - Description: %s\n", t.Description)
		}
		schema, ok := t.InputSchema.(*jsonschema.Schema)
		if !ok || len(schema.Properties) == 0 {
			fmt.Fprintln(w)
			continue
		}
		keys := make([]string, 0, len(schema.Properties))
		for k := range schema.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(w, "  - Input:")
		for _, k := range keys {
			req := "optional"
			if slices.Contains(schema.Required, k) {
				req = "required"
			}
			fmt.Fprintf(w, "    - `%s` (%s)\n", k, req)
		}
		fmt.Fprintln(w)
	}
}
