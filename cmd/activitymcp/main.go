// Command activitymcp is an MCP stdio server that submits community
// activities to the Google Developer Experts and Microsoft MVP programs.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrWong99/activitymcp/internal/capability"
	"github.com/MrWong99/activitymcp/internal/config"
)

var configPath string

func main() {
	os.Exit(run())
}

func run() int {
	root := &cobra.Command{
		Use:           "activitymcp",
		Short:         "MCP server for GDE and MVP activity reporting",
		Long:          "activitymcp speaks the Model Context Protocol over stdio and lets an assistant submit\nactivities to the Google Developer Experts (Advocu) and Microsoft MVP programs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to an optional YAML configuration file")
	root.AddCommand(serveCmd(), toolsCmd(), docsCmd())

	if err := root.Execute(); err != nil {
		var cfgErr *capability.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "activitymcp: %v\nset %s, or %s and %s\n", err,
				config.EnvGDEAccessToken, config.EnvMVPAccessToken, config.EnvMVPUserProfileID)
		} else {
			fmt.Fprintf(os.Stderr, "activitymcp: %v\n", err)
		}
		return 1
	}
	return 0
}

// loadConfig reads --config (if set) and the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath, os.LookupEnv)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %q not found", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// ── Logger ─────────────────────────────────────────────────────────────────────

// newLogger writes to stderr; stdout belongs to the MCP stream.
func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
