package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/activitymcp/internal/app"
	"github.com/MrWong99/activitymcp/internal/capability"
	"github.com/MrWong99/activitymcp/internal/config"
	"github.com/MrWong99/activitymcp/internal/health"
	"github.com/MrWong99/activitymcp/internal/observe"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio (default)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	caps, err := capability.Resolve(cfg)
	if err != nil {
		return err
	}
	for _, w := range caps.Warnings() {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	var prov *observe.Provider
	if cfg.Telemetry.ListenAddr != "" {
		prov, err = observe.InitProvider(ctx, observe.ProviderConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			ServiceVersion: app.ServerVersion,
		})
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := prov.Shutdown(sctx); err != nil {
				logger.Warn("telemetry shutdown", "err", err)
			}
		}()
	}

	a, err := app.New(cfg, caps, app.WithLogger(logger))
	if err != nil {
		return err
	}

	printStartupSummary(os.Stderr, cfg, caps, len(a.Catalog().Tools()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := a.Run(gctx)
		// The session ending (client closed stdin) stops everything else.
		stop()
		return err
	})

	if prov != nil {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", prov.MetricsHandler())
		health.New(a.Checkers()...).Register(mux)

		srv := &http.Server{
			Addr:              cfg.Telemetry.ListenAddr,
			Handler:           observe.Middleware(observe.DefaultMetrics())(mux),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logger.Info("telemetry listener started", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("telemetry listener: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("goodbye")
	return nil
}

// printStartupSummary writes a human-readable box to w. It never goes to
// stdout, which carries the MCP stream.
func printStartupSummary(w io.Writer, cfg *config.Config, caps *capability.Set, tools int) {
	fmt.Fprintln(w, "╔═══════════════════════════════════════╗")
	fmt.Fprintln(w, "║    activitymcp — startup summary      ║")
	fmt.Fprintln(w, "╠═══════════════════════════════════════╣")
	printBackend(w, "GDE (Advocu)", caps.GDE)
	printBackend(w, "MVP", caps.MVP)
	fmt.Fprintf(w, "║  Tools           : %-19d ║\n", tools)
	fmt.Fprintf(w, "║  Docs dir        : %-19s ║\n", clip(cfg.Docs.Dir))
	if cfg.Telemetry.ListenAddr != "" {
		fmt.Fprintf(w, "║  Telemetry addr  : %-19s ║\n", clip(cfg.Telemetry.ListenAddr))
	}
	fmt.Fprintln(w, "╚═══════════════════════════════════════╝")
}

func printBackend(w io.Writer, name string, c capability.Capability) {
	value := "(disabled)"
	if c.Enabled {
		value = "enabled"
	}
	fmt.Fprintf(w, "║  %-12s    : %-19s ║\n", name, value)
}

func clip(s string) string {
	if len(s) > 19 {
		return s[:16] + "…"
	}
	return s
}
