// Package main starts the HTTP server that serves the character co-appearance
// network. It loads the tables once at startup, optionally reloads them when
// the data directory changes, and exposes the graph, costar and link queries
// as JSON endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/costarnet/core/cmd/api/middleware"
	"github.com/costarnet/core/internal/catalog"
	"github.com/costarnet/core/internal/config"
	"github.com/costarnet/core/internal/handlers"
	"github.com/costarnet/core/internal/loader"
	"github.com/costarnet/core/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newRouter(api *handlers.API, corsOrigin string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestLog(logger)(middleware.Cors(corsOrigin)(mux))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	l, closer, err := loader.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init loader: %w", err)
	}
	defer closer.Close()

	cat := catalog.New(l, cfg.CostarCache, logger)
	if _, err := cat.Reload(ctx); err != nil {
		return err
	}

	if cfg.Watch {
		w, err := loader.NewWatcher(cfg.DataDir, loader.FilesFrom(cfg.Files), cfg.WatchDebounce, func() {
			// Failures are logged by the catalog and the previous network stays up.
			_, _ = cat.Reload(ctx)
		}, logger)
		if err != nil {
			return fmt.Errorf("init watcher: %w", err)
		}
		go w.Run(ctx)
		logger.Info("Watching data directory", "dir", cfg.DataDir)
	}

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           newRouter(handlers.New(cat, logger), cfg.CORSOrigin, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", "addr", cfg.Port, "env", cfg.Env, "source", cfg.Source)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
