// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/docscaffold/internal/api"
	"github.com/starford/docscaffold/internal/locale"
	"github.com/starford/docscaffold/internal/mcpserver"
	"github.com/starford/docscaffold/internal/scaffold"
	"github.com/starford/docscaffold/internal/scanner"
	"github.com/starford/docscaffold/internal/storage"
	"github.com/starford/docscaffold/internal/watch"
)

// session is everything a command needs, built from the options.
type session struct {
	app     *application
	cfg     *Config
	logger  *slog.Logger
	printer *locale.Printer
	store   *storage.FS
	gen     *scaffold.Generator
}

func setup(opts []Option) (*session, error) {
	app := &application{out: os.Stdout, errOut: os.Stderr}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	// Structured JSON logs go to stderr; stdout carries only the summary.
	logger := slog.New(slog.NewJSONHandler(app.errOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("Configuration loaded",
		slog.String("index_path", cfg.Index.Path),
		slog.String("scaffold_dir", cfg.Scaffold.Dir),
		slog.String("locale", cfg.App.Locale),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.NewFS(cfg.Scaffold.Dir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	printer := locale.New(cfg.App.Locale)
	gen := scaffold.NewGenerator(cfg.Index.Path, scanner.New(cfg.Scaffold.Dir), store, printer.PlaceholderLine(), logger)

	return &session{
		app:     app,
		cfg:     cfg,
		logger:  logger,
		printer: printer,
		store:   store,
		gen:     gen,
	}, nil
}

// pass runs the generator once and prints the summary line.
func (rt *session) pass(ctx context.Context) error {
	report, err := rt.gen.Run(ctx)
	if err != nil {
		return err
	}
	rt.logger.Debug("pass finished",
		slog.Int("processed", report.Processed),
		slog.Int("created", len(report.Created)),
		slog.Int("skipped", len(report.Skipped)))
	_, err = fmt.Fprintln(rt.app.out, rt.printer.Summary(report.Processed))
	return err
}

// Run scans the index document and creates missing scaffold documents. With
// WithWatch it keeps running until interrupted.
func Run(ctx context.Context, opts ...Option) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}

	if !rt.app.watch {
		return rt.pass(ctx)
	}

	g, gCtx := errgroup.WithContext(ctx)
	watchCtx, stop := context.WithCancel(gCtx)
	defer stop()

	g.Go(func() error {
		return watch.Watch(watchCtx, rt.cfg.Index.Path, rt.cfg.Watch.Debounce, rt.logger, rt.pass)
	})

	g.Go(func() error {
		waitForShutdown(watchCtx, rt.logger)
		stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		rt.logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Serve exposes the scaffold operations over HTTP until interrupted.
func Serve(ctx context.Context, opts ...Option) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	cfg := rt.cfg
	logger := rt.logger

	apiRouter := api.NewRouter(api.NewService(rt.gen, rt.store), cfg.Auth.AuthEnabled(), cfg.Auth.Token)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoint (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		waitForShutdown(gCtx, logger)

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// ServeMCP serves the scaffold tools over MCP stdio.
func ServeMCP(_ context.Context, opts ...Option) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	rt.logger.Info("Starting MCP stdio server")
	return mcpserver.New(rt.gen, rt.store, rt.printer).ServeStdio()
}

// waitForShutdown blocks until SIGINT/SIGTERM arrives or ctx is done.
func waitForShutdown(ctx context.Context, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("Context cancelled, initiating shutdown")
	}
}
