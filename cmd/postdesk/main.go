// Package main is the entry point for the PostDesk console server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"postdesk/internal/backend"
	"postdesk/internal/cache"
	"postdesk/internal/config"
	"postdesk/internal/database"
	"postdesk/internal/handlers"
	"postdesk/internal/imaging"
	"postdesk/internal/render"
	"postdesk/internal/router"
	"postdesk/internal/session"
	"postdesk/internal/store"
	"postdesk/internal/workspace"
)

func main() {
	// Load a local .env when present; real environments set variables
	// directly.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	// Structured logger.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"backend", cfg.BackendBaseURL,
	)

	// Connect to PostgreSQL for the activity log.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	sessionStore := session.NewStore(valkeyClient)

	// libvips normalizes reference image uploads.
	imaging.Startup(0)
	defer imaging.Shutdown()

	// Initialize the HTML template renderer.
	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Backend client, in-memory workspace, snapshot cache, activity log.
	backendClient := backend.New(cfg.BackendBaseURL, cfg.BackendBypassToken)
	ws := workspace.New()
	snapshots := cache.NewSnapshotCache(valkeyClient, cache.DefaultSnapshotTTL)
	activityStore := store.NewActivityStore(db)

	// Create the handler group with its dependencies.
	adminHandlers := handlers.NewAdmin(renderer, sessionStore, backendClient, ws, snapshots, activityStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate generation requests that wait on the
	// backend's image pipeline.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
