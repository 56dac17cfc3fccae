// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

// Package main is the entry point for the Hitparade server.
//
// Hitparade is a REST API for cataloguing artists and their hit songs.
// Reads are public; creating, updating, and deleting records requires an
// admin JWT. Successful list responses are cached with a TTL and purged
// synchronously when a write lands on the affected entity.
//
// # Startup Order
//
//  1. Configuration: Koanf v2 with layered sources (env > config.yaml > defaults)
//  2. Logging: zerolog, JSON or console format
//  3. Database: DuckDB, file-backed or in-memory
//  4. Cache: TTL list-response cache plus its invalidator
//  5. Authentication: JWT manager and credential store (AUTH_MODE=jwt)
//  6. HTTP server and janitors under a suture supervisor tree
//
// # Configuration
//
// Key environment variables:
//   - HTTP_HOST / HTTP_PORT: bind address (default 0.0.0.0:8080)
//   - DUCKDB_PATH: database file path, or :memory: (default /data/hitparade.duckdb)
//   - SEED_DEMO_DATA: load a demo fixture on an empty database
//   - CACHE_TTL / CACHE_CLEANUP_INTERVAL / CACHE_MAX_ENTRIES
//   - AUTH_MODE: jwt or none (default jwt)
//   - JWT_SECRET: 32+ character signing secret, required for jwt mode
//   - ADMIN_USERNAME / ADMIN_PASSWORD: admin credentials for /auth/login
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the server stops
// accepting connections, in-flight requests get 10s to drain, then the
// database is closed.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pmilosz/hitparade/internal/api"
	"github.com/pmilosz/hitparade/internal/auth"
	"github.com/pmilosz/hitparade/internal/cache"
	"github.com/pmilosz/hitparade/internal/config"
	"github.com/pmilosz/hitparade/internal/database"
	"github.com/pmilosz/hitparade/internal/logging"
	"github.com/pmilosz/hitparade/internal/supervisor"
	"github.com/pmilosz/hitparade/internal/supervisor/services"
)

const (
	// Per-IP login attempt budget, enforced before credentials are
	// checked.
	loginAttempts = 5
	loginWindow   = time.Minute

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("addr", cfg.Addr()).
		Msg("Starting Hitparade")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.SeedDemoData {
		if err := db.SeedDemoData(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		logging.Info().Msg("Demo data seeded (SEED_DEMO_DATA=true)")
	}

	listCache := cache.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	invalidator := cache.NewInvalidator(listCache)

	var jwtManager *auth.JWTManager
	var credentials *auth.CredentialStore
	switch cfg.Security.AuthMode {
	case auth.AuthModeJWT:
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
		credentials, err = auth.NewCredentialStore(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize credential store")
		}
		logging.Info().Msg("JWT authentication enabled, writes are admin-only")
	case auth.AuthModeNone:
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none)")
		logging.Warn().Msg("All write endpoints are publicly accessible. Use only for local development.")
	}

	loginLimiter := auth.NewLoginLimiter(loginAttempts, loginWindow)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(db, listCache, invalidator, jwtManager, credentials, loginLimiter, cfg)
	router := api.NewRouter(handler, auth.NewMiddleware(jwtManager, cfg.Security.AuthMode))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	tree.AddMaintenanceService(services.NewJanitorService("cache-janitor", listCache, cfg.Cache.CleanupInterval))
	tree.AddMaintenanceService(services.NewJanitorService("login-limiter-janitor", loginLimiter, time.Hour))
	logging.Info().Str("addr", server.Addr).Msg("Services added to supervisor tree")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutting down, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Stopped gracefully")
}
