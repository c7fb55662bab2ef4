// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Artistry HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Choose the rate limiter: Redis when REDIS_URL is set, memory otherwise.
//  5. Wire repositories, services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// There is no migration step. Tables and enum types are created by the
// repositories on first write.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/artistry/internal/api"
	"github.com/taibuivan/artistry/internal/core/artist"
	"github.com/taibuivan/artistry/internal/core/song"
	"github.com/taibuivan/artistry/internal/platform/config"
	"github.com/taibuivan/artistry/internal/platform/constants"
	"github.com/taibuivan/artistry/internal/platform/database/schema"
	"github.com/taibuivan/artistry/internal/platform/middleware"
	pgstore "github.com/taibuivan/artistry/internal/platform/postgres"
	redisstore "github.com/taibuivan/artistry/internal/platform/redis"
	"github.com/taibuivan/artistry/internal/platform/sec"
	"github.com/taibuivan/artistry/internal/users/account"
	"github.com/taibuivan/artistry/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("[Artistry] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("redis_rate_limit", cfg.RedisURL != ""),
	)

	// Lives until shutdown; background workers watch it.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}

	// ── 4. Rate Limiter ───────────────────────────────────────────────────
	var limiter middleware.Limiter = middleware.NewMemoryLimiter(rootCtx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		limiter = redisstore.NewRateLimiter(rdb, cfg.RateLimitBurst, constants.RateLimitWindow)
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 5. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SecretKey, constants.AuthIssuer, cfg.TokenTTL)
	must(log, err, "initialize token service")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	adminService := account.NewService(account.NewPostgresRepository(pool, schema.KindAdmin), schema.KindAdmin, log)
	userService := account.NewService(account.NewPostgresRepository(pool, schema.KindUser), schema.KindUser, log)

	artistRepository := artist.NewPostgresRepository(pool)
	songService := song.NewService(song.NewPostgresRepository(pool), artistRepository, log)
	artistService := artist.NewService(artistRepository, songService, log)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, tokens, limiter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Admin:     auth.NewHandler(auth.NewService(adminService, tokens, log)),
		Users:     account.NewHandler(userService, schema.KindUser),
		Artists:   artist.NewHandler(artistService),
		Songs:     song.NewHandler(songService),
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger installs a JSON logger tagged with the application name as the
// process default and returns it.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
