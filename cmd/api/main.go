// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

// Command api is the entry point for the Annotate HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Darigraye/MEPHI-practice/internal/api"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/cellimage"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/patient"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/research"
	"github.com/Darigraye/MEPHI-practice/internal/platform/config"
	"github.com/Darigraye/MEPHI-practice/internal/platform/constants"
	"github.com/Darigraye/MEPHI-practice/internal/platform/migration"
	pgstore "github.com/Darigraye/MEPHI-practice/internal/platform/postgres"
	redisstore "github.com/Darigraye/MEPHI-practice/internal/platform/redis"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/reference"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/internal/users/account"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
)

func main() {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// # 2. Configuration
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context; cancelled on shutdown to stop background workers.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.ShutdownTimeout)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// # 4. Redis
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// # 5. Migrations
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// # 6. Token signing
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// # 7. Domain Wiring
	logRepository := system.NewLogRepository(pool)
	journal := system.NewJournal(logRepository)
	systemService := system.NewService(logRepository, system.NewParameterRepository(pool), journal)

	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	generator := login.NewGenerator(userRepository, login.NewRedisLocker(rdb, cfg.LoginLockTTL))
	authService := auth.NewService(userRepository, auth.NewCategoryRepository(pool), sessionRepository, generator, tokens, journal)
	accountService := account.NewService(userRepository, sessionRepository, journal)

	referenceService := reference.NewService(reference.NewPostgresRepository(pool), journal)
	patientService := patient.NewService(patient.NewPostgresRepository(pool), journal)
	researchService := research.NewService(research.NewPostgresRepository(pool), patientService, referenceService, journal)
	cellImageService := cellimage.NewService(cellimage.NewPostgresRepository(pool), researchService, referenceService, journal)

	// # 8. HTTP Server
	server := api.NewServer(rootCtx, cfg, log, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Patient:   patient.NewHandler(patientService),
		Research:  research.NewHandler(researchService),
		CellImage: cellimage.NewHandler(cellImageService),
		Reference: reference.NewHandler(referenceService),
		System:    system.NewHandler(systemService),
	})

	// # 9. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	rootCancel()

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Only for startup wiring. After startup, errors are returned and handled.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
