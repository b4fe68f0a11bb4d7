// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Command annotatectl is the operator CLI for the Annotate database.

	annotatectl migrate up|down|version
	annotatectl derive-login --first Иван --last Иванов --patronymic Иванович
	annotatectl stamp 42 Anna Smirnova Ivanovna 1990-01-01 0
	annotatectl sessions purge

Connection settings come from the same environment variables as the API
server; only DATABASE_URL and MIGRATION_PATH are read.
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Darigraye/MEPHI-practice/internal/platform/constants"
	pgstore "github.com/Darigraye/MEPHI-practice/internal/platform/postgres"
)

// cliConfig is the subset of the server configuration the CLI needs.
type cliConfig struct {
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`
}

var (
	databaseURLFlag   string
	migrationPathFlag string
	verboseFlag       bool
)

var rootCmd = &cobra.Command{
	Use:           "annotatectl",
	Short:         "Operate the Annotate database",
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURLFlag, "database-url", "", "PostgreSQL DSN (default $DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&migrationPathFlag, "migrations", "", "Migrations directory (default $MIGRATION_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log at debug level")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "annotatectl:", err)
		os.Exit(1)
	}
}

// loadConfig merges flags over the environment.
func loadConfig() (*cliConfig, error) {
	cfg := &cliConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if databaseURLFlag != "" {
		cfg.DatabaseURL = databaseURLFlag
	}
	if migrationPathFlag != "" {
		cfg.MigrationPath = migrationPathFlag
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL or --database-url is required")
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verboseFlag {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "annotatectl"))
}

// openPool connects using the resolved configuration. The caller closes the pool.
func openPool(ctx context.Context, cmd *cobra.Command) (*pgxpool.Pool, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return pgstore.NewPool(ctx, cfg.DatabaseURL, newLogger(cmd))
}
