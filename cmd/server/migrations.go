package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/phrazzld/subscriptions-api/internal/config"
	"github.com/phrazzld/subscriptions-api/internal/platform/postgres"
)

// migrationCommands lists the goose commands exposed through -migrate.
var migrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
	"reset":   true,
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	log *slog.Logger
}

func newSlogGooseLogger(l *slog.Logger) *slogGooseLogger {
	return &slogGooseLogger{log: l}
}

// Printf forwards goose progress messages at INFO.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at ERROR. It does not exit; goose also returns the error.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// runMigrationCommand connects to the database, runs a single goose command
// and closes the connection again.
func runMigrationCommand(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	command string,
	verbose bool,
) error {
	if !migrationCommands[command] {
		return fmt.Errorf("unknown migration command %q", command)
	}

	conn, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer conn.Close(logger)

	return applyMigrations(ctx, conn.DB.DB, cfg, logger, command, verbose)
}

// applyMigrations runs command against db using the migrations embedded in
// the postgres package.
func applyMigrations(
	ctx context.Context,
	db *sql.DB,
	cfg *config.Config,
	logger *slog.Logger,
	command string,
	verbose bool,
) error {
	if !migrationCommands[command] {
		return fmt.Errorf("unknown migration command %q", command)
	}

	log := logger.With("component", "migrations", "command", command)
	start := time.Now()

	goose.SetLogger(newSlogGooseLogger(log))
	goose.SetVerbose(verbose)
	goose.SetTableName(cfg.Database.MigrationsTable)
	goose.SetBaseFS(postgres.Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	log.Info("Running migrations", "table", cfg.Database.MigrationsTable)
	if err := goose.RunContext(ctx, command, db, postgres.MigrationsDir); err != nil {
		log.Error("Migration failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("Migrations completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
