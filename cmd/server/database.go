package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"

	"github.com/phrazzld/subscriptions-api/internal/config"
	"github.com/phrazzld/subscriptions-api/internal/redact"
)

const (
	connectBackoff = 500 * time.Millisecond
	pingTimeout    = 5 * time.Second
)

// dbConn pairs the pgx pool with the database/sql view the stores use.
type dbConn struct {
	DB   *sqlx.DB
	pool *pgxpool.Pool
}

// Close releases the sql.DB wrapper and then the pool beneath it.
func (c *dbConn) Close(logger *slog.Logger) {
	if c == nil {
		return
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Error closing database connection", "error", redact.Error(err))
		}
	}
	if c.pool != nil {
		c.pool.Close()
	}
}

// poolConfig translates the database settings into a pgxpool configuration.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %s", redact.String(err.Error()))
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = time.Duration(cfg.MaxConnLifetimeMinutes) * time.Minute
	return pc, nil
}

// setupAppDatabase opens the connection pool, retrying with a Fibonacci
// backoff while the database comes up, and wraps it for sqlx.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dbConn, error) {
	pc, err := poolConfig(cfg.Database)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "database")
	log.Info("Connecting to database",
		"url", redact.DatabaseURL(cfg.Database.URL),
		"max_conns", pc.MaxConns,
		"min_conns", pc.MinConns)

	var pool *pgxpool.Pool
	attempt := 0
	backoff := retry.WithMaxRetries(cfg.Database.ConnectRetries, retry.NewFibonacci(connectBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		p, err := pgxpool.NewWithConfig(ctx, pc)
		if err != nil {
			log.Warn("Database pool creation failed", "attempt", attempt, "error", redact.Error(err))
			return retry.RetryableError(err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := p.Ping(pingCtx); err != nil {
			p.Close()
			log.Warn("Database ping failed", "attempt", attempt, "error", redact.Error(err))
			return retry.RetryableError(err)
		}

		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %s", attempt, redact.Error(err))
	}

	db := sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")
	log.Info("Database connection established", "attempts", attempt)

	return &dbConn{DB: db, pool: pool}, nil
}
