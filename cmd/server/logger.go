package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/subscriptions-api/internal/config"
	"github.com/phrazzld/subscriptions-api/internal/platform/logger"
	"github.com/phrazzld/subscriptions-api/internal/redact"
)

// setupAppLogger installs the process-wide JSON logger writing to w and logs
// the effective configuration with the database password masked.
func setupAppLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	l, err := logger.SetupWithWriter(cfg.Server, w)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("configuration loaded",
		slog.Group("server",
			slog.Int("port", cfg.Server.Port),
			slog.String("log_level", cfg.Server.LogLevel)),
		slog.Group("database",
			slog.String("url", redact.DatabaseURL(cfg.Database.URL)),
			slog.Int("max_conns", int(cfg.Database.MaxConns)),
			slog.Bool("auto_migrate", cfg.Database.AutoMigrate)),
		slog.Group("subscriptions",
			slog.Int("top_limit", cfg.Subscriptions.TopLimit),
			slog.Uint64("add_retries", cfg.Subscriptions.AddRetries)))

	return l, nil
}
