package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/subscriptions-api/internal/api"
	apiMiddleware "github.com/phrazzld/subscriptions-api/internal/api/middleware"
	"github.com/phrazzld/subscriptions-api/internal/config"
	"github.com/phrazzld/subscriptions-api/internal/platform/postgres"
	"github.com/phrazzld/subscriptions-api/internal/service"
	"github.com/phrazzld/subscriptions-api/internal/store"
)

// application holds the long-lived dependencies of the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	conn   *dbConn

	userHandler         *api.UserHandler
	subscriptionHandler *api.SubscriptionHandler
	metrics             *apiMiddleware.Metrics
}

// newApplication wires stores, services and handlers on top of an open
// database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, conn *dbConn) *application {
	db := conn.DB
	tx := store.NewTransactor(db)

	userStore := postgres.NewPostgresUserStore(db, logger)
	serviceStore := postgres.NewPostgresServiceStore(db, logger)
	subscriptionStore := postgres.NewPostgresSubscriptionStore(db, logger)

	userService := service.NewUserService(userStore, tx, logger)
	subscriptionService := service.NewSubscriptionService(
		userStore,
		serviceStore,
		subscriptionStore,
		tx,
		subscriptionOptions(cfg.Subscriptions),
		logger,
	)

	app := &application{
		config:              cfg,
		logger:              logger,
		conn:                conn,
		userHandler:         api.NewUserHandler(userService, logger),
		subscriptionHandler: api.NewSubscriptionHandler(subscriptionService, logger),
		metrics:             apiMiddleware.NewMetrics(),
	}

	logger.Info("Application initialized successfully",
		"top_limit", cfg.Subscriptions.TopLimit,
		"add_retries", cfg.Subscriptions.AddRetries)
	return app
}

// subscriptionOptions maps configuration onto the service options. A zero
// add_retries means no retries rather than the service default.
func subscriptionOptions(cfg config.SubscriptionsConfig) service.SubscriptionOptions {
	return service.SubscriptionOptions{
		TopLimit:   cfg.TopLimit,
		AddRetries: cfg.AddRetries,
		NoRetries:  cfg.AddRetries == 0,
	}
}

// Run serves HTTP until ctx is cancelled and then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.conn.Close(app.logger)
	app.logger.Info("Application shutdown completed")
}
