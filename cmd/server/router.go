package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/phrazzld/subscriptions-api/internal/api/middleware"
	"github.com/phrazzld/subscriptions-api/internal/redact"
)

const healthTimeout = 2 * time.Second

// setupRouter creates the chi router with middleware and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(app.metrics.Middleware)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", app.userHandler.CreateUser)
		r.Get("/", app.userHandler.ListUsers)
		r.Get("/{id}", app.userHandler.GetUser)
		r.Put("/{id}", app.userHandler.UpdateUser)
		r.Delete("/{id}", app.userHandler.DeleteUser)
	})

	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/top", app.subscriptionHandler.GetTopSubscriptions)
		r.Post("/users/{userId}", app.subscriptionHandler.AddSubscription)
		r.Get("/users/{userId}", app.subscriptionHandler.GetUserSubscriptions)
		r.Delete("/{subscriptionId}/users/{userId}", app.subscriptionHandler.DeleteSubscription)
	})

	r.Get("/health", app.handleHealth)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}

// handleHealth reports 200 when the database answers a ping, 503 otherwise.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := app.conn.DB.PingContext(ctx); err != nil {
		app.logger.Warn("Health check failed", "error", redact.Error(err))
		http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
