package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/subscriptions-api/internal/api/shared"
	"github.com/phrazzld/subscriptions-api/internal/platform/logger"
	"github.com/phrazzld/subscriptions-api/internal/service"
)

// SubscriptionHandler handles subscription-related HTTP requests
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
	logger              *slog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService service.SubscriptionService, logger *slog.Logger) *SubscriptionHandler {
	if subscriptionService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("subscriptionService cannot be nil for SubscriptionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SubscriptionHandler")
	}

	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		logger:              logger.With(slog.String("component", "subscription_handler")),
	}
}

// AddSubscription handles POST /subscriptions/users/{userId} requests.
func (h *SubscriptionHandler) AddSubscription(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handlePathID(w, r, "userId", log)
	if !ok {
		return
	}

	var req SubscriptionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sub, err := h.subscriptionService.AddSubscription(r.Context(), userID, req.ServiceName)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add subscription")
		return
	}

	log.Debug("subscription added",
		slog.Int64("user_id", userID),
		slog.Int64("subscription_id", sub.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, subscriptionToResponse(sub))
}

// GetUserSubscriptions handles GET /subscriptions/users/{userId} requests.
func (h *SubscriptionHandler) GetUserSubscriptions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handlePathID(w, r, "userId", log)
	if !ok {
		return
	}

	subs, err := h.subscriptionService.GetUserSubscriptions(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get subscriptions")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, subscriptionsToResponse(subs))
}

// DeleteSubscription handles DELETE /subscriptions/{subscriptionId}/users/{userId} requests.
func (h *SubscriptionHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	subscriptionID, ok := handlePathID(w, r, "subscriptionId", log)
	if !ok {
		return
	}
	userID, ok := handlePathID(w, r, "userId", log)
	if !ok {
		return
	}

	if err := h.subscriptionService.DeleteSubscription(r.Context(), userID, subscriptionID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete subscription")
		return
	}

	log.Debug("subscription deleted",
		slog.Int64("user_id", userID),
		slog.Int64("subscription_id", subscriptionID))
	w.WriteHeader(http.StatusNoContent)
}

// GetTopSubscriptions handles GET /subscriptions/top requests.
// The response is a bare JSON array of service names, most popular first.
func (h *SubscriptionHandler) GetTopSubscriptions(w http.ResponseWriter, r *http.Request) {
	names, err := h.subscriptionService.GetTopSubscriptions(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get top subscriptions")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, names)
}
