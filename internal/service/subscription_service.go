package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"

	"github.com/phrazzld/subscriptions-api/internal/domain"
	"github.com/phrazzld/subscriptions-api/internal/platform/logger"
	"github.com/phrazzld/subscriptions-api/internal/store"
)

// Defaults used when SubscriptionOptions leaves a field zero.
const (
	DefaultTopLimit     = 3
	DefaultAddRetries   = 3
	DefaultRetryBackoff = 20 * time.Millisecond
)

// SubscriptionService manages users' subscriptions to named services.
type SubscriptionService interface {
	// AddSubscription subscribes the user to the service called serviceName,
	// creating the service on first use.
	AddSubscription(ctx context.Context, userID int64, serviceName string) (*domain.Subscription, error)

	// GetUserSubscriptions lists the user's subscriptions in creation order.
	GetUserSubscriptions(ctx context.Context, userID int64) ([]domain.Subscription, error)

	// DeleteSubscription removes a subscription on behalf of its owner.
	DeleteSubscription(ctx context.Context, userID, subscriptionID int64) error

	// GetTopSubscriptions returns the names of the most subscribed services,
	// most popular first.
	GetTopSubscriptions(ctx context.Context) ([]string, error)
}

// SubscriptionOptions tunes SubscriptionServiceImpl.
type SubscriptionOptions struct {
	// TopLimit is the length of the popularity ranking.
	TopLimit int
	// AddRetries bounds how often AddSubscription reruns after a retryable
	// store error. Zero means DefaultAddRetries; use NoRetries to disable.
	AddRetries uint64
	// RetryBackoff is the base delay of the exponential backoff between attempts.
	RetryBackoff time.Duration
	// NoRetries disables retrying AddSubscription.
	NoRetries bool
}

// SubscriptionServiceImpl implements the SubscriptionService interface
type SubscriptionServiceImpl struct {
	userStore    store.UserStore
	serviceStore store.ServiceStore
	subStore     store.SubscriptionStore
	tx           store.Transactor
	opts         SubscriptionOptions
	logger       *slog.Logger
}

var _ SubscriptionService = (*SubscriptionServiceImpl)(nil)

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	userStore store.UserStore,
	serviceStore store.ServiceStore,
	subStore store.SubscriptionStore,
	tx store.Transactor,
	opts SubscriptionOptions,
	logger *slog.Logger,
) *SubscriptionServiceImpl {
	if opts.TopLimit <= 0 {
		opts.TopLimit = DefaultTopLimit
	}
	if opts.AddRetries == 0 {
		opts.AddRetries = DefaultAddRetries
	}
	if opts.NoRetries {
		opts.AddRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SubscriptionServiceImpl{
		userStore:    userStore,
		serviceStore: serviceStore,
		subStore:     subStore,
		tx:           tx,
		opts:         opts,
		logger:       logger.With(slog.String("component", "subscription_service")),
	}
}

// AddSubscription resolves the user, gets or creates the service and
// inserts the subscription in a single transaction. The whole transaction
// is rerun when it fails with a retryable store error.
func (s *SubscriptionServiceImpl) AddSubscription(
	ctx context.Context,
	userID int64,
	serviceName string,
) (*domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("adding subscription", slog.Int64("user_id", userID))

	named, err := domain.NewNamedService(serviceName)
	if err != nil {
		log.Debug("rejected service name", slog.String("error", err.Error()))
		return nil, err
	}

	backoff := retry.WithMaxRetries(s.opts.AddRetries, retry.NewExponential(s.opts.RetryBackoff))

	var created *domain.Subscription
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := s.userStore.WithTx(tx).GetByID(ctx, userID); err != nil {
				return err
			}

			svc, err := s.serviceStore.WithTx(tx).GetOrCreate(ctx, named.Name)
			if err != nil {
				return err
			}

			sub, err := domain.NewSubscription(userID, svc)
			if err != nil {
				return err
			}
			if err := s.subStore.WithTx(tx).Create(ctx, sub); err != nil {
				return err
			}

			created = sub
			return nil
		})
		if store.IsRetryable(err) {
			log.Warn("add subscription lost a race, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			log.Debug("user not found for subscription", slog.Int64("user_id", userID))
			return nil, userNotFound(err, userID)
		case domain.IsValidationError(err):
			return nil, err
		case store.IsRetryable(err):
			log.Error("add subscription retries exhausted",
				slog.Int("attempts", attempt),
				slog.String("error", err.Error()))
			return nil, NewServiceError("AddSubscription", "retries exhausted", err)
		}
		log.Error("failed to add subscription",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("AddSubscription", "failed to add subscription", err)
	}

	log.Info("subscription added successfully",
		slog.Int64("subscription_id", created.ID),
		slog.Int64("user_id", userID),
		slog.String("service_name", created.ServiceName))
	return created, nil
}

// GetUserSubscriptions returns all subscriptions of an existing user.
func (s *SubscriptionServiceImpl) GetUserSubscriptions(
	ctx context.Context,
	userID int64,
) ([]domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("listing subscriptions", slog.Int64("user_id", userID))

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, userNotFound(err, userID)
		}
		log.Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("GetUserSubscriptions", "failed to retrieve user", err)
	}

	subs, err := s.subStore.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list subscriptions",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("GetUserSubscriptions", "failed to list subscriptions", err)
	}

	return subs, nil
}

// DeleteSubscription deletes the subscription if, and only if, userID owns it.
func (s *SubscriptionServiceImpl) DeleteSubscription(
	ctx context.Context,
	userID, subscriptionID int64,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("user_id", userID),
		slog.Int64("subscription_id", subscriptionID),
	)
	log.Info("deleting subscription")

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		txStore := s.subStore.WithTx(tx)

		sub, err := txStore.GetByID(ctx, subscriptionID)
		if err != nil {
			return err
		}
		if !sub.OwnedBy(userID) {
			return &OwnershipError{SubscriptionID: subscriptionID, UserID: userID}
		}
		return txStore.Delete(ctx, subscriptionID)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSubscriptionNotFound):
			log.Debug("subscription not found")
			return &NotFoundError{Entity: "Subscription", ID: subscriptionID, Err: store.ErrSubscriptionNotFound}
		case errors.Is(err, ErrSubscriptionNotOwned):
			log.Warn("subscription delete rejected, not owned")
			return err
		}
		log.Error("failed to delete subscription", slog.String("error", err.Error()))
		return NewServiceError("DeleteSubscription", "failed to delete subscription", err)
	}

	log.Info("subscription deleted successfully")
	return nil
}

// GetTopSubscriptions ranks services by subscription count. An empty
// ranking is reported as store.ErrSubscriptionNotFound.
func (s *SubscriptionServiceImpl) GetTopSubscriptions(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("ranking services", slog.Int("limit", s.opts.TopLimit))

	top, err := s.subStore.TopServices(ctx, s.opts.TopLimit)
	if err != nil {
		log.Error("failed to rank services", slog.String("error", err.Error()))
		return nil, NewServiceError("GetTopSubscriptions", "failed to rank services", err)
	}

	if len(top) == 0 {
		log.Debug("no subscriptions to rank")
		return nil, store.ErrSubscriptionNotFound
	}

	names := make([]string, 0, len(top))
	for _, p := range top {
		names = append(names, p.ServiceName)
	}
	return names, nil
}
