package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/subscriptions-api/internal/domain"
)

// SubscriptionStore defines the interface for subscription persistence.
type SubscriptionStore interface {
	// Create saves a new subscription and fills in the generated ID.
	// Returns ErrInvalidEntity if the user or service does not exist.
	Create(ctx context.Context, sub *domain.Subscription) error

	// GetByID retrieves a subscription with its service name resolved.
	// Returns ErrSubscriptionNotFound if the subscription does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)

	// ListByUser returns the user's subscriptions ordered by ID.
	// A user without subscriptions yields an empty slice.
	ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error)

	// Delete removes a subscription by ID.
	// Returns ErrSubscriptionNotFound if the subscription does not exist.
	Delete(ctx context.Context, id int64) error

	// TopServices ranks services by subscription count, most popular first,
	// ties broken by service name. At most limit rows are returned.
	TopServices(ctx context.Context, limit int) ([]domain.ServicePopularity, error)

	// WithTx returns a new SubscriptionStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) SubscriptionStore
}
