package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/subscriptions-api/internal/domain"
)

// ServiceStore persists the catalogue of named services.
type ServiceStore interface {
	// GetByName looks a service up by its exact name.
	// Returns ErrServiceNotFound if no such service exists.
	GetByName(ctx context.Context, name string) (*domain.NamedService, error)

	// GetOrCreate returns the service called name, inserting it first if it
	// does not exist yet. Returns ErrConflict if a concurrent transaction
	// inserted the same name and the row is not yet visible.
	GetOrCreate(ctx context.Context, name string) (*domain.NamedService, error)

	// WithTx returns a new ServiceStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) ServiceStore
}
