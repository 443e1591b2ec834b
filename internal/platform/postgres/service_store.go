package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/subscriptions-api/internal/domain"
	"github.com/phrazzld/subscriptions-api/internal/platform/logger"
	"github.com/phrazzld/subscriptions-api/internal/store"
)

// PostgresServiceStore implements store.ServiceStore on the services table.
type PostgresServiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresServiceStore creates a new PostgreSQL implementation of the ServiceStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresServiceStore(db store.DBTX, logger *slog.Logger) *PostgresServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

var _ store.ServiceStore = (*PostgresServiceStore)(nil)

// WithTx implements store.ServiceStore.WithTx
func (s *PostgresServiceStore) WithTx(tx *sqlx.Tx) store.ServiceStore {
	return &PostgresServiceStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetByName implements store.ServiceStore.GetByName
func (s *PostgresServiceStore) GetByName(ctx context.Context, name string) (*domain.NamedService, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select("id", "service_name").
		From("services").
		Where("service_name = ?", name).
		ToSql()
	if err != nil {
		return nil, store.NewStoreError("service", "get", "failed to build query", err)
	}

	var svc domain.NamedService
	if err := sqlx.GetContext(ctx, s.db, &svc, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrServiceNotFound
		}
		log.Error("failed to get service by name",
			slog.String("error", err.Error()),
			slog.String("service_name", name))
		return nil, store.NewStoreError("service", "get", "failed to query service", MapError(err))
	}

	return &svc, nil
}

// GetOrCreate implements store.ServiceStore.GetOrCreate.
//
// The insert is a no-op when the name already exists. A row inserted by a
// concurrent transaction that has not committed yet blocks the insert until
// that transaction finishes; if it committed, the follow-up select sees it,
// and if it rolled back our insert wins.
func (s *PostgresServiceStore) GetOrCreate(ctx context.Context, name string) (*domain.NamedService, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	svc, err := domain.NewNamedService(name)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Insert("services").
		Columns("service_name").
		Values(svc.Name).
		Suffix("ON CONFLICT (service_name) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return nil, store.NewStoreError("service", "create", "failed to build query", err)
	}

	err = sqlx.GetContext(ctx, s.db, &svc.ID, query, args...)
	switch {
	case err == nil:
		log.Info("service created", slog.Int64("service_id", svc.ID), slog.String("service_name", svc.Name))
		return svc, nil
	case !errors.Is(err, sql.ErrNoRows):
		log.Error("failed to insert service",
			slog.String("error", err.Error()),
			slog.String("service_name", svc.Name))
		return nil, store.NewStoreError("service", "create", "failed to insert service", MapError(err))
	}

	// The name already existed.
	existing, err := s.GetByName(ctx, svc.Name)
	if err != nil {
		if errors.Is(err, store.ErrServiceNotFound) {
			// Only possible when the conflicting row was deleted in between.
			log.Warn("service vanished after insert conflict", slog.String("service_name", svc.Name))
			return nil, fmt.Errorf("%w: service %q changed concurrently", store.ErrConflict, svc.Name)
		}
		return nil, err
	}
	return existing, nil
}
