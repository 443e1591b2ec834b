package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/subscriptions-api/internal/domain"
	"github.com/phrazzld/subscriptions-api/internal/platform/logger"
	"github.com/phrazzld/subscriptions-api/internal/store"
)

// PostgresSubscriptionStore implements store.SubscriptionStore.
// Reads join the services table so returned subscriptions carry the service name.
type PostgresSubscriptionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubscriptionStore creates a new PostgreSQL implementation of the SubscriptionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSubscriptionStore(db store.DBTX, logger *slog.Logger) *PostgresSubscriptionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSubscriptionStore{
		db:     db,
		logger: logger.With(slog.String("component", "subscription_store")),
	}
}

var _ store.SubscriptionStore = (*PostgresSubscriptionStore)(nil)

// WithTx implements store.SubscriptionStore.WithTx
func (s *PostgresSubscriptionStore) WithTx(tx *sqlx.Tx) store.SubscriptionStore {
	return &PostgresSubscriptionStore{
		db:     tx,
		logger: s.logger,
	}
}

// selectSubscriptions selects subscription rows joined with their service name.
func selectSubscriptions() sq.SelectBuilder {
	return psql.Select(
		"s.id", "s.user_id", "s.service_id", "sv.service_name", "s.created_at",
	).
		From("subscriptions s").
		Join("services sv ON sv.id = s.service_id")
}

// Create implements store.SubscriptionStore.Create
func (s *PostgresSubscriptionStore) Create(ctx context.Context, sub *domain.Subscription) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sub.Validate(); err != nil {
		log.Warn("subscription validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query, args, err := psql.Insert("subscriptions").
		Columns("user_id", "service_id", "created_at").
		Values(sub.UserID, sub.ServiceID, sub.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return store.NewStoreError("subscription", "create", "failed to build query", err)
	}

	if err := sqlx.GetContext(ctx, s.db, &sub.ID, query, args...); err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during subscription creation",
				slog.String("error", err.Error()),
				slog.Int64("user_id", sub.UserID),
				slog.Int64("service_id", sub.ServiceID))
		} else {
			log.Error("failed to create subscription",
				slog.String("error", err.Error()),
				slog.Int64("user_id", sub.UserID))
		}
		return store.NewStoreError("subscription", "create", "failed to insert subscription", MapError(err))
	}

	log.Info("subscription created successfully",
		slog.Int64("subscription_id", sub.ID),
		slog.Int64("user_id", sub.UserID),
		slog.String("service_name", sub.ServiceName))
	return nil
}

// GetByID implements store.SubscriptionStore.GetByID
func (s *PostgresSubscriptionStore) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := selectSubscriptions().Where("s.id = ?", id).ToSql()
	if err != nil {
		return nil, store.NewStoreError("subscription", "get", "failed to build query", err)
	}

	var sub domain.Subscription
	if err := sqlx.GetContext(ctx, s.db, &sub, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subscription not found", slog.Int64("subscription_id", id))
			return nil, store.ErrSubscriptionNotFound
		}
		log.Error("failed to get subscription by ID",
			slog.String("error", err.Error()),
			slog.Int64("subscription_id", id))
		return nil, store.NewStoreError("subscription", "get", "failed to query subscription", MapError(err))
	}

	return &sub, nil
}

// ListByUser implements store.SubscriptionStore.ListByUser
func (s *PostgresSubscriptionStore) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := selectSubscriptions().
		Where("s.user_id = ?", userID).
		OrderBy("s.id").
		ToSql()
	if err != nil {
		return nil, store.NewStoreError("subscription", "list", "failed to build query", err)
	}

	subs := []domain.Subscription{}
	if err := sqlx.SelectContext(ctx, s.db, &subs, query, args...); err != nil {
		log.Error("failed to list subscriptions",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, store.NewStoreError("subscription", "list", "failed to query subscriptions", MapError(err))
	}

	return subs, nil
}

// Delete implements store.SubscriptionStore.Delete
func (s *PostgresSubscriptionStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Delete("subscriptions").Where("id = ?", id).ToSql()
	if err != nil {
		return store.NewStoreError("subscription", "delete", "failed to build query", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete subscription",
			slog.String("error", err.Error()),
			slog.Int64("subscription_id", id))
		return store.NewStoreError("subscription", "delete", "failed to delete subscription", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrSubscriptionNotFound); err != nil {
		return err
	}

	log.Info("subscription deleted successfully", slog.Int64("subscription_id", id))
	return nil
}

// TopServices implements store.SubscriptionStore.TopServices
func (s *PostgresSubscriptionStore) TopServices(ctx context.Context, limit int) ([]domain.ServicePopularity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []domain.ServicePopularity{}, nil
	}

	query, args, err := psql.Select("sv.service_name", "COUNT(s.id) AS subscriptions").
		From("subscriptions s").
		Join("services sv ON sv.id = s.service_id").
		GroupBy("sv.service_name").
		OrderBy("subscriptions DESC", "sv.service_name ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, store.NewStoreError("subscription", "top", "failed to build query", err)
	}

	top := []domain.ServicePopularity{}
	if err := sqlx.SelectContext(ctx, s.db, &top, query, args...); err != nil {
		log.Error("failed to rank services", slog.String("error", err.Error()))
		return nil, store.NewStoreError("subscription", "top", "failed to query popularity", MapError(err))
	}

	log.Debug("services ranked", slog.Int("count", len(top)), slog.Int("limit", limit))
	return top, nil
}
