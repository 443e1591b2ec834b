package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/subscriptions-api/internal/domain"
	"github.com/phrazzld/subscriptions-api/internal/platform/postgres"
	"github.com/phrazzld/subscriptions-api/internal/store"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// CreateTestUser builds a valid, unsaved user named name with the email
// name@example.com.
func CreateTestUser(t *testing.T, name string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(name, fmt.Sprintf("%s@example.com", name))
	require.NoError(t, err, "Failed to create test user")
	return user
}

// MustInsertUser saves a test user through the PostgreSQL user store.
func MustInsertUser(ctx context.Context, t *testing.T, db store.DBTX, name string) *domain.User {
	t.Helper()

	user := CreateTestUser(t, name)
	err := postgres.NewPostgresUserStore(db, discardLogger).Create(ctx, user)
	require.NoError(t, err, "Failed to insert test user")
	require.NotZero(t, user.ID, "store must assign an ID")
	return user
}

// MustInsertSubscription subscribes userID to serviceName, creating the
// service row on first use.
func MustInsertSubscription(
	ctx context.Context,
	t *testing.T,
	db store.DBTX,
	userID int64,
	serviceName string,
) *domain.Subscription {
	t.Helper()

	svc, err := postgres.NewPostgresServiceStore(db, discardLogger).GetOrCreate(ctx, serviceName)
	require.NoError(t, err, "Failed to get or create service %q", serviceName)

	sub, err := domain.NewSubscription(userID, svc)
	require.NoError(t, err, "Failed to build test subscription")

	err = postgres.NewPostgresSubscriptionStore(db, discardLogger).Create(ctx, sub)
	require.NoError(t, err, "Failed to insert test subscription")
	return sub
}

// CountRows returns the number of rows in table matching where.
func CountRows(ctx context.Context, t *testing.T, db store.DBTX, table, where string, args ...interface{}) int {
	t.Helper()

	query := fmt.Sprintf("SELECT count(*) FROM %s", table)
	if where != "" {
		query += " WHERE " + where
	}

	var n int
	row := db.QueryRowxContext(ctx, query, args...)
	require.NoError(t, row.Scan(&n), "Failed to count rows in %s", table)
	return n
}
