package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
)

// WithTx runs the provided function within a database transaction.
// The transaction is always rolled back after the function completes,
// so tests can write freely without persisting anything.
func WithTx(t *testing.T, db *sqlx.DB, fn func(t *testing.T, tx *sqlx.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*TestTimeout)
	defer cancel()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// ResetTables empties every application table inside tx so assertions
// that aggregate over whole tables see only the test's own rows.
func ResetTables(t *testing.T, tx *sqlx.Tx) {
	t.Helper()
	_, err := tx.Exec("TRUNCATE subscriptions, services, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to reset tables: %v", err)
	}
}
