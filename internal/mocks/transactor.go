package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/subscriptions-api/internal/store"
)

// PassthroughTransactor implements store.Transactor by calling the function
// directly with a nil transaction. Stores handed out by mock WithTx ignore it.
type PassthroughTransactor struct {
	// Calls counts RunInTransaction invocations.
	Calls int
	// BeginErr, when set, is returned without running the function.
	BeginErr error
}

var _ store.Transactor = (*PassthroughTransactor)(nil)

// RunInTransaction implements store.Transactor.
func (p *PassthroughTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	p.Calls++
	if p.BeginErr != nil {
		return p.BeginErr
	}
	return fn(ctx, (*sqlx.Tx)(nil))
}
