// Package tx defines the transaction contract domain services depend on.
// The implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs work inside a database transaction.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// A returned error rolls the transaction back.
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// RunInSnapshot executes fn in a transaction whose statements all read
	// the same snapshot. Concurrent writes to rows fn updates make it fail
	// with a serialization error instead of overwriting them.
	RunInSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}

// Nop runs fn directly without a transaction. Used by tests and tools.
type Nop struct{}

func (Nop) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (Nop) RunInSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
