package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary across the order and quote stores.
// Client code must explicitly manage the transaction lifecycle.
//
// Aggregates written through its repositories are tracked; after a successful Commit their
// pending domain events are handed to the NotificationEmitter and cleared.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit makes all writes visible atomically, then emits tracked domain events.
	// Returns ErrConcurrentModification if a version check fails at commit time.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	// It is a no-op when no transaction is active.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// QuoteRepository returns a QuoteRepository bound to the current transaction.
	QuoteRepository() QuoteRepository
}
