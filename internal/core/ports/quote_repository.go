package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/quote"
)

// QuoteRepository stores the current quote of each (order, supplier) pair together with
// the append-only history of its revisions.
type QuoteRepository interface {
	// Get returns the current quote, or ErrObjectNotFound.
	Get(ctx context.Context, orderID, supplierID kernel.UUID) (*quote.Quote, error)

	// Save inserts a quote with version 0 or updates an existing one as a compare-and-swap
	// on its version, and appends the current revision to the history.
	// A lost race is reported as ErrConcurrentModification.
	Save(ctx context.Context, aggregate *quote.Quote) error

	// ListByOrder returns the current quotes of an order in no particular order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*quote.Quote, error)

	// ListRevisions returns every revision of one supplier's quote, oldest first.
	// Returns ErrObjectNotFound if the supplier never quoted the order.
	ListRevisions(ctx context.Context, orderID, supplierID kernel.UUID) ([]quote.Revision, error)
}
