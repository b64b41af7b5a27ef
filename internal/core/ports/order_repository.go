package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderFilter narrows List results. Zero fields match everything.
type OrderFilter struct {
	// Statuses keeps orders in any of the given statuses.
	Statuses []order.Status

	// BuyerID keeps orders of a single buyer.
	BuyerID *kernel.UUID
}

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order aggregate with version 1.
	// Adding an id that already exists is a ConcurrentModification error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order as a compare-and-swap on its version.
	// If the stored version differs from aggregate.Version() the write is refused with
	// ErrConcurrentModification. On success the aggregate carries the new version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ErrObjectNotFound if it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns orders matching the filter, newest first.
	//
	// Example:
	//   open, err := repo.List(ctx, ports.OrderFilter{Statuses: []order.Status{order.InReview}})
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
