package memory

import (
	"context"
	"slices"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// OrderRepository reads through the staged writes of its unit of work.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	id := aggregate.ID()
	if _, staged := r.uow.orders[id]; staged {
		return errs.NewConcurrentModificationError("order", id, nil)
	}
	if _, exists := r.uow.store.readOrder(id); exists {
		return errs.NewConcurrentModificationError("order", id, nil)
	}

	aggregate.SetVersion(1)
	r.uow.orders[id] = orderWrite{snapshot: aggregate.Snapshot(), expected: 0}
	r.uow.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	id := aggregate.ID()
	read := aggregate.Version()

	expected := read
	if w, staged := r.uow.orders[id]; staged {
		if w.snapshot.Version != read {
			return errs.NewConcurrentModificationError("order", id, nil)
		}
		expected = w.expected
	} else {
		current, exists := r.uow.store.readOrder(id)
		if !exists {
			return errs.NewObjectNotFoundError("order", id)
		}
		if current.Version != read {
			return errs.NewConcurrentModificationError("order", id, nil)
		}
	}

	aggregate.SetVersion(read + 1)
	r.uow.orders[id] = orderWrite{snapshot: aggregate.Snapshot(), expected: expected}
	r.uow.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if w, staged := r.uow.orders[id]; staged {
		return order.RestoreOrder(w.snapshot)
	}
	snap, ok := r.uow.store.readOrder(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(snap)
}

func (r *OrderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	snaps := r.uow.store.readOrders()
	byID := make(map[kernel.UUID]order.Snapshot, len(snaps)+len(r.uow.orders))
	for _, s := range snaps {
		byID[s.ID] = s
	}
	for id, w := range r.uow.orders {
		byID[id] = w.snapshot
	}

	out := make([]*order.Order, 0, len(byID))
	for _, s := range byID {
		if !matches(s, filter) {
			continue
		}
		o, err := order.RestoreOrder(s)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	slices.SortFunc(out, func(a, b *order.Order) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		if a.ID().Less(b.ID()) {
			return -1
		}
		return 1
	})
	return out, nil
}

func matches(s order.Snapshot, filter ports.OrderFilter) bool {
	if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, s.Status) {
		return false
	}
	if filter.BuyerID != nil && !filter.BuyerID.IsEqual(s.BuyerID) {
		return false
	}
	return true
}
