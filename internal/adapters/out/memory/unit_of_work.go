package memory

import (
	"context"
	"errors"

	"procurement/internal/adapters/out/eventtracker"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/quote"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

type orderWrite struct {
	snapshot order.Snapshot
	expected int64
}

type quoteWrite struct {
	snapshot quote.Snapshot
	expected int64
}

// UnitOfWork stages writes until Commit.
type UnitOfWork struct {
	store   *Store
	active  bool
	orders  map[kernel.UUID]orderWrite
	quotes  map[quoteKey]quoteWrite
	tracker eventtracker.Tracker
}

func newUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.active = true
	uow.orders = make(map[kernel.UUID]orderWrite)
	uow.quotes = make(map[quoteKey]quoteWrite)
	uow.tracker.Reset()
	return nil
}

// Commit applies all staged writes atomically, or none of them if any record changed since it
// was read. Domain events are emitted only after the writes became visible.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false

	if err := uow.apply(); err != nil {
		uow.tracker.Reset()
		return err
	}

	uow.tracker.Publish(ctx, uow.store.emitter)
	return nil
}

func (uow *UnitOfWork) apply() error {
	s := uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, w := range uow.orders {
		current, exists := s.orders[id]
		switch {
		case w.expected == 0 && exists:
			return errs.NewConcurrentModificationError("order", id, errors.New("order already exists"))
		case w.expected > 0 && (!exists || current.Version != w.expected):
			return errs.NewConcurrentModificationError("order", id, nil)
		}
	}
	for key, w := range uow.quotes {
		current, exists := s.quotes[key]
		switch {
		case w.expected == 0 && exists:
			return errs.NewConcurrentModificationError("quote", key.supplierID, errors.New("quote already exists"))
		case w.expected > 0 && (!exists || current.Version != w.expected):
			return errs.NewConcurrentModificationError("quote", key.supplierID, nil)
		}
	}

	for id, w := range uow.orders {
		s.orders[id] = w.snapshot
	}
	for key, w := range uow.quotes {
		s.quotes[key] = w.snapshot
		s.revisions[key] = append(s.revisions[key], w.snapshot.Current)
	}
	return nil
}

// Rollback discards staged writes. It is a no-op after Commit.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return nil
	}
	uow.active = false
	uow.orders = nil
	uow.quotes = nil
	uow.tracker.Reset()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) QuoteRepository() ports.QuoteRepository {
	return &QuoteRepository{uow: uow}
}

func (uow *UnitOfWork) checkActive() error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	return nil
}
