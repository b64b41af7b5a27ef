// Package memory is an in-process implementation of the order and quote stores.
// A unit of work stages its writes and applies them at commit under one lock, after checking
// that every written record still has the version it was read at. Readers always receive
// private copies, so aggregates never alias stored state.
package memory

import (
	"sync"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/quote"
	"procurement/internal/core/ports"
)

type quoteKey struct {
	orderID    kernel.UUID
	supplierID kernel.UUID
}

// Store holds committed state. It is the UnitOfWorkFactory of the in-memory adapter.
type Store struct {
	mu        sync.RWMutex
	orders    map[kernel.UUID]order.Snapshot
	quotes    map[quoteKey]quote.Snapshot
	revisions map[quoteKey][]quote.Revision
	emitter   ports.NotificationEmitter
}

// NewStore creates an empty store. Events of committed units of work go to emitter.
func NewStore(emitter ports.NotificationEmitter) *Store {
	return &Store{
		orders:    make(map[kernel.UUID]order.Snapshot),
		quotes:    make(map[quoteKey]quote.Snapshot),
		revisions: make(map[quoteKey][]quote.Revision),
		emitter:   emitter,
	}
}

// Create starts a fresh unit of work.
func (s *Store) Create() ports.UnitOfWork {
	return newUnitOfWork(s)
}

func (s *Store) readOrder(id kernel.UUID) (order.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.orders[id]
	return snap, ok
}

func (s *Store) readOrders() []order.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]order.Snapshot, 0, len(s.orders))
	for _, snap := range s.orders {
		out = append(out, snap)
	}
	return out
}

func (s *Store) readQuote(key quoteKey) (quote.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.quotes[key]
	return snap, ok
}

func (s *Store) readQuotes(orderID kernel.UUID) []quote.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []quote.Snapshot
	for key, snap := range s.quotes {
		if key.orderID == orderID {
			out = append(out, snap)
		}
	}
	return out
}

func (s *Store) readRevisions(key quoteKey) []quote.Revision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]quote.Revision(nil), s.revisions[key]...)
}
