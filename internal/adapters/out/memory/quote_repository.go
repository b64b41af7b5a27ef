package memory

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/quote"
	"procurement/internal/pkg/errs"
)

type QuoteRepository struct {
	uow *UnitOfWork
}

func (r *QuoteRepository) Get(_ context.Context, orderID, supplierID kernel.UUID) (*quote.Quote, error) {
	if err := errors.Join(orderID.Validate(), supplierID.Validate()); err != nil {
		return nil, err
	}
	key := quoteKey{orderID: orderID, supplierID: supplierID}
	if w, staged := r.uow.quotes[key]; staged {
		return quote.RestoreQuote(w.snapshot)
	}
	snap, ok := r.uow.store.readQuote(key)
	if !ok {
		return nil, errs.NewObjectNotFoundError("quote", supplierID)
	}
	return quote.RestoreQuote(snap)
}

// Save stages an insert for a quote at version 0 and a compare-and-swap otherwise.
func (r *QuoteRepository) Save(_ context.Context, aggregate *quote.Quote) error {
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	key := quoteKey{orderID: aggregate.OrderID(), supplierID: aggregate.SupplierID()}
	read := aggregate.Version()

	expected := read
	if w, staged := r.uow.quotes[key]; staged {
		if w.snapshot.Version != read {
			return errs.NewConcurrentModificationError("quote", key.supplierID, nil)
		}
		expected = w.expected
	} else {
		current, exists := r.uow.store.readQuote(key)
		switch {
		case read == 0 && exists:
			return errs.NewConcurrentModificationError("quote", key.supplierID, errors.New("quote already exists"))
		case read > 0 && !exists:
			return errs.NewObjectNotFoundError("quote", key.supplierID)
		case read > 0 && current.Version != read:
			return errs.NewConcurrentModificationError("quote", key.supplierID, nil)
		}
	}

	aggregate.SetVersion(read + 1)
	r.uow.quotes[key] = quoteWrite{snapshot: aggregate.Snapshot(), expected: expected}
	r.uow.tracker.TrackAggregate(aggregate.SupplierID(), aggregate)
	return nil
}

func (r *QuoteRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*quote.Quote, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	bySupplier := make(map[kernel.UUID]quote.Snapshot)
	for _, s := range r.uow.store.readQuotes(orderID) {
		bySupplier[s.SupplierID] = s
	}
	for key, w := range r.uow.quotes {
		if key.orderID == orderID {
			bySupplier[key.supplierID] = w.snapshot
		}
	}

	out := make([]*quote.Quote, 0, len(bySupplier))
	for _, s := range bySupplier {
		q, err := quote.RestoreQuote(s)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *QuoteRepository) ListRevisions(_ context.Context, orderID, supplierID kernel.UUID) ([]quote.Revision, error) {
	if err := errors.Join(orderID.Validate(), supplierID.Validate()); err != nil {
		return nil, err
	}
	key := quoteKey{orderID: orderID, supplierID: supplierID}
	revisions := r.uow.store.readRevisions(key)
	if w, staged := r.uow.quotes[key]; staged {
		revisions = append(revisions, w.snapshot.Current)
	}
	if len(revisions) == 0 {
		return nil, errs.NewObjectNotFoundError("quote", supplierID)
	}
	return revisions, nil
}
