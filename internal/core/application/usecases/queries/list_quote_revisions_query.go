package queries

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/guard"
)

var ErrListQuoteRevisionsQueryIsNotConstructed = errors.New(
	"ListQuoteRevisionsQuery must be created via NewListQuoteRevisionsQuery constructor",
)

// ListQuoteRevisionsQuery returns the audit trail of one supplier's quote, oldest first.
// Used when a buyer and a supplier dispute what was offered.
type ListQuoteRevisionsQuery struct {
	orderID    kernel.UUID
	supplierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListQuoteRevisionsQuery(orderID, supplierID kernel.UUID) (ListQuoteRevisionsQuery, error) {
	if err := errors.Join(orderID.Validate(), supplierID.Validate()); err != nil {
		return ListQuoteRevisionsQuery{}, err
	}
	return ListQuoteRevisionsQuery{orderID: orderID, supplierID: supplierID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListQuoteRevisionsQuery) Validate() error {
	return q.guard.Validate(ErrListQuoteRevisionsQueryIsNotConstructed)
}

type ListQuoteRevisionsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListQuoteRevisionsQueryHandler(uowFactory ports.UnitOfWorkFactory) ListQuoteRevisionsQueryHandler {
	return ListQuoteRevisionsQueryHandler{uowFactory: uowFactory}
}

func (h ListQuoteRevisionsQueryHandler) Handle(ctx context.Context, query ListQuoteRevisionsQuery) ([]RevisionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	revisions, err := h.uowFactory.Create().QuoteRepository().ListRevisions(ctx, query.orderID, query.supplierID)
	if err != nil {
		return nil, err
	}

	views := make([]RevisionView, 0, len(revisions))
	for _, r := range revisions {
		views = append(views, newRevisionView(r))
	}
	return views, nil
}
