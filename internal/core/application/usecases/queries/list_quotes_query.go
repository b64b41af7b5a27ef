package queries

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/guard"
)

var ErrListQuotesQueryIsNotConstructed = errors.New(
	"ListQuotesQuery must be created via NewListQuotesQuery constructor",
)

// ListQuotesQuery lists the current quotes of an order in first-submission order.
type ListQuotesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListQuotesQuery(orderID kernel.UUID) (ListQuotesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListQuotesQuery{}, err
	}
	return ListQuotesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListQuotesQuery) Validate() error {
	return q.guard.Validate(ErrListQuotesQueryIsNotConstructed)
}

type ListQuotesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListQuotesQueryHandler(uowFactory ports.UnitOfWorkFactory) ListQuotesQueryHandler {
	return ListQuotesQueryHandler{uowFactory: uowFactory}
}

// Handle fails with ErrObjectNotFound for an unknown order and returns an empty list for an
// order nobody quoted yet.
func (h ListQuotesQueryHandler) Handle(ctx context.Context, query ListQuotesQuery) ([]QuoteView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if _, err := uow.OrderRepository().Get(ctx, query.orderID); err != nil {
		return nil, err
	}
	quotes, err := uow.QuoteRepository().ListByOrder(ctx, query.orderID)
	if err != nil {
		return nil, err
	}

	sorted := services.SortQuotes(quotes)
	views := make([]QuoteView, 0, len(sorted))
	for _, q := range sorted {
		views = append(views, NewQuoteView(q))
	}
	return views, nil
}
