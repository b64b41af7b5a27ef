package queries

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/guard"
)

var ErrGetQuoteQueryIsNotConstructed = errors.New(
	"GetQuoteQuery must be created via NewGetQuoteQuery constructor",
)

// GetQuoteQuery reads the current revision of one supplier's quote.
type GetQuoteQuery struct {
	orderID    kernel.UUID
	supplierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetQuoteQuery(orderID, supplierID kernel.UUID) (GetQuoteQuery, error) {
	if err := errors.Join(orderID.Validate(), supplierID.Validate()); err != nil {
		return GetQuoteQuery{}, err
	}
	return GetQuoteQuery{orderID: orderID, supplierID: supplierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteQueryIsNotConstructed)
}

type GetQuoteQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetQuoteQueryHandler(uowFactory ports.UnitOfWorkFactory) GetQuoteQueryHandler {
	return GetQuoteQueryHandler{uowFactory: uowFactory}
}

func (h GetQuoteQueryHandler) Handle(ctx context.Context, query GetQuoteQuery) (QuoteView, error) {
	if err := query.Validate(); err != nil {
		return QuoteView{}, err
	}

	q, err := h.uowFactory.Create().QuoteRepository().Get(ctx, query.orderID, query.supplierID)
	if err != nil {
		return QuoteView{}, err
	}
	return NewQuoteView(q), nil
}
