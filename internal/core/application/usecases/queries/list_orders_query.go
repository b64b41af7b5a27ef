package queries

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery backs the dashboards: the buyer's own orders, the administrator's
// approval queue and the suppliers' list of open requests.
//
// Example:
//
//	// Requests suppliers can still quote on.
//	query, _ := NewListOrdersQuery([]order.Status{order.InReview}, nil)
//	open, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	statuses []order.Status
	buyerID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListOrdersQuery accepts an empty status set, meaning every status, and an optional buyer.
func NewListOrdersQuery(statuses []order.Status, buyerID *kernel.UUID) (ListOrdersQuery, error) {
	var invalid error
	for _, s := range statuses {
		invalid = errors.Join(invalid, s.Validate())
	}
	if buyerID != nil {
		invalid = errors.Join(invalid, buyerID.Validate())
	}
	if invalid != nil {
		return ListOrdersQuery{}, invalid
	}

	q := ListOrdersQuery{
		statuses: append([]order.Status(nil), statuses...),
		guard:    guard.NewConstructorGuard(),
	}
	if buyerID != nil {
		id := *buyerID
		q.buyerID = &id
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) filter() ports.OrderFilter {
	return ports.OrderFilter{Statuses: q.statuses, BuyerID: q.buyerID}
}

type ListOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{uowFactory: uowFactory}
}

// Handle returns matching orders newest first; an empty result is not an error.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().List(ctx, query.filter())
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}
