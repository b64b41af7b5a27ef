package queries

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrGetBestOfferQueryIsNotConstructed = errors.New(
	"GetBestOfferQuery must be created via NewGetBestOfferQuery constructor",
)

// GetBestOfferQuery asks which supplier currently wins one line item.
type GetBestOfferQuery struct {
	orderID    kernel.UUID
	lineItemID order.LineItemID

	guard guard.ConstructorGuard
}

func NewGetBestOfferQuery(orderID kernel.UUID, lineItemID order.LineItemID) (GetBestOfferQuery, error) {
	if err := errors.Join(orderID.Validate(), lineItemID.Validate()); err != nil {
		return GetBestOfferQuery{}, err
	}
	return GetBestOfferQuery{orderID: orderID, lineItemID: lineItemID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBestOfferQuery) Validate() error {
	return q.guard.Validate(ErrGetBestOfferQueryIsNotConstructed)
}

// BestOfferView is the winner of one line. Found is false, and the supplier fields are
// empty, when no supplier offered a positive price.
type BestOfferView struct {
	LineItemID   order.LineItemID `json:"lineItemId"`
	Found        bool             `json:"found"`
	SupplierID   *kernel.UUID     `json:"supplierId,omitempty"`
	SupplierName string           `json:"supplierName,omitempty"`
	UnitPrice    *kernel.Money    `json:"unitPrice,omitempty"`
}

type GetBestOfferQueryHandler struct {
	uowFactory  ports.UnitOfWorkFactory
	adjudicator services.Adjudicator
}

func NewGetBestOfferQueryHandler(uowFactory ports.UnitOfWorkFactory, adjudicator services.Adjudicator) GetBestOfferQueryHandler {
	return GetBestOfferQueryHandler{uowFactory: uowFactory, adjudicator: adjudicator}
}

// Handle fails with ErrObjectNotFound for an unknown order or line item.
func (h GetBestOfferQueryHandler) Handle(ctx context.Context, query GetBestOfferQuery) (BestOfferView, error) {
	if err := query.Validate(); err != nil {
		return BestOfferView{}, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, query.orderID)
	if err != nil {
		return BestOfferView{}, err
	}
	if _, ok := o.Item(query.lineItemID); !ok {
		return BestOfferView{}, errs.NewObjectNotFoundError("line item", query.lineItemID)
	}
	quotes, err := uow.QuoteRepository().ListByOrder(ctx, query.orderID)
	if err != nil {
		return BestOfferView{}, err
	}

	view := BestOfferView{LineItemID: query.lineItemID}
	supplierID, ok := h.adjudicator.BestPriceFor(o, quotes, query.lineItemID)
	if !ok {
		return view, nil
	}
	for _, q := range quotes {
		if !q.SupplierID().IsEqual(supplierID) {
			continue
		}
		price, _ := q.PriceFor(query.lineItemID)
		view.Found = true
		view.SupplierID = &supplierID
		view.SupplierName = q.SupplierName()
		view.UnitPrice = &price
	}
	return view, nil
}
