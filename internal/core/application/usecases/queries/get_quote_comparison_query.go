package queries

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/guard"
	"procurement/internal/pkg/metrics"
)

var ErrGetQuoteComparisonQueryIsNotConstructed = errors.New(
	"GetQuoteComparisonQuery must be created via NewGetQuoteComparisonQuery constructor",
)

// LineOverride previews a manual winner for one line without committing it.
type LineOverride struct {
	LineItemID order.LineItemID
	SupplierID kernel.UUID
}

// GetQuoteComparisonQuery builds the administrator's review screen: the price matrix, the
// best-price allocation and, when overrides are given, the allocation and totals they lead to.
//
// Example:
//
//	query, _ := NewGetQuoteComparisonQuery(orderID, []LineOverride{{LineItemID: 2, SupplierID: supplierY}})
//	cmp, err := handler.Handle(ctx, query)
//	if err == nil && cmp.Complete {
//	    // cmp.Allocation can be committed as is
//	}
type GetQuoteComparisonQuery struct {
	orderID   kernel.UUID
	overrides []LineOverride

	guard guard.ConstructorGuard
}

func NewGetQuoteComparisonQuery(orderID kernel.UUID, overrides []LineOverride) (GetQuoteComparisonQuery, error) {
	invalid := orderID.Validate()
	for _, o := range overrides {
		invalid = errors.Join(invalid, o.LineItemID.Validate(), o.SupplierID.Validate())
	}
	if invalid != nil {
		return GetQuoteComparisonQuery{}, invalid
	}
	return GetQuoteComparisonQuery{
		orderID:   orderID,
		overrides: append([]LineOverride(nil), overrides...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetQuoteComparisonQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteComparisonQueryIsNotConstructed)
}

// QuoteComparison extends the matrix with the allocation under review.
// Without overrides Allocation equals BestAllocation and Totals equals BestTotals.
type QuoteComparison struct {
	services.Comparison
	Allocation order.Allocation `json:"allocation"`
	Totals     services.Totals  `json:"totals"`
	Complete   bool             `json:"complete"`
}

type GetQuoteComparisonQueryHandler struct {
	uowFactory  ports.UnitOfWorkFactory
	adjudicator services.Adjudicator
	cache       ports.ComparisonCache
}

// NewGetQuoteComparisonQueryHandler wires the handler. The cache holds matrices keyed by
// order version; every quote submission bumps the order version, so stale entries are never read.
func NewGetQuoteComparisonQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	adjudicator services.Adjudicator,
	cache ports.ComparisonCache,
) GetQuoteComparisonQueryHandler {
	return GetQuoteComparisonQueryHandler{
		uowFactory:  uowFactory,
		adjudicator: adjudicator,
		cache:       cache,
	}
}

// Handle returns ErrObjectNotFound for an unknown order and ErrInvalidOverride when an
// override names an unknown line or a supplier without a valid offer for it.
func (h GetQuoteComparisonQueryHandler) Handle(ctx context.Context, query GetQuoteComparisonQuery) (QuoteComparison, error) {
	if err := query.Validate(); err != nil {
		return QuoteComparison{}, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, query.orderID)
	if err != nil {
		return QuoteComparison{}, err
	}

	cmp, hit := h.cache.Get(ctx, o.ID(), o.Version())
	metrics.CacheLookup(hit)

	// Overrides are validated against the quotes, so they always need them loaded.
	if hit && len(query.overrides) == 0 {
		return h.result(cmp, cmp.BestAllocation, cmp.BestTotals), nil
	}

	quotes, err := uow.QuoteRepository().ListByOrder(ctx, query.orderID)
	if err != nil {
		return QuoteComparison{}, err
	}
	if !hit {
		cmp, err = h.adjudicator.Compare(o, quotes)
		if err != nil {
			return QuoteComparison{}, err
		}
		h.cache.Set(ctx, o.ID(), o.Version(), cmp)
	}
	if len(query.overrides) == 0 {
		return h.result(cmp, cmp.BestAllocation, cmp.BestTotals), nil
	}

	allocation := cmp.BestAllocation
	for _, ov := range query.overrides {
		allocation, err = h.adjudicator.ApplyManualOverride(o, quotes, allocation, ov.LineItemID, ov.SupplierID)
		if err != nil {
			return QuoteComparison{}, err
		}
	}
	totals, err := h.adjudicator.ComputeTotals(o, quotes, allocation)
	if err != nil {
		return QuoteComparison{}, err
	}
	return h.result(cmp, allocation, totals), nil
}

func (h GetQuoteComparisonQueryHandler) result(
	cmp services.Comparison,
	allocation order.Allocation,
	totals services.Totals,
) QuoteComparison {
	return QuoteComparison{
		Comparison: cmp,
		Allocation: allocation,
		Totals:     totals,
		Complete:   allocation.Len() == len(cmp.Lines),
	}
}
