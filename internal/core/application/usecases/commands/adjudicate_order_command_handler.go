package commands

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
)

// AdjudicateOrderCommandHandler is the only path by which an allocation becomes durable.
//
// Example:
//
//	handler := NewAdjudicateOrderCommandHandler(uowFactory, services.NewAdjudicator(), kernel.SystemClock{})
//	cmd, _ := NewAdjudicateOrderCommand(orderID, admin, []Override{{LineItemID: 2, SupplierID: supplierY}})
//	awards, err := handler.Handle(ctx, cmd)
type AdjudicateOrderCommandHandler struct {
	runner      txRunner
	adjudicator services.Adjudicator
	clock       kernel.Clock
}

func NewAdjudicateOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	adjudicator services.Adjudicator,
	clock kernel.Clock,
	opts ...HandlerOption,
) AdjudicateOrderCommandHandler {
	return AdjudicateOrderCommandHandler{
		runner:      newTxRunner(uowFactory, opts...),
		adjudicator: adjudicator,
		clock:       clock,
	}
}

// Handle computes the best allocation from the current quotes, applies the overrides in the
// given sequence and commits the result on the order.
//
// Returns:
//   - []order.Award: the committed awards in line order
//   - error: InvalidTransition unless the order is IN_REVIEW, InvalidOverride for an
//     override naming an unknown line or a supplier without a valid offer, and
//     IncompleteAllocation when a line is left without a winner
func (h AdjudicateOrderCommandHandler) Handle(ctx context.Context, cmd AdjudicateOrderCommand) ([]order.Award, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var awards []order.Award
	err := h.runner.run(ctx, "AdjudicateOrder", func(ctx context.Context, uow ports.UnitOfWork) error {
		o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if _, err = o.Status().Adjudicate(); err != nil {
			return err
		}

		quotes, err := uow.QuoteRepository().ListByOrder(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		allocation := h.adjudicator.ComputeBestAllocation(o, quotes)
		for _, ov := range cmd.Overrides() {
			allocation, err = h.adjudicator.ApplyManualOverride(o, quotes, allocation, ov.LineItemID, ov.SupplierID)
			if err != nil {
				return err
			}
		}

		resolved, err := h.adjudicator.ResolveAwards(o, quotes, allocation)
		if err != nil {
			return err
		}
		if err = o.Adjudicate(resolved, cmd.Actor(), h.clock.Now()); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}

		awards = o.Awards()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return awards, nil
}
