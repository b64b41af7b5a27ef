package commands

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// RejectOrderCommandHandler moves an order to REJECTED.
type RejectOrderCommandHandler struct {
	runner txRunner
	clock  kernel.Clock
}

func NewRejectOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
	opts ...HandlerOption,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		runner: newTxRunner(uowFactory, opts...),
		clock:  clock,
	}
}

// Handle rejects the order.
//
// Returns:
//   - ErrAlreadyTerminal if the order is DELIVERED or REJECTED
//   - ErrInvalidTransition if the order is ON_ITS_WAY
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, "RejectOrder", func(ctx context.Context, uow ports.UnitOfWork) error {
		return mutateOrder(ctx, uow, cmd.OrderID(), func(o *order.Order) error {
			return o.Reject(cmd.Reason(), cmd.Actor(), h.clock.Now())
		})
	})
}
