package commands

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

type ConfirmDeliveryCommandHandler struct {
	runner txRunner
	clock  kernel.Clock
}

func NewConfirmDeliveryCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
	opts ...HandlerOption,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		runner: newTxRunner(uowFactory, opts...),
		clock:  clock,
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, "ConfirmDelivery", func(ctx context.Context, uow ports.UnitOfWork) error {
		return mutateOrder(ctx, uow, cmd.OrderID(), func(o *order.Order) error {
			return o.ConfirmDelivery(cmd.Actor(), h.clock.Now())
		})
	})
}
