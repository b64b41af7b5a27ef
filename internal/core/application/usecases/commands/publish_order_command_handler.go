package commands

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// PublishOrderCommandHandler releases approved requests to suppliers.
type PublishOrderCommandHandler struct {
	runner txRunner
	clock  kernel.Clock
}

func NewPublishOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
	opts ...HandlerOption,
) PublishOrderCommandHandler {
	return PublishOrderCommandHandler{
		runner: newTxRunner(uowFactory, opts...),
		clock:  clock,
	}
}

// Handle publishes the order. Fails with an InvalidTransition error unless the order
// is PENDING_APPROVAL.
func (h PublishOrderCommandHandler) Handle(ctx context.Context, cmd PublishOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, "PublishOrder", func(ctx context.Context, uow ports.UnitOfWork) error {
		return mutateOrder(ctx, uow, cmd.OrderID(), func(o *order.Order) error {
			return o.Publish(cmd.Actor(), h.clock.Now())
		})
	})
}
