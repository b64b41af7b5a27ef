package commands

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// DispatchOrderCommandHandler moves an IN_PREPARATION order to ON_ITS_WAY and attaches
// dispatch details with a fresh TRK tracking number.
type DispatchOrderCommandHandler struct {
	runner   txRunner
	clock    kernel.Clock
	tracking ports.TrackingNumberGenerator
}

func NewDispatchOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
	tracking ports.TrackingNumberGenerator,
	opts ...HandlerOption,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		runner:   newTxRunner(uowFactory, opts...),
		clock:    clock,
		tracking: tracking,
	}
}

// Handle dispatches the order and returns the tracking number that was assigned.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	var trackingNumber string
	err := h.runner.run(ctx, "DispatchOrder", func(ctx context.Context, uow ports.UnitOfWork) error {
		return mutateOrder(ctx, uow, cmd.OrderID(), func(o *order.Order) error {
			now := h.clock.Now()
			info, err := order.NewDispatchInfo(cmd.DriverName(), cmd.VehicleID(), h.tracking.Next(), now)
			if err != nil {
				return err
			}
			if err := o.Dispatch(info, cmd.Actor(), now); err != nil {
				return err
			}
			trackingNumber = info.TrackingNumber()
			return nil
		})
	})
	if err != nil {
		return "", err
	}

	return trackingNumber, nil
}
