package commands

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// CreateOrderCommandHandler registers a new order in PENDING_APPROVAL.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, kernel.SystemClock{})
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	runner txRunner
	clock  kernel.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
	opts ...HandlerOption,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		runner: newTxRunner(uowFactory, opts...),
		clock:  clock,
	}
}

// Handle builds the order aggregate and persists it with version 1.
// Fails with a validation error when the order cannot be built, and with
// ErrConcurrentModification when the order id is already taken.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, "CreateOrder", func(ctx context.Context, uow ports.UnitOfWork) error {
		o, err := order.NewOrder(
			cmd.OrderID(),
			cmd.Buyer(),
			cmd.BuyerName(),
			cmd.Items(),
			cmd.ExpirationDate(),
			cmd.RequestedDeliveryDate(),
			cmd.Terms(),
			h.clock.Now(),
		)
		if err != nil {
			return err
		}

		// A taken id stays taken.
		if err := uow.OrderRepository().Add(ctx, o); err != nil {
			return final(err)
		}
		return nil
	})
}
