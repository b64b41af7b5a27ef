package commands

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// orderTarget is embedded by commands that act on one existing order on behalf of an actor.
type orderTarget struct {
	orderID kernel.UUID
	actor   order.Actor
}

func newOrderTarget(orderID kernel.UUID, actor order.Actor) (orderTarget, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return orderTarget{}, err
	}
	return orderTarget{orderID: orderID, actor: actor}, nil
}

// OrderID returns the order the command acts on.
func (t orderTarget) OrderID() kernel.UUID { return t.orderID }

// Actor returns who issued the command.
func (t orderTarget) Actor() order.Actor { return t.actor }

// mutateOrder loads an order, applies change and writes it back as a compare-and-swap.
func mutateOrder(
	ctx context.Context,
	uow ports.UnitOfWork,
	orderID kernel.UUID,
	change func(o *order.Order) error,
) error {
	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if err := change(o); err != nil {
		return err
	}
	return repo.Update(ctx, o)
}
