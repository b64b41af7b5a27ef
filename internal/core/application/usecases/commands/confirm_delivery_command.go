package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand moves an ON_ITS_WAY order to DELIVERED.
type ConfirmDeliveryCommand struct {
	orderTarget

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(orderID kernel.UUID, actor order.Actor) (ConfirmDeliveryCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		orderTarget: target,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}
