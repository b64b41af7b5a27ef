package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrPublishOrderCommandIsNotConstructed = errors.New(
	"PublishOrderCommand must be created via NewPublishOrderCommand constructor",
)

// PublishOrderCommand moves a PENDING_APPROVAL order to IN_REVIEW, opening it for quotes.
type PublishOrderCommand struct {
	orderTarget

	guard guard.ConstructorGuard
}

func NewPublishOrderCommand(orderID kernel.UUID, actor order.Actor) (PublishOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return PublishOrderCommand{}, err
	}

	return PublishOrderCommand{
		orderTarget: target,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c PublishOrderCommand) Validate() error {
	return c.guard.Validate(ErrPublishOrderCommandIsNotConstructed)
}
