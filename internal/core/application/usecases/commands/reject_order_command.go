package commands

import (
	"errors"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand cancels an order that has not been dispatched yet.
// The reason is optional free text kept on the order.
type RejectOrderCommand struct {
	orderTarget
	reason string

	guard guard.ConstructorGuard
}

func NewRejectOrderCommand(orderID kernel.UUID, actor order.Actor, reason string) (RejectOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return RejectOrderCommand{}, err
	}

	return RejectOrderCommand{
		orderTarget: target,
		reason:      strings.TrimSpace(reason),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) Reason() string { return c.reason }
