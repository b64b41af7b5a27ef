package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrAdjudicateOrderCommandIsNotConstructed = errors.New(
	"AdjudicateOrderCommand must be created via NewAdjudicateOrderCommand constructor",
)

// Override replaces the automatic winner of one line item.
type Override struct {
	LineItemID order.LineItemID
	SupplierID kernel.UUID
}

// AdjudicateOrderCommand commits the winning allocation of an IN_REVIEW order.
// Without overrides the best-price allocation is committed as is.
type AdjudicateOrderCommand struct {
	orderTarget
	overrides []Override

	guard guard.ConstructorGuard
}

func NewAdjudicateOrderCommand(
	orderID kernel.UUID,
	actor order.Actor,
	overrides []Override,
) (AdjudicateOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return AdjudicateOrderCommand{}, err
	}

	var invalid error
	for _, o := range overrides {
		invalid = errors.Join(invalid, o.LineItemID.Validate(), o.SupplierID.Validate())
	}
	if invalid != nil {
		return AdjudicateOrderCommand{}, invalid
	}

	return AdjudicateOrderCommand{
		orderTarget: target,
		overrides:   append([]Override(nil), overrides...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AdjudicateOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdjudicateOrderCommandIsNotConstructed)
}

func (c AdjudicateOrderCommand) Overrides() []Override {
	return append([]Override(nil), c.overrides...)
}
