package commands

import (
	"errors"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand records that the goods left the supplier.
// The tracking number is generated by the handler.
//
// Example:
//
//	supplier := order.MustActor(supplierID, order.RoleSupplier)
//	cmd, err := NewDispatchOrderCommand(orderID, supplier, "Ivan Petrov", "VAN-042")
type DispatchOrderCommand struct {
	orderTarget
	driverName string
	vehicleID  string

	guard guard.ConstructorGuard
}

func NewDispatchOrderCommand(
	orderID kernel.UUID,
	actor order.Actor,
	driverName string,
	vehicleID string,
) (DispatchOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return DispatchOrderCommand{}, err
	}

	cmd := DispatchOrderCommand{
		orderTarget: target,
		driverName:  strings.TrimSpace(driverName),
		vehicleID:   strings.TrimSpace(vehicleID),
		guard:       guard.NewConstructorGuard(),
	}

	var missing error
	if cmd.driverName == "" {
		missing = errors.Join(missing, errs.NewValueIsRequiredError("driverName"))
	}
	if cmd.vehicleID == "" {
		missing = errors.Join(missing, errs.NewValueIsRequiredError("vehicleId"))
	}
	if missing != nil {
		return DispatchOrderCommand{}, missing
	}

	return cmd, nil
}

func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) DriverName() string { return c.driverName }
func (c DispatchOrderCommand) VehicleID() string  { return c.vehicleID }
