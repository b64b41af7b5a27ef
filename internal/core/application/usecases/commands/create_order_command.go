package commands

import (
	"errors"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a buyer's request for quotes.
// Line items are numbered by the order in the sequence given here.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	buyer := order.MustActor(buyerID, order.RoleBuyer)
//	cmd, err := NewCreateOrderCommand(orderID, buyer, "City Hospital", []order.LineItemDraft{
//	    {Quantity: 10, Description: "A4 paper, 500 sheets"},
//	}, time.Now().Add(72*time.Hour), nil, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.UUID
	buyer                 order.Actor
	buyerName             string
	items                 []order.LineItemDraft
	expirationDate        time.Time
	requestedDeliveryDate *time.Time
	terms                 string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and presence of required fields.
// Deeper rules (positive quantities, expiration in the future) are checked by order.NewOrder.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyer order.Actor,
	buyerName string,
	items []order.LineItemDraft,
	expirationDate time.Time,
	requestedDeliveryDate *time.Time,
	terms string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		requestedDeliveryDate: requestedDeliveryDate,
		terms:                 strings.TrimSpace(terms),
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyer(buyer),
		cmd.setBuyerName(buyerName),
		cmd.setItems(items),
		cmd.setExpirationDate(expirationDate),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID              { return c.orderID }
func (c CreateOrderCommand) Buyer() order.Actor                { return c.buyer }
func (c CreateOrderCommand) BuyerName() string                 { return c.buyerName }
func (c CreateOrderCommand) ExpirationDate() time.Time         { return c.expirationDate }
func (c CreateOrderCommand) RequestedDeliveryDate() *time.Time { return c.requestedDeliveryDate }
func (c CreateOrderCommand) Terms() string                     { return c.terms }

// Items returns a copy of the line item drafts.
func (c CreateOrderCommand) Items() []order.LineItemDraft {
	return append([]order.LineItemDraft(nil), c.items...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyer(buyer order.Actor) error {
	if err := buyer.Validate(); err != nil {
		return err
	}

	c.buyer = buyer
	return nil
}

func (c *CreateOrderCommand) setBuyerName(buyerName string) error {
	buyerName = strings.TrimSpace(buyerName)
	if buyerName == "" {
		return errs.NewValueIsRequiredError("buyerName")
	}

	c.buyerName = buyerName
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItemDraft) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = append([]order.LineItemDraft(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setExpirationDate(expirationDate time.Time) error {
	if expirationDate.IsZero() {
		return errs.NewValueIsRequiredError("expirationDate")
	}

	c.expirationDate = expirationDate
	return nil
}
