package order

import (
	"errors"
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
)

// LineItemID is the 1-based position of a line item within its order.
// Items never change after creation, so the position is a stable identifier.
type LineItemID int

// Validate rejects non-positive identifiers.
func (id LineItemID) Validate() error {
	if id < 1 {
		return errs.NewValueIsInvalidErrorWithCause("line item id", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

// LineItemDraft is the buyer's input for one requested product.
type LineItemDraft struct {
	Quantity       int
	Description    string
	PreferredBrand string
}

// LineItem is one requested product of an order.
type LineItem struct {
	id             LineItemID
	quantity       int
	description    string
	preferredBrand string
}

// NewLineItem validates and builds a line item.
//
// Parameters:
//   - id: position of the item in the order, starting at 1
//   - quantity: requested units, at least 1
//   - description: non-empty product description
//   - preferredBrand: optional brand hint for suppliers
//
// Returns:
//   - LineItem: the validated item
//   - error: joined validation errors for every invalid field
func NewLineItem(id LineItemID, quantity int, description, preferredBrand string) (LineItem, error) {
	description = strings.TrimSpace(description)

	var qtyErr, descErr error
	if quantity < 1 {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if description == "" {
		descErr = errs.NewValueIsRequiredError(fmt.Sprintf("description of line item %d", id))
	}
	if err := errors.Join(id.Validate(), qtyErr, descErr); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		id:             id,
		quantity:       quantity,
		description:    description,
		preferredBrand: strings.TrimSpace(preferredBrand),
	}, nil
}

func (li LineItem) ID() LineItemID         { return li.id }
func (li LineItem) Quantity() int          { return li.quantity }
func (li LineItem) Description() string    { return li.description }
func (li LineItem) PreferredBrand() string { return li.preferredBrand }
