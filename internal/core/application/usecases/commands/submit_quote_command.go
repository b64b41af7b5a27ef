package commands

import (
	"errors"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/quote"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrSubmitQuoteCommandIsNotConstructed = errors.New(
	"SubmitQuoteCommand must be created via NewSubmitQuoteCommand constructor",
)

// QuoteLine is one priced line of a supplier submission.
// A zero UnitPrice means the supplier does not quote that line.
type QuoteLine struct {
	LineItemID   order.LineItemID
	UnitPrice    kernel.Money
	OfferedBrand string
	Note         string
}

// SubmitQuoteCommand creates or revises the quote of one supplier for one order.
//
// Example:
//
//	cmd, err := NewSubmitQuoteCommand(orderID, supplierID, "Acme Supplies",
//	    []QuoteLine{
//	        {LineItemID: 1, UnitPrice: kernel.MustMoney("12.50")},
//	        {LineItemID: 2, UnitPrice: kernel.ZeroMoney},
//	    },
//	    "NET30", 5, time.Now().Add(7*24*time.Hour),
//	)
type SubmitQuoteCommand struct {
	orderID      kernel.UUID
	supplierID   kernel.UUID
	supplierName string
	offers       []quote.LineOffer
	terms        quote.Terms

	guard guard.ConstructorGuard
}

// NewSubmitQuoteCommand builds the line offers and terms value objects.
// Coverage of the order's line items is checked later against the stored order.
func NewSubmitQuoteCommand(
	orderID kernel.UUID,
	supplierID kernel.UUID,
	supplierName string,
	lines []QuoteLine,
	paymentTerm string,
	deliveryDays int,
	validUntil time.Time,
) (SubmitQuoteCommand, error) {
	cmd := SubmitQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, supplierID),
		cmd.setSupplierName(supplierName),
		cmd.setOffers(lines),
		cmd.setTerms(paymentTerm, deliveryDays, validUntil),
	); err != nil {
		return SubmitQuoteCommand{}, err
	}

	return cmd, nil
}

func (c SubmitQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSubmitQuoteCommandIsNotConstructed)
}

func (c SubmitQuoteCommand) OrderID() kernel.UUID    { return c.orderID }
func (c SubmitQuoteCommand) SupplierID() kernel.UUID { return c.supplierID }
func (c SubmitQuoteCommand) SupplierName() string    { return c.supplierName }
func (c SubmitQuoteCommand) Terms() quote.Terms      { return c.terms }

func (c SubmitQuoteCommand) Offers() []quote.LineOffer {
	return append([]quote.LineOffer(nil), c.offers...)
}

func (c *SubmitQuoteCommand) setIDs(orderID, supplierID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), supplierID.Validate()); err != nil {
		return err
	}

	c.orderID = orderID
	c.supplierID = supplierID
	return nil
}

func (c *SubmitQuoteCommand) setSupplierName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("supplierName")
	}

	c.supplierName = name
	return nil
}

func (c *SubmitQuoteCommand) setOffers(lines []QuoteLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lineOffers")
	}

	offers := make([]quote.LineOffer, 0, len(lines))
	var err error
	for _, line := range lines {
		offer, offerErr := quote.NewLineOffer(line.LineItemID, line.UnitPrice, line.OfferedBrand, line.Note)
		if offerErr != nil {
			err = errors.Join(err, offerErr)
			continue
		}
		offers = append(offers, offer)
	}
	if err != nil {
		return err
	}

	c.offers = offers
	return nil
}

func (c *SubmitQuoteCommand) setTerms(paymentTerm string, deliveryDays int, validUntil time.Time) error {
	terms, err := quote.NewTerms(paymentTerm, deliveryDays, validUntil)
	if err != nil {
		return err
	}

	c.terms = terms
	return nil
}
