package quote

import (
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// LineOffer is a supplier's price for one order line item.
type LineOffer struct {
	lineItemID   order.LineItemID
	unitPrice    kernel.Money
	offeredBrand string
	note         string
}

// NewLineOffer builds an offer. Money is never negative, so the only check left is the line id.
// A zero unitPrice records that the supplier does not quote this line.
func NewLineOffer(lineItemID order.LineItemID, unitPrice kernel.Money, offeredBrand, note string) (LineOffer, error) {
	if err := lineItemID.Validate(); err != nil {
		return LineOffer{}, err
	}
	return LineOffer{
		lineItemID:   lineItemID,
		unitPrice:    unitPrice,
		offeredBrand: strings.TrimSpace(offeredBrand),
		note:         strings.TrimSpace(note),
	}, nil
}

func (o LineOffer) LineItemID() order.LineItemID { return o.lineItemID }
func (o LineOffer) UnitPrice() kernel.Money      { return o.unitPrice }
func (o LineOffer) OfferedBrand() string         { return o.offeredBrand }
func (o LineOffer) Note() string                 { return o.note }

// IsQuoted reports whether the offer carries a usable, strictly positive price.
func (o LineOffer) IsQuoted() bool {
	return o.unitPrice.IsPositive()
}
