package quote

import (
	"procurement/internal/core/domain/model/kernel"
)

const EventKindQuoteSubmitted = "quote.submitted"

// QuoteSubmittedEvent is recorded for every revision, first submission included.
// The aggregate id is the order id so consumers can route it to the buyer.
type QuoteSubmittedEvent struct {
	kernel.BaseEvent
	BuyerID      kernel.UUID `json:"buyerId"`
	SupplierID   kernel.UUID `json:"supplierId"`
	SupplierName string      `json:"supplierName"`
	Revision     int         `json:"revision"`
	QuotedLines  int         `json:"quotedLines"`
}

func (QuoteSubmittedEvent) EventKind() string { return EventKindQuoteSubmitted }
