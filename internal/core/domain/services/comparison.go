package services

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/quote"
)

// Comparison is the side by side view of all current quotes of an order:
// one column per supplier, one row per line item.
type Comparison struct {
	OrderID        kernel.UUID        `json:"orderId"`
	Suppliers      []SupplierColumn   `json:"suppliers"`
	Lines          []LineComparison   `json:"lines"`
	BestAllocation order.Allocation   `json:"bestAllocation"`
	BestTotals     Totals             `json:"bestTotals"`
	Unassigned     []order.LineItemID `json:"unassigned"`
}

// SupplierColumn summarizes one quote.
type SupplierColumn struct {
	SupplierID   kernel.UUID  `json:"supplierId"`
	SupplierName string       `json:"supplierName"`
	PaymentTerm  string       `json:"paymentTerm"`
	DeliveryDays int          `json:"deliveryDays"`
	ValidUntil   time.Time    `json:"validUntil"`
	SubmittedAt  time.Time    `json:"submittedAt"`
	Revision     int          `json:"revision"`
	QuotedLines  int          `json:"quotedLines"`
	QuotedTotal  kernel.Money `json:"quotedTotal"`
}

// LineComparison holds the prices of every supplier for one line item. Prices is aligned
// with Comparison.Suppliers; a nil entry means the supplier did not quote the line.
type LineComparison struct {
	LineItemID     order.LineItemID `json:"lineItemId"`
	Description    string           `json:"description"`
	Quantity       int              `json:"quantity"`
	Prices         []*kernel.Money  `json:"prices"`
	BestSupplierID *kernel.UUID     `json:"bestSupplierId"`
}

// Compare builds the comparison matrix together with the best allocation and its totals.
// Columns follow SortQuotes order so the result does not depend on the input order.
func (a Adjudicator) Compare(o *order.Order, quotes []*quote.Quote) (Comparison, error) {
	relevant := make([]*quote.Quote, 0, len(quotes))
	for _, q := range quotes {
		if belongsTo(o, q) {
			relevant = append(relevant, q)
		}
	}
	relevant = SortQuotes(relevant)

	cmp := Comparison{
		OrderID:    o.ID(),
		Suppliers:  make([]SupplierColumn, 0, len(relevant)),
		Unassigned: []order.LineItemID{},
	}

	for _, q := range relevant {
		col := SupplierColumn{
			SupplierID:   q.SupplierID(),
			SupplierName: q.SupplierName(),
			PaymentTerm:  q.Terms().PaymentTerm(),
			DeliveryDays: q.Terms().DeliveryDays(),
			ValidUntil:   q.Terms().ValidUntil(),
			SubmittedAt:  q.SubmittedAt(),
			Revision:     q.Revision(),
			QuotedTotal:  kernel.ZeroMoney,
		}
		for _, item := range o.Items() {
			price, ok := q.PriceFor(item.ID())
			if !ok {
				continue
			}
			line, err := price.MulQuantity(item.Quantity())
			if err != nil {
				return Comparison{}, err
			}
			col.QuotedLines++
			col.QuotedTotal = col.QuotedTotal.Add(line)
		}
		cmp.Suppliers = append(cmp.Suppliers, col)
	}

	for _, item := range o.Items() {
		row := LineComparison{
			LineItemID:  item.ID(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			Prices:      make([]*kernel.Money, len(relevant)),
		}
		for i, q := range relevant {
			if price, ok := q.PriceFor(item.ID()); ok {
				row.Prices[i] = &price
			}
		}
		if best, ok := a.BestPriceFor(o, relevant, item.ID()); ok {
			row.BestSupplierID = &best
		} else {
			cmp.Unassigned = append(cmp.Unassigned, item.ID())
		}
		cmp.Lines = append(cmp.Lines, row)
	}

	cmp.BestAllocation = a.ComputeBestAllocation(o, relevant)
	totals, err := a.ComputeTotals(o, relevant, cmp.BestAllocation)
	if err != nil {
		return Comparison{}, err
	}
	cmp.BestTotals = totals
	return cmp, nil
}
