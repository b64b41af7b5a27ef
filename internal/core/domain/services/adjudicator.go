package services

import (
	"slices"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/quote"
	"procurement/internal/pkg/errs"
)

// Adjudicator compares the current quotes of an order and decides which supplier wins
// each line item.
//
// Business rules:
//   - Only strictly positive prices take part; a zero price means "not quoted"
//   - The lowest unit price wins a line
//   - Ties go to the earliest submission of the current revision, then to the lowest
//     supplier id in canonical string form
//   - A line without any valid offer stays unassigned
//   - Every result is deterministic for the same inputs, whatever their order
//
// Quotes that belong to another order are ignored.
//
// Example usage:
//
//	adj := services.NewAdjudicator()
//	allocation := adj.ComputeBestAllocation(o, quotes)
//	allocation, err := adj.ApplyManualOverride(o, quotes, allocation, 2, preferredSupplier)
//	awards, err := adj.ResolveAwards(o, quotes, allocation)
type Adjudicator struct{}

// NewAdjudicator creates a new Adjudicator instance.
func NewAdjudicator() Adjudicator {
	return Adjudicator{}
}

// SupplierTotal is the amount owed to one supplier under an allocation.
type SupplierTotal struct {
	SupplierID   kernel.UUID  `json:"supplierId"`
	SupplierName string       `json:"supplierName"`
	Total        kernel.Money `json:"total"`
}

// Totals is the cost of an allocation. PerSupplier is sorted by supplier id and
// GrandTotal always equals the sum of its entries.
type Totals struct {
	PerSupplier []SupplierTotal `json:"perSupplier"`
	GrandTotal  kernel.Money    `json:"grandTotal"`
}

// For returns the total of one supplier, zero when it wins nothing.
func (t Totals) For(supplierID kernel.UUID) kernel.Money {
	for _, st := range t.PerSupplier {
		if st.SupplierID.IsEqual(supplierID) {
			return st.Total
		}
	}
	return kernel.ZeroMoney
}

// BestPriceFor returns the supplier with the lowest valid price for a line item.
//
// Parameters:
//   - o: the order being adjudicated
//   - quotes: current quotes of the order
//   - lineItemID: the line to evaluate
//
// Returns:
//   - kernel.UUID: the winning supplier id
//   - bool: false when no quote has a strictly positive price for the line
func (a Adjudicator) BestPriceFor(o *order.Order, quotes []*quote.Quote, lineItemID order.LineItemID) (kernel.UUID, bool) {
	best := a.bestQuoteFor(o, quotes, lineItemID)
	if best == nil {
		return kernel.UUID{}, false
	}
	return best.SupplierID(), true
}

// ComputeBestAllocation assigns every line item to its best supplier.
// Lines nobody quoted are left out of the allocation.
func (a Adjudicator) ComputeBestAllocation(o *order.Order, quotes []*quote.Quote) order.Allocation {
	allocation := order.NewAllocation()
	for _, item := range o.Items() {
		if best := a.bestQuoteFor(o, quotes, item.ID()); best != nil {
			allocation = allocation.Assign(item.ID(), best.SupplierID())
		}
	}
	return allocation
}

// ComputeTotals prices an allocation: unit price × quantity per assigned line, summed per
// supplier and overall with exact decimal arithmetic.
//
// Returns:
//   - Totals: per supplier totals and the grand total
//   - error: IncompleteAllocation if an assigned supplier has no valid offer for the line,
//     InvariantViolation if any contribution turns out negative
func (a Adjudicator) ComputeTotals(o *order.Order, quotes []*quote.Quote, allocation order.Allocation) (Totals, error) {
	sums := map[kernel.UUID]kernel.Money{}
	names := map[kernel.UUID]string{}
	grand := kernel.ZeroMoney

	for _, lineID := range allocation.Lines() {
		supplierID, _ := allocation.Winner(lineID)
		item, ok := o.Item(lineID)
		if !ok {
			return Totals{}, errs.NewIncompleteAllocationError("line item %d does not exist", lineID)
		}
		q := findQuote(o, quotes, supplierID)
		if q == nil {
			return Totals{}, errs.NewIncompleteAllocationError("line item %d is assigned to %s without a quote", lineID, supplierID)
		}
		price, ok := q.PriceFor(lineID)
		if !ok {
			return Totals{}, errs.NewIncompleteAllocationError("line item %d is assigned to %s without a valid offer", lineID, supplierID)
		}

		contribution, err := price.MulQuantity(item.Quantity())
		if err != nil {
			return Totals{}, err
		}
		sums[supplierID] = sums[supplierID].Add(contribution)
		names[supplierID] = q.SupplierName()
		grand = grand.Add(contribution)
	}

	perSupplier := make([]SupplierTotal, 0, len(sums))
	for id, total := range sums {
		perSupplier = append(perSupplier, SupplierTotal{SupplierID: id, SupplierName: names[id], Total: total})
	}
	slices.SortFunc(perSupplier, func(x, y SupplierTotal) int {
		return compareIDs(x.SupplierID, y.SupplierID)
	})

	return Totals{PerSupplier: perSupplier, GrandTotal: grand}, nil
}

// ApplyManualOverride returns a copy of the allocation with lineItemID awarded to supplierID.
// The input allocation is not modified.
//
// Returns:
//   - order.Allocation: the updated allocation
//   - error: InvalidOverride if the line is unknown or the supplier has no valid offer for it
func (a Adjudicator) ApplyManualOverride(
	o *order.Order,
	quotes []*quote.Quote,
	allocation order.Allocation,
	lineItemID order.LineItemID,
	supplierID kernel.UUID,
) (order.Allocation, error) {
	if _, ok := o.Item(lineItemID); !ok {
		return allocation, errs.NewInvalidOverrideError("line item %d does not exist in order %s", lineItemID, o.ID())
	}
	q := findQuote(o, quotes, supplierID)
	if q == nil {
		return allocation, errs.NewInvalidOverrideError("supplier %s has not quoted order %s", supplierID, o.ID())
	}
	if _, ok := q.PriceFor(lineItemID); !ok {
		return allocation, errs.NewInvalidOverrideError("supplier %s has no valid offer for line item %d", supplierID, lineItemID)
	}
	return allocation.Assign(lineItemID, supplierID), nil
}

// ResolveAwards turns a complete allocation into awards ready to be committed on the order.
//
// Returns:
//   - []order.Award: one award per line item, in line order, with the winning price snapshot
//   - error: IncompleteAllocation if any line is unassigned or assigned to a supplier
//     without a strictly positive offer
func (a Adjudicator) ResolveAwards(o *order.Order, quotes []*quote.Quote, allocation order.Allocation) ([]order.Award, error) {
	items := o.Items()
	awards := make([]order.Award, 0, len(items))
	for _, item := range items {
		supplierID, ok := allocation.Winner(item.ID())
		if !ok {
			return nil, errs.NewIncompleteAllocationError("line item %d has no winner", item.ID())
		}
		q := findQuote(o, quotes, supplierID)
		if q == nil {
			return nil, errs.NewIncompleteAllocationError("line item %d is assigned to %s without a quote", item.ID(), supplierID)
		}
		price, ok := q.PriceFor(item.ID())
		if !ok {
			return nil, errs.NewIncompleteAllocationError("line item %d is assigned to %s without a valid offer", item.ID(), supplierID)
		}
		award, err := order.NewAward(item.ID(), supplierID, q.SupplierName(), price)
		if err != nil {
			return nil, err
		}
		awards = append(awards, award)
	}
	if extra := allocation.Len() - len(items); extra > 0 {
		return nil, errs.NewIncompleteAllocationError("allocation references %d unknown line items", extra)
	}
	return awards, nil
}

// bestQuoteFor implements the price and tie-break rules for one line.
func (a Adjudicator) bestQuoteFor(o *order.Order, quotes []*quote.Quote, lineItemID order.LineItemID) *quote.Quote {
	var (
		best      *quote.Quote
		bestPrice kernel.Money
	)
	for _, q := range quotes {
		if !belongsTo(o, q) {
			continue
		}
		price, ok := q.PriceFor(lineItemID)
		if !ok {
			continue
		}
		if best == nil || beats(price, q, bestPrice, best) {
			best, bestPrice = q, price
		}
	}
	return best
}

// beats reports whether candidate (price p) ranks before the current best (price bp).
func beats(p kernel.Money, candidate *quote.Quote, bp kernel.Money, current *quote.Quote) bool {
	if c := p.Cmp(bp); c != 0 {
		return c < 0
	}
	if !candidate.SubmittedAt().Equal(current.SubmittedAt()) {
		return candidate.SubmittedAt().Before(current.SubmittedAt())
	}
	return candidate.SupplierID().Less(current.SupplierID())
}

// SortQuotes orders quotes by first submission, ties by supplier id. This is the order in
// which quotes are listed and shown as comparison columns.
func SortQuotes(quotes []*quote.Quote) []*quote.Quote {
	sorted := slices.Clone(quotes)
	slices.SortStableFunc(sorted, func(x, y *quote.Quote) int {
		if c := x.FirstSubmittedAt().Compare(y.FirstSubmittedAt()); c != 0 {
			return c
		}
		return compareIDs(x.SupplierID(), y.SupplierID())
	})
	return sorted
}

func findQuote(o *order.Order, quotes []*quote.Quote, supplierID kernel.UUID) *quote.Quote {
	for _, q := range quotes {
		if belongsTo(o, q) && q.SupplierID().IsEqual(supplierID) {
			return q
		}
	}
	return nil
}

func belongsTo(o *order.Order, q *quote.Quote) bool {
	return q != nil && q.OrderID().IsEqual(o.ID())
}

func compareIDs(x, y kernel.UUID) int {
	switch {
	case x.Less(y):
		return -1
	case y.Less(x):
		return 1
	default:
		return 0
	}
}
