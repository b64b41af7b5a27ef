package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// Allocation maps line items to the supplier chosen for them.
// It is immutable: Assign returns a modified copy.
type Allocation struct {
	winners map[LineItemID]kernel.UUID
}

// NewAllocation returns an empty allocation.
func NewAllocation() Allocation {
	return Allocation{winners: map[LineItemID]kernel.UUID{}}
}

// Assign returns a copy of the allocation with lineID awarded to supplierID.
func (a Allocation) Assign(lineID LineItemID, supplierID kernel.UUID) Allocation {
	next := a.Clone()
	next.winners[lineID] = supplierID
	return next
}

// Winner returns the supplier assigned to lineID, if any.
func (a Allocation) Winner(lineID LineItemID) (kernel.UUID, bool) {
	id, ok := a.winners[lineID]
	return id, ok
}

// Lines returns the assigned line ids in ascending order.
func (a Allocation) Lines() []LineItemID {
	lines := make([]LineItemID, 0, len(a.winners))
	for id := range a.winners {
		lines = append(lines, id)
	}
	slices.Sort(lines)
	return lines
}

// Len is the number of assigned lines.
func (a Allocation) Len() int {
	return len(a.winners)
}

// Clone returns an independent copy.
func (a Allocation) Clone() Allocation {
	next := NewAllocation()
	for k, v := range a.winners {
		next.winners[k] = v
	}
	return next
}

// Equal reports whether both allocations assign the same suppliers to the same lines.
func (a Allocation) Equal(other Allocation) bool {
	if a.Len() != other.Len() {
		return false
	}
	for line, supplier := range a.winners {
		w, ok := other.winners[line]
		if !ok || !w.IsEqual(supplier) {
			return false
		}
	}
	return true
}

// String renders "1:<supplier> 2:<supplier>" in line order, handy in logs and test failures.
func (a Allocation) String() string {
	parts := make([]string, 0, a.Len())
	for _, line := range a.Lines() {
		parts = append(parts, fmt.Sprintf("%d:%s", line, a.winners[line]))
	}
	return strings.Join(parts, " ")
}

// AllocationEntry is one line of an allocation.
type AllocationEntry struct {
	LineItemID LineItemID  `json:"lineItemId"`
	SupplierID kernel.UUID `json:"supplierId"`
}

// Entries lists the allocation in line order.
func (a Allocation) Entries() []AllocationEntry {
	entries := make([]AllocationEntry, 0, a.Len())
	for _, line := range a.Lines() {
		entries = append(entries, AllocationEntry{LineItemID: line, SupplierID: a.winners[line]})
	}
	return entries
}

// MarshalJSON renders the allocation as a list of entries in line order.
func (a Allocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Entries())
}

// UnmarshalJSON reads the list form written by MarshalJSON.
func (a *Allocation) UnmarshalJSON(data []byte) error {
	var entries []AllocationEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	next := NewAllocation()
	for _, e := range entries {
		if err := errors.Join(e.LineItemID.Validate(), e.SupplierID.Validate()); err != nil {
			return err
		}
		next.winners[e.LineItemID] = e.SupplierID
	}
	*a = next
	return nil
}

// Award is a committed allocation entry: the winning supplier of one line
// and a snapshot of the unit price it won with.
type Award struct {
	lineItemID   LineItemID
	supplierID   kernel.UUID
	supplierName string
	unitPrice    kernel.Money
}

// NewAward validates an award. The price must be strictly positive:
// a zero price means the supplier did not quote the line.
func NewAward(lineItemID LineItemID, supplierID kernel.UUID, supplierName string, unitPrice kernel.Money) (Award, error) {
	var priceErr error
	if !unitPrice.IsPositive() {
		priceErr = errs.NewValueIsOutOfRangeError("unit price", unitPrice.String(), "0.01", "unbounded")
	}
	if err := errors.Join(lineItemID.Validate(), supplierID.Validate(), priceErr); err != nil {
		return Award{}, err
	}
	return Award{
		lineItemID:   lineItemID,
		supplierID:   supplierID,
		supplierName: supplierName,
		unitPrice:    unitPrice,
	}, nil
}

func (a Award) LineItemID() LineItemID  { return a.lineItemID }
func (a Award) SupplierID() kernel.UUID { return a.supplierID }
func (a Award) SupplierName() string    { return a.supplierName }
func (a Award) UnitPrice() kernel.Money { return a.unitPrice }
