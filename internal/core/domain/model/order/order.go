package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a purchase request: the requested line items, the
// lifecycle status, the discussion thread, the committed awards and the dispatch details.
//
// Order follows these invariants:
//   - Items are non-empty and never change after creation
//   - Status is always a defined value and only moves along the state machine edges
//   - Comments only grow
//   - Once Delivered or Rejected, only comments may be appended
//   - An order in InPreparation or later carries exactly one award per line item
//
// The version field is the optimistic concurrency token. Persistence adapters compare it on
// update and bump it through SetVersion after a successful write.
type Order struct {
	kernel.EventRecorder

	id                    kernel.UUID
	buyerID               kernel.UUID
	buyerName             string
	items                 []LineItem
	status                Status
	createdAt             time.Time
	updatedAt             time.Time
	expirationDate        time.Time
	requestedDeliveryDate *time.Time
	terms                 string
	comments              []Comment
	dispatch              *DispatchInfo
	awards                []Award
	rejectionReason       string
	version               int64

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a purchase request in PendingApproval status.
//
// Parameters:
//   - id: unique identifier of the order
//   - buyer: the requesting actor, must have the BUYER role
//   - buyerName: display name of the buyer institution
//   - items: at least one line item; ids are assigned by position starting at 1
//   - expirationDate: the moment bidding closes, must be after now
//   - requestedDeliveryDate: optional delivery wish
//   - terms: optional free-form terms text
//   - now: creation time
//
// Returns:
//   - *Order: the created order
//   - error: joined validation errors for every invalid argument
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), buyer, "City Hospital",
//	    []order.LineItemDraft{{Quantity: 10, Description: "Gloves"}},
//	    now.Add(72*time.Hour), nil, "", now)
func NewOrder(
	id kernel.UUID,
	buyer Actor,
	buyerName string,
	items []LineItemDraft,
	expirationDate time.Time,
	requestedDeliveryDate *time.Time,
	terms string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        PendingApproval,
		buyerName:     strings.TrimSpace(buyerName),
		terms:         strings.TrimSpace(terms),
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyer(buyer),
		o.setItems(items),
		o.setExpirationDate(expirationDate, now),
		o.setRequestedDeliveryDate(requestedDeliveryDate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the complete persisted state of an Order. Persistence adapters map it to
// their own records and rebuild the aggregate with RestoreOrder.
type Snapshot struct {
	ID                    kernel.UUID
	BuyerID               kernel.UUID
	BuyerName             string
	Items                 []LineItem
	Status                Status
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ExpirationDate        time.Time
	RequestedDeliveryDate *time.Time
	Terms                 string
	Comments              []Comment
	Dispatch              *DispatchInfo
	Awards                []Award
	RejectionReason       string
	Version               int64
}

// RestoreOrder rebuilds an order from persisted state without re-running creation rules
// such as "expiration after now". Structural invariants are still checked.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(s.ID.Validate(), s.BuyerID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	if len(s.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if s.Status >= InPreparation && s.Status != Rejected && len(s.Awards) != len(s.Items) {
		return nil, errs.NewInvariantViolationError(
			"order %s in %s has %d awards for %d items", s.ID, s.Status, len(s.Awards), len(s.Items))
	}

	o := &Order{
		id:                    s.ID,
		buyerID:               s.BuyerID,
		buyerName:             s.BuyerName,
		items:                 slices.Clone(s.Items),
		status:                s.Status,
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
		expirationDate:        s.ExpirationDate,
		requestedDeliveryDate: cloneTime(s.RequestedDeliveryDate),
		terms:                 s.Terms,
		comments:              slices.Clone(s.Comments),
		awards:                slices.Clone(s.Awards),
		rejectionReason:       s.RejectionReason,
		version:               s.Version,
		isConstructed:         true,
	}
	if s.Dispatch != nil {
		d := *s.Dispatch
		o.dispatch = &d
	}
	return o, nil
}

// Snapshot returns a deep copy of the order state.
func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		ID:                    o.id,
		BuyerID:               o.buyerID,
		BuyerName:             o.buyerName,
		Items:                 slices.Clone(o.items),
		Status:                o.status,
		CreatedAt:             o.createdAt,
		UpdatedAt:             o.updatedAt,
		ExpirationDate:        o.expirationDate,
		RequestedDeliveryDate: cloneTime(o.requestedDeliveryDate),
		Terms:                 o.terms,
		Comments:              slices.Clone(o.comments),
		Awards:                slices.Clone(o.awards),
		RejectionReason:       o.rejectionReason,
		Version:               o.version,
	}
	if o.dispatch != nil {
		d := *o.dispatch
		s.Dispatch = &d
	}
	return s
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID           { return o.id }
func (o *Order) BuyerID() kernel.UUID      { return o.buyerID }
func (o *Order) BuyerName() string         { return o.buyerName }
func (o *Order) Status() Status            { return o.status }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }
func (o *Order) ExpirationDate() time.Time { return o.expirationDate }
func (o *Order) Terms() string             { return o.terms }
func (o *Order) RejectionReason() string   { return o.rejectionReason }
func (o *Order) Version() int64            { return o.version }

// RequestedDeliveryDate returns the optional delivery wish of the buyer.
func (o *Order) RequestedDeliveryDate() *time.Time {
	return cloneTime(o.requestedDeliveryDate)
}

// Items returns a copy of the line items in position order.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

// Item looks up a line item by id.
func (o *Order) Item(id LineItemID) (LineItem, bool) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(o.items) {
		return LineItem{}, false
	}
	return o.items[idx], true
}

// Comments returns a copy of the thread, oldest first.
func (o *Order) Comments() []Comment {
	return slices.Clone(o.comments)
}

// Awards returns a copy of the committed awards in line order, empty before adjudication.
func (o *Order) Awards() []Award {
	return slices.Clone(o.awards)
}

// DispatchInfo returns the dispatch details once the order is on its way.
func (o *Order) DispatchInfo() (DispatchInfo, bool) {
	if o.dispatch == nil {
		return DispatchInfo{}, false
	}
	return *o.dispatch, true
}

// SetVersion is called by persistence adapters after a successful write.
func (o *Order) SetVersion(version int64) {
	o.version = version
}

// IsOpenForQuotes reports whether suppliers may submit quotes at the given time.
func (o *Order) IsOpenForQuotes(at time.Time) bool {
	return o.status == InReview && !at.After(o.expirationDate)
}

// AwaitsAdjudication reports whether bidding closed but no award was committed yet.
func (o *Order) AwaitsAdjudication(at time.Time) bool {
	return o.status == InReview && at.After(o.expirationDate)
}

// AcceptQuote checks that a quote may be submitted at the given time and marks the order
// as modified so that the quote and a concurrent adjudication serialize on the order version.
//
// Returns:
//   - nil if the order is InReview and bidding has not expired
//   - OrderNotOpen error otherwise
func (o *Order) AcceptQuote(at time.Time) error {
	if o.status != InReview {
		return errs.NewOrderNotOpenError("order %s is %s", o.id, o.status)
	}
	if at.After(o.expirationDate) {
		return errs.NewOrderNotOpenError("bidding for order %s expired at %s",
			o.id, o.expirationDate.Format(time.RFC3339))
	}
	o.updatedAt = at.UTC()
	return nil
}

// Publish makes the request visible to suppliers: PendingApproval -> InReview.
func (o *Order) Publish(actor Actor, at time.Time) error {
	return o.transition(o.status.Publish, actor, at, nil)
}

// Adjudicate commits the awards and moves the order InReview -> InPreparation.
//
// The status check comes first, so adjudicating an order that is not InReview reports
// InvalidTransition regardless of the awards. Awards must then cover every line item
// exactly once; anything else is an IncompleteAllocation error.
//
// Example:
//
//	awards, err := adjudicator.ResolveAwards(o, quotes, allocation)
//	if err != nil {
//	    return err
//	}
//	err = o.Adjudicate(awards, admin, now)
func (o *Order) Adjudicate(awards []Award, actor Actor, at time.Time) error {
	next, err := o.status.Adjudicate()
	if err != nil {
		return err
	}
	ordered, err := o.checkAwards(awards)
	if err != nil {
		return err
	}

	return o.transition(func() (Status, error) { return next, nil }, actor, at, func() {
		o.awards = ordered
		lines := make([]AwardedLine, 0, len(ordered))
		for _, a := range ordered {
			lines = append(lines, AwardedLine{LineItemID: a.lineItemID, SupplierID: a.supplierID, UnitPrice: a.unitPrice})
		}
		o.Record(OrderAdjudicatedEvent{
			BaseEvent: kernel.NewBaseEvent(o.id, at.UTC()),
			BuyerID:   o.buyerID,
			Awards:    lines,
		})
	})
}

// Dispatch records the dispatch details: InPreparation -> OnItsWay.
func (o *Order) Dispatch(info DispatchInfo, actor Actor, at time.Time) error {
	if info.trackingNumber == "" {
		return errs.NewValueIsRequiredError("dispatch info")
	}
	return o.transition(o.status.Dispatch, actor, at, func() {
		o.dispatch = &info
	})
}

// ConfirmDelivery closes the order: OnItsWay -> Delivered.
func (o *Order) ConfirmDelivery(actor Actor, at time.Time) error {
	return o.transition(o.status.ConfirmDelivery, actor, at, nil)
}

// Reject cancels the order from PendingApproval, InReview or InPreparation.
// A terminal order answers with AlreadyTerminal. The reason is optional.
func (o *Order) Reject(reason string, actor Actor, at time.Time) error {
	return o.transition(o.status.Reject, actor, at, func() {
		o.rejectionReason = strings.TrimSpace(reason)
	})
}

// AddComment appends to the thread. Allowed in every status, terminal ones included.
func (o *Order) AddComment(c Comment) error {
	if c.id.Validate() != nil {
		return errs.NewValueIsRequiredError("comment")
	}
	o.comments = append(o.comments, c)
	o.updatedAt = c.createdAt
	o.Record(CommentAddedEvent{
		BaseEvent: kernel.NewBaseEvent(o.id, c.createdAt),
		CommentID: c.id,
		AuthorID:  c.author.ID(),
		Role:      c.author.Role(),
	})
	return nil
}

// transition runs a status move, applies the side effect and records the status change.
// Nothing is mutated when the move or the actor is invalid.
func (o *Order) transition(move func() (Status, error), actor Actor, at time.Time, apply func()) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	next, err := move()
	if err != nil {
		return err
	}

	from := o.status
	o.status = next
	o.updatedAt = at.UTC()
	if apply != nil {
		apply()
	}
	o.Record(newStatusChangedEvent(o, from, next, actor, at.UTC()))
	return nil
}

// checkAwards verifies one award per line item and returns them in line order.
func (o *Order) checkAwards(awards []Award) ([]Award, error) {
	byLine := make(map[LineItemID]Award, len(awards))
	for _, a := range awards {
		if _, ok := o.Item(a.lineItemID); !ok {
			return nil, errs.NewIncompleteAllocationError("award for unknown line item %d", a.lineItemID)
		}
		if _, dup := byLine[a.lineItemID]; dup {
			return nil, errs.NewIncompleteAllocationError("line item %d is awarded twice", a.lineItemID)
		}
		if !a.unitPrice.IsPositive() {
			return nil, errs.NewIncompleteAllocationError("line item %d has no positive winning price", a.lineItemID)
		}
		byLine[a.lineItemID] = a
	}

	ordered := make([]Award, 0, len(o.items))
	for _, item := range o.items {
		a, ok := byLine[item.id]
		if !ok {
			return nil, errs.NewIncompleteAllocationError("line item %d has no winner", item.id)
		}
		ordered = append(ordered, a)
	}
	return ordered, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyer(buyer Actor) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	if buyer.Role() != RoleBuyer {
		return errs.NewValueIsInvalidErrorWithCause("buyer", fmt.Errorf("role %s cannot create orders", buyer.Role()))
	}
	o.buyerID = buyer.ID()
	return nil
}

func (o *Order) setItems(drafts []LineItemDraft) error {
	if len(drafts) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]LineItem, 0, len(drafts))
	var itemErrs []error
	for i, d := range drafts {
		item, err := NewLineItem(LineItemID(i+1), d.Quantity, d.Description, d.PreferredBrand)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}
	o.items = items
	return nil
}

func (o *Order) setExpirationDate(expirationDate, now time.Time) error {
	if expirationDate.IsZero() {
		return errs.NewValueIsRequiredError("expiration date")
	}
	if !expirationDate.After(now) {
		return errs.NewValueIsInvalidErrorWithCause(
			"expiration date",
			fmt.Errorf("%s is not after %s", expirationDate.Format(time.RFC3339), now.Format(time.RFC3339)),
		)
	}
	o.expirationDate = expirationDate.UTC()
	return nil
}

func (o *Order) setRequestedDeliveryDate(date *time.Time) error {
	if date == nil {
		return nil
	}
	if date.IsZero() {
		return errs.NewValueIsInvalidError("requested delivery date")
	}
	o.requestedDeliveryDate = cloneTime(date)
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := t.UTC()
	return &c
}
