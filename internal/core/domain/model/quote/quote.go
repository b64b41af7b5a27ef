package quote

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
)

var (
	// ErrQuoteIsNotConstructed is returned when a Quote instance was not created through
	// NewQuote or RestoreQuote.
	ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote constructor")
)

// Revision is one submitted version of a quote. Revisions are immutable and numbered from 1.
type Revision struct {
	number       int
	supplierName string
	offers       []LineOffer
	terms        Terms
	submittedAt  time.Time
}

// RestoreRevision rebuilds a revision from persisted state.
func RestoreRevision(number int, supplierName string, offers []LineOffer, terms Terms, submittedAt time.Time) (Revision, error) {
	if number < 1 {
		return Revision{}, errs.NewValueIsOutOfRangeError("revision", number, 1, "unbounded")
	}
	if len(offers) == 0 {
		return Revision{}, errs.NewValueIsRequiredError("offers")
	}
	return Revision{
		number:       number,
		supplierName: supplierName,
		offers:       slices.Clone(offers),
		terms:        terms,
		submittedAt:  submittedAt.UTC(),
	}, nil
}

func (r Revision) Number() int            { return r.number }
func (r Revision) SupplierName() string   { return r.supplierName }
func (r Revision) Terms() Terms           { return r.terms }
func (r Revision) SubmittedAt() time.Time { return r.submittedAt }

// Offers returns a copy of the line offers in line order.
func (r Revision) Offers() []LineOffer {
	return slices.Clone(r.offers)
}

// Quote is a supplier's current answer to one order. There is at most one Quote per
// (order, supplier) pair; resubmitting creates a new revision of the same Quote.
//
// Quote follows these invariants:
//   - Offers cover every line item of the order exactly once
//   - Revision numbers grow by one on every submission
//   - FirstSubmittedAt never changes after the first revision
type Quote struct {
	kernel.EventRecorder

	orderID          kernel.UUID
	supplierID       kernel.UUID
	current          Revision
	firstSubmittedAt time.Time
	version          int64

	// isConstructed ensures the quote was created via NewQuote or RestoreQuote
	isConstructed bool
}

// NewQuote creates revision 1 of a supplier's quote for the order.
//
// The caller must have checked the order is open for quotes (see order.Order.AcceptQuote).
//
// Parameters:
//   - o: the order being quoted, used to check line coverage
//   - supplierID: the quoting supplier
//   - supplierName: display name shown in comparisons
//   - offers: exactly one offer per order line item, in any order
//   - terms: payment and delivery conditions
//   - at: submission time
//
// Returns:
//   - *Quote: the new quote with a recorded QuoteSubmittedEvent
//   - error: LineItemMismatch when offers do not match the items, validation errors otherwise
func NewQuote(
	o *order.Order,
	supplierID kernel.UUID,
	supplierName string,
	offers []LineOffer,
	terms Terms,
	at time.Time,
) (*Quote, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := supplierID.Validate(); err != nil {
		return nil, err
	}

	rev, err := newRevision(o, 1, supplierName, offers, terms, at)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		orderID:          o.ID(),
		supplierID:       supplierID,
		current:          rev,
		firstSubmittedAt: rev.submittedAt,
		isConstructed:    true,
	}
	q.recordSubmitted(o)
	return q, nil
}

// Revise replaces the current revision with a new one. The previous revision stays in the
// history kept by the quote store.
func (q *Quote) Revise(o *order.Order, supplierName string, offers []LineOffer, terms Terms, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.ID().IsEqual(q.orderID) {
		return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("quote belongs to order %s, not %s", q.orderID, o.ID()))
	}

	rev, err := newRevision(o, q.current.number+1, supplierName, offers, terms, at)
	if err != nil {
		return err
	}

	q.current = rev
	q.recordSubmitted(o)
	return nil
}

// Snapshot is the persisted state of a Quote.
type Snapshot struct {
	OrderID          kernel.UUID
	SupplierID       kernel.UUID
	Current          Revision
	FirstSubmittedAt time.Time
	Version          int64
}

// RestoreQuote rebuilds a quote from persisted state.
func RestoreQuote(s Snapshot) (*Quote, error) {
	if err := errors.Join(s.OrderID.Validate(), s.SupplierID.Validate()); err != nil {
		return nil, err
	}
	if s.Current.number < 1 {
		return nil, errs.NewValueIsRequiredError("current revision")
	}
	return &Quote{
		orderID:          s.OrderID,
		supplierID:       s.SupplierID,
		current:          s.Current,
		firstSubmittedAt: s.FirstSubmittedAt.UTC(),
		version:          s.Version,
		isConstructed:    true,
	}, nil
}

// Snapshot returns a copy of the quote state.
func (q *Quote) Snapshot() Snapshot {
	cur := q.current
	cur.offers = slices.Clone(cur.offers)
	return Snapshot{
		OrderID:          q.orderID,
		SupplierID:       q.supplierID,
		Current:          cur,
		FirstSubmittedAt: q.firstSubmittedAt,
		Version:          q.version,
	}
}

// Validate ensures the Quote instance was properly constructed.
func (q *Quote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrQuoteIsNotConstructed
	}
	return nil
}

func (q *Quote) OrderID() kernel.UUID        { return q.orderID }
func (q *Quote) SupplierID() kernel.UUID     { return q.supplierID }
func (q *Quote) SupplierName() string        { return q.current.supplierName }
func (q *Quote) Terms() Terms                { return q.current.terms }
func (q *Quote) SubmittedAt() time.Time      { return q.current.submittedAt }
func (q *Quote) FirstSubmittedAt() time.Time { return q.firstSubmittedAt }
func (q *Quote) Revision() int               { return q.current.number }
func (q *Quote) Version() int64              { return q.version }
func (q *Quote) CurrentRevision() Revision   { return q.current }

// Offers returns a copy of the current line offers in line order.
func (q *Quote) Offers() []LineOffer {
	return q.current.Offers()
}

// Offer returns the current offer for a line item.
func (q *Quote) Offer(lineItemID order.LineItemID) (LineOffer, bool) {
	for _, o := range q.current.offers {
		if o.lineItemID == lineItemID {
			return o, true
		}
	}
	return LineOffer{}, false
}

// PriceFor returns the quoted unit price for a line, or false when the line is not quoted.
func (q *Quote) PriceFor(lineItemID order.LineItemID) (kernel.Money, bool) {
	o, ok := q.Offer(lineItemID)
	if !ok || !o.IsQuoted() {
		return kernel.Money{}, false
	}
	return o.unitPrice, true
}

// SetVersion is called by persistence adapters after a successful write.
func (q *Quote) SetVersion(version int64) {
	q.version = version
}

func (q *Quote) recordSubmitted(o *order.Order) {
	quoted := 0
	for _, offer := range q.current.offers {
		if offer.IsQuoted() {
			quoted++
		}
	}
	q.Record(QuoteSubmittedEvent{
		BaseEvent:    kernel.NewBaseEvent(q.orderID, q.current.submittedAt),
		BuyerID:      o.BuyerID(),
		SupplierID:   q.supplierID,
		SupplierName: q.current.supplierName,
		Revision:     q.current.number,
		QuotedLines:  quoted,
	})
}

func newRevision(o *order.Order, number int, supplierName string, offers []LineOffer, terms Terms, at time.Time) (Revision, error) {
	supplierName = strings.TrimSpace(supplierName)

	var nameErr, termsErr, timeErr error
	if supplierName == "" {
		nameErr = errs.NewValueIsRequiredError("supplier name")
	}
	if terms.paymentTerm == "" {
		termsErr = errs.NewValueIsRequiredError("terms")
	} else if terms.validUntil.Before(at) {
		termsErr = errs.NewValueIsInvalidErrorWithCause(
			"valid until",
			fmt.Errorf("%s is before submission time", terms.validUntil.Format(time.RFC3339)),
		)
	}
	if at.IsZero() {
		timeErr = errs.NewValueIsRequiredError("submission time")
	}
	if err := errors.Join(nameErr, termsErr, timeErr); err != nil {
		return Revision{}, err
	}

	ordered, err := matchLineItems(o, offers)
	if err != nil {
		return Revision{}, err
	}

	return Revision{
		number:       number,
		supplierName: supplierName,
		offers:       ordered,
		terms:        terms,
		submittedAt:  at.UTC(),
	}, nil
}

// matchLineItems checks that offers cover the order line items exactly once and returns
// them sorted by line id.
func matchLineItems(o *order.Order, offers []LineOffer) ([]LineOffer, error) {
	items := o.Items()
	if len(offers) != len(items) {
		return nil, errs.NewLineItemMismatchError("order has %d line items, got %d offers", len(items), len(offers))
	}

	byLine := make(map[order.LineItemID]LineOffer, len(offers))
	for _, offer := range offers {
		if _, ok := o.Item(offer.lineItemID); !ok {
			return nil, errs.NewLineItemMismatchError("line item %d does not exist", offer.lineItemID)
		}
		if _, dup := byLine[offer.lineItemID]; dup {
			return nil, errs.NewLineItemMismatchError("line item %d is offered twice", offer.lineItemID)
		}
		byLine[offer.lineItemID] = offer
	}

	ordered := make([]LineOffer, 0, len(items))
	for _, item := range items {
		ordered = append(ordered, byLine[item.ID()])
	}
	return ordered, nil
}
