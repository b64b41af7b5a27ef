package order

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
)

const (
	EventKindStatusChanged = "order.status_changed"
	EventKindAdjudicated   = "order.adjudicated"
	EventKindCommentAdded  = "order.comment_added"
	EventKindReminder      = "order.adjudication_reminder"
)

// StatusChangedEvent is recorded on every successful lifecycle transition.
type StatusChangedEvent struct {
	kernel.BaseEvent
	BuyerID   kernel.UUID `json:"buyerId"`
	From      Status      `json:"from"`
	To        Status      `json:"to"`
	ActorID   kernel.UUID `json:"actorId"`
	ActorRole Role        `json:"actorRole"`
}

func (StatusChangedEvent) EventKind() string { return EventKindStatusChanged }

// AwardedLine is the event payload form of an Award.
type AwardedLine struct {
	LineItemID LineItemID   `json:"lineItemId"`
	SupplierID kernel.UUID  `json:"supplierId"`
	UnitPrice  kernel.Money `json:"unitPrice"`
}

// OrderAdjudicatedEvent is recorded when awards are committed.
// Suppliers are notified whether they won any line.
type OrderAdjudicatedEvent struct {
	kernel.BaseEvent
	BuyerID kernel.UUID   `json:"buyerId"`
	Awards  []AwardedLine `json:"awards"`
}

func (OrderAdjudicatedEvent) EventKind() string { return EventKindAdjudicated }

// CommentAddedEvent is recorded when someone writes in the order thread.
type CommentAddedEvent struct {
	kernel.BaseEvent
	CommentID kernel.UUID `json:"commentId"`
	AuthorID  kernel.UUID `json:"authorId"`
	Role      Role        `json:"authorRole"`
}

func (CommentAddedEvent) EventKind() string { return EventKindCommentAdded }

// AdjudicationReminderEvent nudges administrators about an order whose bidding window closed
// while it is still IN_REVIEW. It is not recorded on the aggregate; the reminder job emits it.
type AdjudicationReminderEvent struct {
	kernel.BaseEvent
	BuyerID        kernel.UUID `json:"buyerId"`
	ExpirationDate time.Time   `json:"expirationDate"`
	OverdueBy      string      `json:"overdueBy"`
}

func (AdjudicationReminderEvent) EventKind() string { return EventKindReminder }

// NewAdjudicationReminderEvent builds the reminder for an order awaiting adjudication at the given time.
func NewAdjudicationReminderEvent(o *Order, at time.Time) AdjudicationReminderEvent {
	return AdjudicationReminderEvent{
		BaseEvent:      kernel.NewBaseEvent(o.id, at),
		BuyerID:        o.buyerID,
		ExpirationDate: o.expirationDate,
		OverdueBy:      at.Sub(o.expirationDate).Truncate(time.Minute).String(),
	}
}

func newStatusChangedEvent(o *Order, from, to Status, actor Actor, at time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent: kernel.NewBaseEvent(o.id, at),
		BuyerID:   o.buyerID,
		From:      from,
		To:        to,
		ActorID:   actor.ID(),
		ActorRole: actor.Role(),
	}
}
