package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a state change.
// Events are collected by the unit of work and emitted only after a successful commit.
type DomainEvent interface {
	EventID() UUID
	EventKind() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// BaseEvent carries the identity fields shared by all domain events.
type BaseEvent struct {
	ID         UUID      `json:"eventId"`
	Aggregate  UUID      `json:"aggregateId"`
	RecordedAt time.Time `json:"occurredAt"`
}

// NewBaseEvent stamps a new event for aggregateID at the given time.
func NewBaseEvent(aggregateID UUID, at time.Time) BaseEvent {
	return BaseEvent{ID: NewUUID(), Aggregate: aggregateID, RecordedAt: at}
}

func (e BaseEvent) EventID() UUID         { return e.ID }
func (e BaseEvent) AggregateID() UUID     { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time { return e.RecordedAt }

// EventRecorder is embedded by aggregate roots to buffer their pending events.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event to the pending list.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns the pending events in recording order.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ClearDomainEvents drops all pending events, typically after they were emitted.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
