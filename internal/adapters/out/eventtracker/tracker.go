// Package eventtracker collects aggregates touched by a unit of work and hands their
// domain events to the notification emitter once the unit of work has committed.
package eventtracker

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
)

type eventSource interface {
	DomainEvents() []kernel.DomainEvent
	ClearDomainEvents()
}

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// Tracker is not safe for concurrent use; each unit of work owns one.
type Tracker struct {
	aggregates []trackedAggregate
}

// TrackAggregate registers an aggregate written in the current unit of work.
// Tracking the same aggregate twice is harmless.
func (t *Tracker) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, a := range t.aggregates {
		if a.Aggregate == aggregate {
			return
		}
	}
	t.aggregates = append(t.aggregates, trackedAggregate{ID: id, Aggregate: aggregate})
}

// Len returns the number of tracked aggregates.
func (t *Tracker) Len() int {
	return len(t.aggregates)
}

// Publish emits the pending events of every tracked aggregate in tracking order, clears them
// from the aggregates and forgets the aggregates.
func (t *Tracker) Publish(ctx context.Context, emitter ports.NotificationEmitter) {
	for _, a := range t.aggregates {
		src, ok := a.Aggregate.(eventSource)
		if !ok {
			continue
		}
		for _, event := range src.DomainEvents() {
			emitter.Emit(ctx, event)
		}
		src.ClearDomainEvents()
	}
	t.Reset()
}

// Reset forgets tracked aggregates without emitting anything, as after a rollback.
func (t *Tracker) Reset() {
	t.aggregates = nil
}
