package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
)

// NotificationEmitter delivers domain events to interested parties (buyers, suppliers,
// administrators). Delivery is fire-and-forget: failures are logged by the adapter and
// never roll back or fail the operation that produced the event.
type NotificationEmitter interface {
	Emit(ctx context.Context, event kernel.DomainEvent)
}

// TrackingNumberGenerator produces dispatch references in the form TRK-XXXXXXXX.
type TrackingNumberGenerator interface {
	Next() string
}
