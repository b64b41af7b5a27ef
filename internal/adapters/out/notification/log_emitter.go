package notification

import (
	"context"

	"procurement/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// LogEmitter writes every event to the structured log.
type LogEmitter struct {
	logger *zap.Logger
}

func NewLogEmitter(logger *zap.Logger) LogEmitter {
	return LogEmitter{logger: logger.Named("notifications")}
}

func (e LogEmitter) Emit(_ context.Context, event kernel.DomainEvent) {
	e.logger.Info("domain event",
		zap.String("kind", event.EventKind()),
		zap.Stringer("event_id", event.EventID()),
		zap.Stringer("aggregate_id", event.AggregateID()),
		zap.Time("occurred_at", event.OccurredAt()),
		zap.Any("payload", event),
	)
}
