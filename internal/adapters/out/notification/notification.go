// Package notification delivers committed domain events to buyers, suppliers and
// administrators. Sinks never fail the operation that produced the event.
package notification

import (
	"context"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"

	"go.uber.org/zap"
)

const (
	DriverLog   = "log"
	DriverKafka = "kafka"
)

// Config selects the event sink.
type Config struct {
	Driver       string
	Brokers      []string
	Topic        string
	ClientID     string
	WriteTimeout time.Duration
}

// Envelope is the wire form of an event.
type Envelope struct {
	Kind        string             `json:"kind"`
	EventID     kernel.UUID        `json:"eventId"`
	AggregateID kernel.UUID        `json:"aggregateId"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Payload     kernel.DomainEvent `json:"payload"`
}

func NewEnvelope(event kernel.DomainEvent) Envelope {
	return Envelope{
		Kind:        event.EventKind(),
		EventID:     event.EventID(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
		Payload:     event,
	}
}

// New builds the configured emitter. Events are always logged; with the kafka driver
// they are also published. The returned close function is never nil.
func New(cfg Config, logger *zap.Logger) (ports.NotificationEmitter, func() error, error) {
	logSink := NewLogEmitter(logger)
	switch cfg.Driver {
	case "", DriverLog:
		logger.Info("notifications go to the log only")
		return logSink, func() error { return nil }, nil
	case DriverKafka:
		if len(cfg.Brokers) == 0 || cfg.Topic == "" {
			return nil, nil, fmt.Errorf("kafka notifications need brokers and a topic")
		}
		kafkaSink := NewKafkaEmitter(newKafkaWriter(cfg, logger), cfg.WriteTimeout, logger)
		logger.Info("notifications published to kafka",
			zap.Strings("brokers", cfg.Brokers),
			zap.String("topic", cfg.Topic))
		return Fanout{logSink, kafkaSink}, kafkaSink.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported notification driver: %s", cfg.Driver)
	}
}

// Fanout hands every event to each emitter in turn.
type Fanout []ports.NotificationEmitter

func (f Fanout) Emit(ctx context.Context, event kernel.DomainEvent) {
	for _, e := range f {
		e.Emit(ctx, event)
	}
}
