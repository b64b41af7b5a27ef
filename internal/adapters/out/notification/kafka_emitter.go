package notification

import (
	"context"
	"encoding/json"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/metrics"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultWriteTimeout = 5 * time.Second

// MessageWriter is the part of *kafka.Writer the emitter uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEmitter publishes events as JSON envelopes keyed by aggregate id, so all events of
// one order land on the same partition in recording order.
type KafkaEmitter struct {
	writer  MessageWriter
	timeout time.Duration
	logger  *zap.Logger
}

func NewKafkaEmitter(writer MessageWriter, timeout time.Duration, logger *zap.Logger) *KafkaEmitter {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &KafkaEmitter{writer: writer, timeout: timeout, logger: logger}
}

func newKafkaWriter(cfg Config, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Transport:    &kafka.Transport{ClientID: cfg.ClientID},
		Logger:       kafkaLogger{logger: logger},
		ErrorLogger:  kafkaLogger{logger: logger},
	}
}

func (e *KafkaEmitter) Emit(ctx context.Context, event kernel.DomainEvent) {
	value, err := json.Marshal(NewEnvelope(event))
	if err != nil {
		e.fail(event, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	err = e.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-kind", Value: []byte(event.EventKind())},
			{Key: "event-id", Value: []byte(event.EventID().String())},
		},
		Time: event.OccurredAt(),
	})
	if err != nil {
		e.fail(event, err)
		return
	}
	metrics.EventEmitted(event.EventKind(), nil)
}

func (e *KafkaEmitter) Close() error {
	return e.writer.Close()
}

func (e *KafkaEmitter) fail(event kernel.DomainEvent, err error) {
	e.logger.Error("publish domain event",
		zap.String("kind", event.EventKind()),
		zap.Stringer("event_id", event.EventID()),
		zap.Error(err))
	metrics.EventEmitted(event.EventKind(), err)
}

type kafkaLogger struct {
	logger *zap.Logger
}

func (k kafkaLogger) Printf(msg string, args ...interface{}) {
	k.logger.Sugar().Debugf(msg, args...)
}
