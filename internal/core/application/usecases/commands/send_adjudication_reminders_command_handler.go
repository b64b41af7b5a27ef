package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/metrics"
)

// SendAdjudicationRemindersCommandHandler emits an AdjudicationReminderEvent for each
// IN_REVIEW order past its expiration date. Nothing is written, so there is no transaction
// and nothing to retry; a reminder is repeated on every run until the order is adjudicated
// or rejected.
type SendAdjudicationRemindersCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	emitter    ports.NotificationEmitter
	clock      kernel.Clock
}

func NewSendAdjudicationRemindersCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	emitter ports.NotificationEmitter,
	clock kernel.Clock,
) SendAdjudicationRemindersCommandHandler {
	return SendAdjudicationRemindersCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		clock:      clock,
	}
}

// Handle returns how many reminders were emitted.
func (h SendAdjudicationRemindersCommandHandler) Handle(ctx context.Context, cmd SendAdjudicationRemindersCommand) (sent int, err error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	started := time.Now()
	defer func() {
		metrics.ObserveCommand("SendAdjudicationReminders", started, err)
	}()

	orders, err := h.uowFactory.Create().OrderRepository().List(ctx, ports.OrderFilter{
		Statuses: []order.Status{order.InReview},
	})
	if err != nil {
		return 0, err
	}

	now := h.clock.Now()
	for _, o := range orders {
		if !o.AwaitsAdjudication(now) {
			continue
		}
		h.emitter.Emit(ctx, order.NewAdjudicationReminderEvent(o, now))
		sent++
	}
	return sent, nil
}
