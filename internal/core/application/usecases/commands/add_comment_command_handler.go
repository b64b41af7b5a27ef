package commands

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

type AddCommentCommandHandler struct {
	runner txRunner
	clock  kernel.Clock
}

func NewAddCommentCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
	opts ...HandlerOption,
) AddCommentCommandHandler {
	return AddCommentCommandHandler{
		runner: newTxRunner(uowFactory, opts...),
		clock:  clock,
	}
}

func (h AddCommentCommandHandler) Handle(ctx context.Context, cmd AddCommentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, "AddComment", func(ctx context.Context, uow ports.UnitOfWork) error {
		return mutateOrder(ctx, uow, cmd.OrderID(), func(o *order.Order) error {
			c, err := order.NewComment(cmd.CommentID(), cmd.Actor(), cmd.AuthorName(), cmd.Text(), h.clock.Now())
			if err != nil {
				return err
			}
			return o.AddComment(c)
		})
	})
}
