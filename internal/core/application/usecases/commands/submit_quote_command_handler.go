package commands

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/quote"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// SubmitQuoteCommandHandler upserts a supplier quote. A second submission from the same
// supplier becomes a new revision; earlier revisions stay readable.
//
// The order record is rewritten too, so a quote racing with adjudication or rejection of the
// same order loses the compare-and-swap and is re-validated on retry.
type SubmitQuoteCommandHandler struct {
	runner txRunner
	clock  kernel.Clock
}

func NewSubmitQuoteCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
	opts ...HandlerOption,
) SubmitQuoteCommandHandler {
	return SubmitQuoteCommandHandler{
		runner: newTxRunner(uowFactory, opts...),
		clock:  clock,
	}
}

// Handle stores the submission and returns the revision number it became.
//
// Returns:
//   - ErrOrderNotOpen if the order is not IN_REVIEW or bidding has expired
//   - ErrLineItemMismatch if the offers do not cover exactly the order's line items
//   - ErrObjectNotFound if the order does not exist
func (h SubmitQuoteCommandHandler) Handle(ctx context.Context, cmd SubmitQuoteCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	var revision int
	err := h.runner.run(ctx, "SubmitQuote", func(ctx context.Context, uow ports.UnitOfWork) error {
		orderRepo := uow.OrderRepository()
		quoteRepo := uow.QuoteRepository()

		o, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		now := h.clock.Now()
		if err = o.AcceptQuote(now); err != nil {
			return err
		}

		q, err := quoteRepo.Get(ctx, cmd.OrderID(), cmd.SupplierID())
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			q, err = quote.NewQuote(o, cmd.SupplierID(), cmd.SupplierName(), cmd.Offers(), cmd.Terms(), now)
		case err == nil:
			err = q.Revise(o, cmd.SupplierName(), cmd.Offers(), cmd.Terms(), now)
		}
		if err != nil {
			return err
		}

		if err = quoteRepo.Save(ctx, q); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}

		revision = q.Revision()
		return nil
	})
	if err != nil {
		return 0, err
	}

	return revision, nil
}
