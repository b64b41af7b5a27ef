// Package commands contains business operations that modify system state.
// Every command follows the same pattern: constructor validation, then a read-validate-write
// cycle inside a unit of work that is retried as a whole on an optimistic concurrency conflict.
package commands

import (
	"context"
	"errors"
	"time"

	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/metrics"
	"procurement/internal/pkg/tracing"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RetryPolicy bounds how a command retries after ErrConcurrentModification.
// Any other error stops the command immediately.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy retries a conflicting command up to five times within roughly a second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      5,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     250 * time.Millisecond,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, p.MaxRetries), ctx)
}

// HandlerOption customizes a command handler.
type HandlerOption func(*txRunner)

// WithRetryPolicy replaces DefaultRetryPolicy.
func WithRetryPolicy(policy RetryPolicy) HandlerOption {
	return func(r *txRunner) {
		r.retry = policy
	}
}

// txRunner runs one attempt of a command per unit of work.
//
// Example:
//
//	err := r.run(ctx, "PublishOrder", func(ctx context.Context, uow ports.UnitOfWork) error {
//	    o, err := uow.OrderRepository().Get(ctx, id)
//	    if err != nil {
//	        return err
//	    }
//	    if err := o.Publish(actor, now); err != nil {
//	        return err
//	    }
//	    return uow.OrderRepository().Update(ctx, o)
//	})
type txRunner struct {
	uowFactory ports.UnitOfWorkFactory
	retry      RetryPolicy
}

func newTxRunner(uowFactory ports.UnitOfWorkFactory, opts ...HandlerOption) txRunner {
	r := txRunner{
		uowFactory: uowFactory,
		retry:      DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r txRunner) run(ctx context.Context, name string, fn func(ctx context.Context, uow ports.UnitOfWork) error) (err error) {
	started := time.Now()
	ctx, span := tracing.Tracer().Start(ctx, "command."+name)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.String("command.outcome", metrics.Outcome(err)))
		span.End()
		metrics.ObserveCommand(name, started, err)
	}()

	attempts := 0
	operation := func() error {
		attempts++
		span.SetAttributes(attribute.Int("command.attempts", attempts))
		attemptErr := r.attempt(ctx, fn)
		if attemptErr == nil || errors.Is(attemptErr, errs.ErrConcurrentModification) {
			return attemptErr
		}
		return backoff.Permanent(attemptErr)
	}
	notify := func(error, time.Duration) {
		metrics.ConflictRetry(name)
	}

	return backoff.RetryNotify(operation, r.retry.backOff(ctx), notify)
}

// final marks err as not worth retrying even if it is a concurrency conflict.
func final(err error) error {
	return backoff.Permanent(err)
}

func (r txRunner) attempt(ctx context.Context, fn func(ctx context.Context, uow ports.UnitOfWork) error) error {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(ctx, uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
