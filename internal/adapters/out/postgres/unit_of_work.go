// Package postgres provides the GORM-based Unit of Work spanning the order and quote
// repositories.
//
// A unit of work wraps one database transaction. Repositories obtained from it run inside
// that transaction and register every aggregate they write; after a successful Commit the
// pending domain events of those aggregates are handed to the NotificationEmitter.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, emitter)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().Get(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	if err := o.Publish(actor, now); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err // ErrConcurrentModification when someone else wrote first
//	}
//	return uow.Commit(ctx)
//
// Concurrency:
//   - Each UnitOfWork instance owns its transaction; goroutines must not share one.
//   - Writes are compare-and-swap on the version column, so lost updates surface as
//     ErrConcurrentModification instead of being silently overwritten.
package postgres

import (
	"context"

	"procurement/internal/adapters/out/eventtracker"
	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/adapters/out/postgres/quoterepo"
	"procurement/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db      *gorm.DB
	emitter ports.NotificationEmitter
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// Events of committed aggregates go to emitter.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db, notification.NewLogEmitter(logger))
func NewGormUnitOfWorkFactory(db *gorm.DB, emitter ports.NotificationEmitter) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, emitter: emitter}
}

// Create produces a new UnitOfWork with its own transaction state and aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		emitter: f.emitter,
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the aggregates written in it.
//
// Without Begin, repositories run directly on the pool; this is how read-only queries use it.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	emitter ports.NotificationEmitter
	tracker eventtracker.Tracker
}

// Begin starts a transaction. Calling Begin again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	uow.tracker.Reset()
	return nil
}

// Commit finalizes the transaction and then emits the domain events of every tracked
// aggregate. Events are dropped if the commit fails.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracker.Reset()
		return err
	}

	uow.tracker.Publish(ctx, uow.emitter)
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates. It is a no-op when no
// transaction is open, so it can be deferred right after Begin.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracker.Reset()
	return err
}

// OrderRepository returns an order repository bound to the open transaction, or to the
// pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), &uow.tracker)
}

// QuoteRepository returns a quote repository bound to the open transaction, or to the
// pool when none is open.
func (uow *GormUnitOfWork) QuoteRepository() ports.QuoteRepository {
	return quoterepo.NewGormQuoteRepository(uow.conn(), &uow.tracker)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
