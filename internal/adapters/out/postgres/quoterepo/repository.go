package quoterepo

import (
	"context"
	"errors"

	"procurement/internal/adapters/out/postgres/pgerr"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/quote"
	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuoteRepository implements ports.QuoteRepository using GORM.
type GormQuoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormQuoteRepository(db *gorm.DB, tracker aggregateTracker) *GormQuoteRepository {
	return &GormQuoteRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormQuoteRepository) Get(ctx context.Context, orderID, supplierID kernel.UUID) (*quote.Quote, error) {
	if err := errors.Join(orderID.Validate(), supplierID.Validate()); err != nil {
		return nil, err
	}

	var head QuoteDTO
	err := r.db.WithContext(ctx).
		First(&head, "order_id = ? AND supplier_id = ?", orderID.Bytes(), supplierID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", supplierID)
		}
		return nil, err
	}

	var current RevisionDTO
	err = r.db.WithContext(ctx).
		First(&current, "order_id = ? AND supplier_id = ? AND revision = ?", head.OrderID, head.SupplierID, head.Revision).Error
	if err != nil {
		return nil, err
	}
	return toDomain(head, current)
}

// Save inserts a quote at version 0 and otherwise updates it when the stored version still
// matches. Either way the current revision is appended to quote_revisions in the same
// transaction; a revision number that already exists means another writer got there first.
func (r *GormQuoteRepository) Save(ctx context.Context, aggregate *quote.Quote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	read := aggregate.Version()
	head, rev := fromDomain(aggregate)
	head.Version = read + 1
	db := r.db.WithContext(ctx)

	if read == 0 {
		if err := db.Create(&head).Error; err != nil {
			return r.conflictOr(aggregate, err)
		}
	} else {
		result := db.Model(&QuoteDTO{}).
			Where("order_id = ? AND supplier_id = ? AND version = ?", head.OrderID, head.SupplierID, read).
			Updates(map[string]any{"revision": head.Revision, "version": head.Version})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewConcurrentModificationError("quote", aggregate.SupplierID(), nil)
		}
	}

	if err := db.Create(&rev).Error; err != nil {
		return r.conflictOr(aggregate, err)
	}

	aggregate.SetVersion(read + 1)
	r.tracker.TrackAggregate(aggregate.SupplierID(), aggregate)
	return nil
}

func (r *GormQuoteRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*quote.Quote, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var heads []QuoteDTO
	if err := r.db.WithContext(ctx).Find(&heads, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}
	if len(heads) == 0 {
		return []*quote.Quote{}, nil
	}

	var currents []RevisionDTO
	err := r.db.WithContext(ctx).
		Joins("JOIN quotes q ON q.order_id = quote_revisions.order_id AND q.supplier_id = quote_revisions.supplier_id AND q.revision = quote_revisions.revision").
		Where("quote_revisions.order_id = ?", orderID.Bytes()).
		Find(&currents).Error
	if err != nil {
		return nil, err
	}
	bySupplier := make(map[uuid.UUID]RevisionDTO, len(currents))
	for _, c := range currents {
		bySupplier[c.SupplierID] = c
	}

	out := make([]*quote.Quote, 0, len(heads))
	for _, head := range heads {
		current, ok := bySupplier[head.SupplierID]
		if !ok {
			return nil, errs.NewInvariantViolationError("quote %s/%s has no revision %d", head.OrderID, head.SupplierID, head.Revision)
		}
		q, err := toDomain(head, current)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *GormQuoteRepository) ListRevisions(ctx context.Context, orderID, supplierID kernel.UUID) ([]quote.Revision, error) {
	if err := errors.Join(orderID.Validate(), supplierID.Validate()); err != nil {
		return nil, err
	}

	var dtos []RevisionDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND supplier_id = ?", orderID.Bytes(), supplierID.Bytes()).
		Order("revision").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, errs.NewObjectNotFoundError("quote", supplierID)
	}

	revisions := make([]quote.Revision, 0, len(dtos))
	for _, dto := range dtos {
		rev, err := revisionToDomain(dto)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	return revisions, nil
}

func (r *GormQuoteRepository) conflictOr(aggregate *quote.Quote, err error) error {
	if pgerr.IsUniqueViolation(err) {
		return errs.NewConcurrentModificationError("quote", aggregate.SupplierID(), err)
	}
	return err
}
