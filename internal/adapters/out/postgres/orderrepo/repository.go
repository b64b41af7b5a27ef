package orderrepo

import (
	"context"
	"errors"

	"procurement/internal/adapters/out/postgres/pgerr"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order with version 1. A duplicate id is a concurrent modification.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewConcurrentModificationError("order", aggregate.ID(), err)
		}
		return err
	}

	aggregate.SetVersion(1)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column when the stored version still equals aggregate.Version().
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	read := aggregate.Version()
	dto := fromDomain(aggregate)
	dto.Version = read + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, read).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, dto.ID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("order", aggregate.ID())
		}
		return errs.NewConcurrentModificationError("order", aggregate.ID(), nil)
	}

	aggregate.SetVersion(read + 1)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns matching orders, newest first.
func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).Model(&OrderDTO{})
	if len(filter.Statuses) > 0 {
		statuses := make([]int, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, int(s))
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.BuyerID != nil {
		query = query.Where("buyer_id = ?", filter.BuyerID.Bytes())
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
