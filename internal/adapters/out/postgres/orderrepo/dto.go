// Package orderrepo persists order aggregates in the orders table. Line items, comments and
// awards are JSONB columns; dispatch details are nullable columns embedded in the row.
package orderrepo

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID               uuid.UUID `gorm:"type:uuid;index"`
	BuyerName             string
	Status                int                              `gorm:"type:smallint;index"`
	Items                 datatypes.JSONSlice[LineItemDTO] `gorm:"type:jsonb"`
	Comments              datatypes.JSONSlice[CommentDTO]  `gorm:"type:jsonb"`
	Awards                datatypes.JSONSlice[AwardDTO]    `gorm:"type:jsonb"`
	Dispatch              DispatchDTO                      `gorm:"embedded;embeddedPrefix:dispatch_"`
	Terms                 string
	RejectionReason       string
	ExpirationDate        time.Time
	RequestedDeliveryDate *time.Time
	CreatedAt             time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime:false"`
	Version               int64
}

func (OrderDTO) TableName() string {
	return "orders"
}

type LineItemDTO struct {
	ID             int    `json:"id"`
	Quantity       int    `json:"quantity"`
	Description    string `json:"description"`
	PreferredBrand string `json:"preferredBrand,omitempty"`
}

type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorRole string    `json:"authorRole"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AwardDTO struct {
	LineItemID   int       `json:"lineItemId"`
	SupplierID   uuid.UUID `json:"supplierId"`
	SupplierName string    `json:"supplierName"`
	UnitPrice    string    `json:"unitPrice"`
}

// DispatchDTO is all-null until the order is dispatched.
type DispatchDTO struct {
	DriverName     *string
	VehicleID      *string
	TrackingNumber *string
	DispatchedAt   *time.Time
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	dto := OrderDTO{
		ID:                    s.ID.Bytes(),
		BuyerID:               s.BuyerID.Bytes(),
		BuyerName:             s.BuyerName,
		Status:                int(s.Status),
		Items:                 make(datatypes.JSONSlice[LineItemDTO], 0, len(s.Items)),
		Comments:              make(datatypes.JSONSlice[CommentDTO], 0, len(s.Comments)),
		Awards:                make(datatypes.JSONSlice[AwardDTO], 0, len(s.Awards)),
		Terms:                 s.Terms,
		RejectionReason:       s.RejectionReason,
		ExpirationDate:        s.ExpirationDate,
		RequestedDeliveryDate: s.RequestedDeliveryDate,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
		Version:               s.Version,
	}
	for _, item := range s.Items {
		dto.Items = append(dto.Items, LineItemDTO{
			ID:             int(item.ID()),
			Quantity:       item.Quantity(),
			Description:    item.Description(),
			PreferredBrand: item.PreferredBrand(),
		})
	}
	for _, c := range s.Comments {
		dto.Comments = append(dto.Comments, CommentDTO{
			ID:         c.ID().Bytes(),
			AuthorID:   c.Author().ID().Bytes(),
			AuthorRole: string(c.Author().Role()),
			AuthorName: c.AuthorName(),
			Text:       c.Text(),
			CreatedAt:  c.CreatedAt(),
		})
	}
	for _, a := range s.Awards {
		dto.Awards = append(dto.Awards, AwardDTO{
			LineItemID:   int(a.LineItemID()),
			SupplierID:   a.SupplierID().Bytes(),
			SupplierName: a.SupplierName(),
			UnitPrice:    a.UnitPrice().Decimal().String(),
		})
	}
	if s.Dispatch != nil {
		d := *s.Dispatch
		driver, vehicle, tracking, at := d.DriverName(), d.VehicleID(), d.TrackingNumber(), d.DispatchedAt()
		dto.Dispatch = DispatchDTO{
			DriverName:     &driver,
			VehicleID:      &vehicle,
			TrackingNumber: &tracking,
			DispatchedAt:   &at,
		}
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	s := order.Snapshot{
		ID:                    id,
		BuyerID:               buyerID,
		BuyerName:             dto.BuyerName,
		Status:                order.Status(dto.Status),
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
		ExpirationDate:        dto.ExpirationDate,
		RequestedDeliveryDate: dto.RequestedDeliveryDate,
		Terms:                 dto.Terms,
		RejectionReason:       dto.RejectionReason,
		Version:               dto.Version,
	}

	for _, item := range dto.Items {
		li, err := order.NewLineItem(order.LineItemID(item.ID), item.Quantity, item.Description, item.PreferredBrand)
		if err != nil {
			return nil, err
		}
		s.Items = append(s.Items, li)
	}
	for _, c := range dto.Comments {
		comment, err := commentToDomain(c)
		if err != nil {
			return nil, err
		}
		s.Comments = append(s.Comments, comment)
	}
	for _, a := range dto.Awards {
		award, err := awardToDomain(a)
		if err != nil {
			return nil, err
		}
		s.Awards = append(s.Awards, award)
	}
	if d := dto.Dispatch; d.TrackingNumber != nil {
		if d.DriverName == nil || d.VehicleID == nil || d.DispatchedAt == nil {
			return nil, errors.New("dispatch columns are partially set")
		}
		info, err := order.NewDispatchInfo(*d.DriverName, *d.VehicleID, *d.TrackingNumber, *d.DispatchedAt)
		if err != nil {
			return nil, err
		}
		s.Dispatch = &info
	}

	return order.RestoreOrder(s)
}

func commentToDomain(c CommentDTO) (order.Comment, error) {
	id, err := kernel.UUIDFromBytes(c.ID[:])
	if err != nil {
		return order.Comment{}, err
	}
	authorID, err := kernel.UUIDFromBytes(c.AuthorID[:])
	if err != nil {
		return order.Comment{}, err
	}
	role, err := order.RoleFromString(c.AuthorRole)
	if err != nil {
		return order.Comment{}, err
	}
	author, err := order.NewActor(authorID, role)
	if err != nil {
		return order.Comment{}, err
	}
	return order.NewComment(id, author, c.AuthorName, c.Text, c.CreatedAt)
}

func awardToDomain(a AwardDTO) (order.Award, error) {
	supplierID, err := kernel.UUIDFromBytes(a.SupplierID[:])
	if err != nil {
		return order.Award{}, err
	}
	price, err := kernel.MoneyFromString(a.UnitPrice)
	if err != nil {
		return order.Award{}, err
	}
	return order.NewAward(order.LineItemID(a.LineItemID), supplierID, a.SupplierName, price)
}
