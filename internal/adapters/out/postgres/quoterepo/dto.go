// Package quoterepo persists supplier quotes. The quotes table holds one row per
// (order, supplier) pointing at its current revision; quote_revisions is append-only.
package quoterepo

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/quote"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuoteDTO struct {
	OrderID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Revision         int
	FirstSubmittedAt time.Time
	Version          int64
}

func (QuoteDTO) TableName() string {
	return "quotes"
}

type RevisionDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Revision     int       `gorm:"primaryKey;autoIncrement:false"`
	SupplierName string
	PaymentTerm  string
	DeliveryDays int
	ValidUntil   time.Time
	SubmittedAt  time.Time
	Offers       datatypes.JSONSlice[OfferDTO] `gorm:"type:jsonb"`
}

func (RevisionDTO) TableName() string {
	return "quote_revisions"
}

// OfferDTO keeps the unit price as a decimal string; "0" marks a line that was not quoted.
type OfferDTO struct {
	LineItemID   int    `json:"lineItemId"`
	UnitPrice    string `json:"unitPrice"`
	OfferedBrand string `json:"offeredBrand,omitempty"`
	Note         string `json:"note,omitempty"`
}

func fromDomain(q *quote.Quote) (QuoteDTO, RevisionDTO) {
	s := q.Snapshot()
	head := QuoteDTO{
		OrderID:          s.OrderID.Bytes(),
		SupplierID:       s.SupplierID.Bytes(),
		Revision:         s.Current.Number(),
		FirstSubmittedAt: s.FirstSubmittedAt,
		Version:          s.Version,
	}
	return head, revisionFromDomain(s.OrderID, s.SupplierID, s.Current)
}

func revisionFromDomain(orderID, supplierID kernel.UUID, r quote.Revision) RevisionDTO {
	dto := RevisionDTO{
		OrderID:      orderID.Bytes(),
		SupplierID:   supplierID.Bytes(),
		Revision:     r.Number(),
		SupplierName: r.SupplierName(),
		PaymentTerm:  r.Terms().PaymentTerm(),
		DeliveryDays: r.Terms().DeliveryDays(),
		ValidUntil:   r.Terms().ValidUntil(),
		SubmittedAt:  r.SubmittedAt(),
		Offers:       make(datatypes.JSONSlice[OfferDTO], 0, len(r.Offers())),
	}
	for _, o := range r.Offers() {
		dto.Offers = append(dto.Offers, OfferDTO{
			LineItemID:   int(o.LineItemID()),
			UnitPrice:    o.UnitPrice().Decimal().String(),
			OfferedBrand: o.OfferedBrand(),
			Note:         o.Note(),
		})
	}
	return dto
}

func revisionToDomain(dto RevisionDTO) (quote.Revision, error) {
	offers := make([]quote.LineOffer, 0, len(dto.Offers))
	for _, o := range dto.Offers {
		price, err := kernel.MoneyFromString(o.UnitPrice)
		if err != nil {
			return quote.Revision{}, err
		}
		offer, err := quote.NewLineOffer(order.LineItemID(o.LineItemID), price, o.OfferedBrand, o.Note)
		if err != nil {
			return quote.Revision{}, err
		}
		offers = append(offers, offer)
	}
	terms, err := quote.NewTerms(dto.PaymentTerm, dto.DeliveryDays, dto.ValidUntil)
	if err != nil {
		return quote.Revision{}, err
	}
	return quote.RestoreRevision(dto.Revision, dto.SupplierName, offers, terms, dto.SubmittedAt)
}

func toDomain(head QuoteDTO, current RevisionDTO) (*quote.Quote, error) {
	orderID, err := kernel.UUIDFromBytes(head.OrderID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(head.SupplierID[:])
	if err != nil {
		return nil, err
	}
	rev, err := revisionToDomain(current)
	if err != nil {
		return nil, err
	}
	return quote.RestoreQuote(quote.Snapshot{
		OrderID:          orderID,
		SupplierID:       supplierID,
		Current:          rev,
		FirstSubmittedAt: head.FirstSubmittedAt,
		Version:          head.Version,
	})
}
