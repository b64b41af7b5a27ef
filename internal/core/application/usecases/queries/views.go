// Package queries contains read operations for retrieving system state.
// Queries read through the store ports without opening a transaction and return read models
// that the HTTP adapter serializes as they are.
package queries

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/quote"
)

type LineItemView struct {
	ID             order.LineItemID `json:"id"`
	Quantity       int              `json:"quantity"`
	Description    string           `json:"description"`
	PreferredBrand string           `json:"preferredBrand,omitempty"`
}

type CommentView struct {
	ID         kernel.UUID `json:"id"`
	AuthorID   kernel.UUID `json:"authorId"`
	AuthorRole order.Role  `json:"authorRole"`
	AuthorName string      `json:"authorName,omitempty"`
	Text       string      `json:"text"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type DispatchView struct {
	DriverName     string    `json:"driverName"`
	VehicleID      string    `json:"vehicleId"`
	TrackingNumber string    `json:"trackingNumber"`
	DispatchedAt   time.Time `json:"dispatchedAt"`
}

type AwardView struct {
	LineItemID   order.LineItemID `json:"lineItemId"`
	SupplierID   kernel.UUID      `json:"supplierId"`
	SupplierName string           `json:"supplierName"`
	UnitPrice    kernel.Money     `json:"unitPrice"`
}

// OrderView is the full read model of an order.
type OrderView struct {
	ID                    kernel.UUID    `json:"id"`
	BuyerID               kernel.UUID    `json:"buyerId"`
	BuyerName             string         `json:"buyerName"`
	Status                order.Status   `json:"status"`
	Items                 []LineItemView `json:"items"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
	ExpirationDate        time.Time      `json:"expirationDate"`
	RequestedDeliveryDate *time.Time     `json:"requestedDeliveryDate,omitempty"`
	Terms                 string         `json:"terms,omitempty"`
	Comments              []CommentView  `json:"comments"`
	Dispatch              *DispatchView  `json:"dispatch,omitempty"`
	Awards                []AwardView    `json:"awards,omitempty"`
	RejectionReason       string         `json:"rejectionReason,omitempty"`
	Version               int64          `json:"version"`
}

// NewOrderView copies an order aggregate into its read model.
func NewOrderView(o *order.Order) OrderView {
	v := OrderView{
		ID:                    o.ID(),
		BuyerID:               o.BuyerID(),
		BuyerName:             o.BuyerName(),
		Status:                o.Status(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		ExpirationDate:        o.ExpirationDate(),
		RequestedDeliveryDate: o.RequestedDeliveryDate(),
		Terms:                 o.Terms(),
		RejectionReason:       o.RejectionReason(),
		Version:               o.Version(),
		Items:                 make([]LineItemView, 0, len(o.Items())),
		Comments:              make([]CommentView, 0, len(o.Comments())),
	}
	for _, item := range o.Items() {
		v.Items = append(v.Items, LineItemView{
			ID:             item.ID(),
			Quantity:       item.Quantity(),
			Description:    item.Description(),
			PreferredBrand: item.PreferredBrand(),
		})
	}
	for _, c := range o.Comments() {
		v.Comments = append(v.Comments, CommentView{
			ID:         c.ID(),
			AuthorID:   c.Author().ID(),
			AuthorRole: c.Author().Role(),
			AuthorName: c.AuthorName(),
			Text:       c.Text(),
			CreatedAt:  c.CreatedAt(),
		})
	}
	if d, ok := o.DispatchInfo(); ok {
		v.Dispatch = &DispatchView{
			DriverName:     d.DriverName(),
			VehicleID:      d.VehicleID(),
			TrackingNumber: d.TrackingNumber(),
			DispatchedAt:   d.DispatchedAt(),
		}
	}
	for _, a := range o.Awards() {
		v.Awards = append(v.Awards, AwardView{
			LineItemID:   a.LineItemID(),
			SupplierID:   a.SupplierID(),
			SupplierName: a.SupplierName(),
			UnitPrice:    a.UnitPrice(),
		})
	}
	return v
}

// OfferView is one priced line. UnitPrice is null when the supplier did not quote the line.
type OfferView struct {
	LineItemID   order.LineItemID `json:"lineItemId"`
	UnitPrice    *kernel.Money    `json:"unitPrice"`
	OfferedBrand string           `json:"offeredBrand,omitempty"`
	Note         string           `json:"note,omitempty"`
}

// RevisionView is one submitted version of a supplier quote.
type RevisionView struct {
	Revision     int         `json:"revision"`
	SupplierName string      `json:"supplierName"`
	PaymentTerm  string      `json:"paymentTerm"`
	DeliveryDays int         `json:"deliveryDays"`
	ValidUntil   time.Time   `json:"validUntil"`
	SubmittedAt  time.Time   `json:"submittedAt"`
	Offers       []OfferView `json:"offers"`
}

func newRevisionView(r quote.Revision) RevisionView {
	v := RevisionView{
		Revision:     r.Number(),
		SupplierName: r.SupplierName(),
		PaymentTerm:  r.Terms().PaymentTerm(),
		DeliveryDays: r.Terms().DeliveryDays(),
		ValidUntil:   r.Terms().ValidUntil(),
		SubmittedAt:  r.SubmittedAt(),
		Offers:       make([]OfferView, 0, len(r.Offers())),
	}
	for _, offer := range r.Offers() {
		ov := OfferView{
			LineItemID:   offer.LineItemID(),
			OfferedBrand: offer.OfferedBrand(),
			Note:         offer.Note(),
		}
		if offer.IsQuoted() {
			price := offer.UnitPrice()
			ov.UnitPrice = &price
		}
		v.Offers = append(v.Offers, ov)
	}
	return v
}

// QuoteView is the current revision of a quote plus its identity.
type QuoteView struct {
	OrderID          kernel.UUID `json:"orderId"`
	SupplierID       kernel.UUID `json:"supplierId"`
	FirstSubmittedAt time.Time   `json:"firstSubmittedAt"`
	RevisionView
}

// NewQuoteView copies a quote aggregate into its read model.
func NewQuoteView(q *quote.Quote) QuoteView {
	return QuoteView{
		OrderID:          q.OrderID(),
		SupplierID:       q.SupplierID(),
		FirstSubmittedAt: q.FirstSubmittedAt(),
		RevisionView:     newRevisionView(q.CurrentRevision()),
	}
}
