package http

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

type NewLineItem struct {
	Quantity       int    `json:"quantity"`
	Description    string `json:"description"`
	PreferredBrand string `json:"preferredBrand"`
}

type NewOrder struct {
	BuyerName             string        `json:"buyerName"`
	Items                 []NewLineItem `json:"items"`
	ExpirationDate        time.Time     `json:"expirationDate"`
	RequestedDeliveryDate *time.Time    `json:"requestedDeliveryDate"`
	Terms                 string        `json:"terms"`
}

type Rejection struct {
	Reason string `json:"reason"`
}

type Override struct {
	LineItemID order.LineItemID `json:"lineItemId"`
	SupplierID kernel.UUID      `json:"supplierId"`
}

type Overrides struct {
	Overrides []Override `json:"overrides"`
}

type Dispatch struct {
	DriverName string `json:"driverName"`
	VehicleID  string `json:"vehicleId"`
}

type Dispatched struct {
	TrackingNumber string `json:"trackingNumber"`
}

type NewComment struct {
	AuthorName string `json:"authorName"`
	Text       string `json:"text"`
}

type NewOffer struct {
	LineItemID   order.LineItemID `json:"lineItemId"`
	UnitPrice    kernel.Money     `json:"unitPrice"`
	OfferedBrand string           `json:"offeredBrand"`
	Note         string           `json:"note"`
}

type NewQuote struct {
	SupplierName string     `json:"supplierName"`
	PaymentTerm  string     `json:"paymentTerm"`
	DeliveryDays int        `json:"deliveryDays"`
	ValidUntil   time.Time  `json:"validUntil"`
	Offers       []NewOffer `json:"offers"`
}

type Submitted struct {
	Revision int `json:"revision"`
}

type Created struct {
	ID kernel.UUID `json:"id"`
}
