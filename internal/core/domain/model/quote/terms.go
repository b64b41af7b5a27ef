package quote

import (
	"errors"
	"strings"
	"time"

	"procurement/internal/pkg/errs"
)

// Terms are the commercial conditions attached to a quote.
type Terms struct {
	paymentTerm  string
	deliveryDays int
	validUntil   time.Time
}

// NewTerms validates the payment term code (e.g. CASH, NET30), a delivery lead time
// of at least one day and the date until which the offer holds.
func NewTerms(paymentTerm string, deliveryDays int, validUntil time.Time) (Terms, error) {
	paymentTerm = strings.ToUpper(strings.TrimSpace(paymentTerm))

	var termErr, daysErr, validErr error
	if paymentTerm == "" {
		termErr = errs.NewValueIsRequiredError("payment term")
	}
	if deliveryDays < 1 {
		daysErr = errs.NewValueIsOutOfRangeError("delivery days", deliveryDays, 1, "unbounded")
	}
	if validUntil.IsZero() {
		validErr = errs.NewValueIsRequiredError("valid until")
	}
	if err := errors.Join(termErr, daysErr, validErr); err != nil {
		return Terms{}, err
	}

	return Terms{paymentTerm: paymentTerm, deliveryDays: deliveryDays, validUntil: validUntil.UTC()}, nil
}

func (t Terms) PaymentTerm() string   { return t.paymentTerm }
func (t Terms) DeliveryDays() int     { return t.deliveryDays }
func (t Terms) ValidUntil() time.Time { return t.validUntil }
