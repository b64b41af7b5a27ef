package order

import (
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
)

// Status represents the lifecycle state of a procurement order.
// It implements a fixed state machine; there are no user-defined transitions.
//
// State transitions:
//
//	PendingApproval ──> InReview ──> InPreparation ──> OnItsWay ──> Delivered
//	       │               │               │
//	       └───────────────┴───────────────┴──────> Rejected
//
// Delivered and Rejected are terminal. A terminal order only accepts comments.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingApproval is the initial status of a buyer's request.
	PendingApproval

	// InReview means the request is published and suppliers may quote.
	InReview

	// InPreparation means quotes were adjudicated and awards are committed.
	InPreparation

	// OnItsWay means the goods were dispatched with a tracking reference.
	OnItsWay

	// Delivered is terminal: the buyer confirmed receipt.
	Delivered

	// Rejected is terminal: the request was cancelled before dispatch.
	Rejected
)

// getStatusStrings returns the wire codes of all statuses, Unknown included.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		PendingApproval: "PENDING_APPROVAL",
		InReview:        "IN_REVIEW",
		InPreparation:   "IN_PREPARATION",
		OnItsWay:        "ON_ITS_WAY",
		Delivered:       "DELIVERED",
		Rejected:        "REJECTED",
	}
}

// allowedTransitions is the complete edge list of the state machine.
func allowedTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing edges
	return map[Status][]Status{
		PendingApproval: {InReview, Rejected},
		InReview:        {InPreparation, Rejected},
		InPreparation:   {OnItsWay, Rejected},
		OnItsWay:        {Delivered},
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{PendingApproval, InReview, InPreparation, OnItsWay, Delivered, Rejected}
}

// StatusFromString parses a wire code such as "IN_REVIEW". Matching is case-insensitive.
func StatusFromString(s string) (Status, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == code {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is Unknown or out of range
func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire code of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// MarshalText renders the status as its wire code.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a wire code.
func (s *Status) UnmarshalText(data []byte) error {
	parsed, err := StatusFromString(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports whether no further status transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected
}

// CanTransitionTo reports whether to is a direct successor of s.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range allowedTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Publish transitions PendingApproval -> InReview.
func (s Status) Publish() (Status, error) {
	return s.moveTo(InReview)
}

// Adjudicate transitions InReview -> InPreparation.
func (s Status) Adjudicate() (Status, error) {
	return s.moveTo(InPreparation)
}

// Dispatch transitions InPreparation -> OnItsWay.
func (s Status) Dispatch() (Status, error) {
	return s.moveTo(OnItsWay)
}

// ConfirmDelivery transitions OnItsWay -> Delivered.
func (s Status) ConfirmDelivery() (Status, error) {
	return s.moveTo(Delivered)
}

// Reject transitions any non-terminal status except OnItsWay to Rejected.
//
// Returns:
//   - (Rejected, nil) from PendingApproval, InReview or InPreparation
//   - AlreadyTerminal error from Delivered or Rejected
//   - InvalidTransition error from OnItsWay
func (s Status) Reject() (Status, error) {
	if s.IsTerminal() {
		return Unknown, errs.NewAlreadyTerminalError(s)
	}
	return s.moveTo(Rejected)
}

func (s Status) moveTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewInvalidTransitionError(s, to)
	}
	return to, nil
}
