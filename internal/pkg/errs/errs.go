package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of them so callers can
// classify failures with errors.Is.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionIsInvalid  = errors.New("version is invalid")

	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrAlreadyTerminal        = errors.New("order is already in a terminal status")
	ErrIncompleteAllocation   = errors.New("allocation is incomplete")
	ErrInvalidOverride        = errors.New("allocation override is invalid")
	ErrLineItemMismatch       = errors.New("line offers do not match order line items")
	ErrOrderNotOpen           = errors.New("order is not open for quotes")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInvariantViolation     = errors.New("invariant violation")
)

// ObjectNotFoundError reports a missing aggregate or record.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed input value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitizeValue(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports an unusable aggregate version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// DomainError is a rule violation of the order lifecycle or the quote ledger.
// Kind is one of the lifecycle sentinels (ErrInvalidTransition, ErrOrderNotOpen, ...).
type DomainError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, sanitize(e.Message))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func newDomainError(kind error, format string, args ...any) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidTransitionError reports a status change that is not an edge of the state machine.
func NewInvalidTransitionError(from, to fmt.Stringer) *DomainError {
	return newDomainError(ErrInvalidTransition, "%s -> %s", from, to)
}

func NewAlreadyTerminalError(status fmt.Stringer) *DomainError {
	return newDomainError(ErrAlreadyTerminal, "status is %s", status)
}

func NewIncompleteAllocationError(format string, args ...any) *DomainError {
	return newDomainError(ErrIncompleteAllocation, format, args...)
}

func NewInvalidOverrideError(format string, args ...any) *DomainError {
	return newDomainError(ErrInvalidOverride, format, args...)
}

func NewLineItemMismatchError(format string, args ...any) *DomainError {
	return newDomainError(ErrLineItemMismatch, format, args...)
}

func NewOrderNotOpenError(format string, args ...any) *DomainError {
	return newDomainError(ErrOrderNotOpen, format, args...)
}

// NewConcurrentModificationError reports a compare-and-swap conflict on a stored record.
// Callers are expected to retry the whole read-validate-write operation.
func NewConcurrentModificationError(entity string, id any, cause error) *DomainError {
	return &DomainError{
		Kind:    ErrConcurrentModification,
		Message: fmt.Sprintf("%s %s was changed by another writer", entity, sanitize(id)),
		Cause:   cause,
	}
}

func NewInvariantViolationError(format string, args ...any) *DomainError {
	return newDomainError(ErrInvariantViolation, format, args...)
}

// IsValidation reports whether err is a malformed-input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrVersionIsInvalid)
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func sanitize(v any) string {
	return newlines.Replace(fmt.Sprintf("%s", v))
}

func sanitizeValue(v any) string {
	return newlines.Replace(fmt.Sprintf("%v", v))
}
