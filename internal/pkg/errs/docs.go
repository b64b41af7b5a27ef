// Package errs provides standardized error types for the procurement service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors:
//   - Input errors: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     VersionIsInvalidError and ObjectNotFoundError
//   - Lifecycle errors (DomainError): invalid transitions, terminal orders, incomplete
//     allocations, invalid overrides, line item mismatches, closed bidding, concurrent
//     modification and invariant violations
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired, ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is classifies the failure
//
// Every error in this package is recoverable: callers surface it to the acting user and
// allow a retry. ErrInvariantViolation is the one exception and signals a programming bug.
package errs
