// Package kernel provides the shared primitives of the procurement domain model.
//
// The package includes:
//   - UUID: identifier value object for orders, buyers, suppliers and events
//   - Money: exact decimal currency amount used for every price and total
//   - Clock: source of the current time, injected so lifecycle rules are testable
//   - DomainEvent: the contract of events recorded by aggregates and emitted after commit
//
// Primitives are immutable and safe for concurrent use.
package kernel
