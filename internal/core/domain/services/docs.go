// Package services provides domain services of the procurement system: business logic that
// works across the Order aggregate and the Quotes submitted for it.
//
// The package includes:
//   - Adjudicator: the quote comparison and allocation engine
//
// Adjudicator is pure. It never performs I/O and never mutates its inputs, so command and
// query handlers can call it on freshly loaded aggregates inside or outside a unit of work.
package services
