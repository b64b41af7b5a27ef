// Package order provides the Order aggregate of the procurement domain: a buyer's purchase
// request, its lifecycle status and everything committed along the way.
//
// The package includes:
//   - Order: the aggregate root with line items, comments, awards and dispatch details
//   - Status: the fixed lifecycle state machine
//   - Allocation and Award: the per-line choice of winning suppliers
//   - Actor: the explicit identity and role behind every operation
//   - Events recorded on transitions, comments and adjudication
//
// Key business rules:
//   - Status flow is PendingApproval -> InReview -> InPreparation -> OnItsWay -> Delivered
//   - Rejected is reachable from PendingApproval, InReview and InPreparation
//   - Delivered and Rejected are terminal; terminal orders only accept comments
//   - Quotes are accepted only while InReview and before the expiration date
//   - Adjudication requires exactly one award with a positive price per line item
package order
