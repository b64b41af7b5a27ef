// Package quote provides the supplier side of the procurement domain: a Quote is one
// supplier's priced answer to an order, revised in place while bidding is open.
//
// Only the current revision takes part in adjudication; earlier revisions are kept
// as an append-only history. A unit price of zero means the line was not quoted.
package quote
