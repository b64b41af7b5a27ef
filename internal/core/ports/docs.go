// Package ports defines the contracts between the procurement core and its adapters:
// order and quote stores, the unit of work that spans them, and the outbound
// notification, tracking number and comparison cache services.
package ports
