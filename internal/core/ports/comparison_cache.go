package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/services"
)

// ComparisonCache keeps computed quote comparisons keyed by order id and order version.
// Every quote submission bumps the order version, so stale entries are never read.
// Cache errors are not fatal to callers: a miss is always a valid answer.
type ComparisonCache interface {
	Get(ctx context.Context, orderID kernel.UUID, version int64) (services.Comparison, bool)
	Set(ctx context.Context, orderID kernel.UUID, version int64, comparison services.Comparison)
}
