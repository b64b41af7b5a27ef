package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/services"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = 10 * time.Minute

// RedisComparisonCache stores comparisons as JSON under comparison:<order>:<version>.
// Redis failures are logged and reported as misses.
type RedisComparisonCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisComparisonCache(client goredis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisComparisonCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisComparisonCache{client: client, ttl: ttl, logger: logger}
}

func comparisonKey(orderID kernel.UUID, version int64) string {
	return fmt.Sprintf("comparison:%s:%d", orderID, version)
}

func (c *RedisComparisonCache) Get(ctx context.Context, orderID kernel.UUID, version int64) (services.Comparison, bool) {
	key := comparisonKey(orderID, version)
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return services.Comparison{}, false
	}
	if err != nil {
		c.logger.Warn("comparison cache read failed", zap.String("key", key), zap.Error(err))
		return services.Comparison{}, false
	}

	var cmp services.Comparison
	if err := json.Unmarshal(raw, &cmp); err != nil {
		c.logger.Warn("comparison cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return services.Comparison{}, false
	}
	return cmp, true
}

func (c *RedisComparisonCache) Set(ctx context.Context, orderID kernel.UUID, version int64, cmp services.Comparison) {
	key := comparisonKey(orderID, version)
	raw, err := json.Marshal(cmp)
	if err != nil {
		c.logger.Warn("comparison cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("comparison cache write failed", zap.String("key", key), zap.Error(err))
	}
}
