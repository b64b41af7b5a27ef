// Package cache provides ComparisonCache implementations: a Redis-backed store for
// deployments with more than one replica and a no-op store for everything else.
package cache

import (
	"context"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DriverNoop  = "noop"
	DriverRedis = "redis"
)

// Config selects and tunes the cache backend.
type Config struct {
	Driver   string
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New builds the configured cache. The returned close function releases the backend
// connection and is never nil.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (ports.ComparisonCache, func() error, error) {
	switch cfg.Driver {
	case "", DriverNoop:
		logger.Info("comparison cache disabled; using noop store")
		return Noop{}, func() error { return nil }, nil
	case DriverRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info("redis comparison cache connected", zap.String("addr", cfg.Addr))
		return NewRedisComparisonCache(client, cfg.TTL, logger), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache driver: %s", cfg.Driver)
	}
}

// Noop never stores anything; every lookup is a miss.
type Noop struct{}

func (Noop) Get(context.Context, kernel.UUID, int64) (services.Comparison, bool) {
	return services.Comparison{}, false
}

func (Noop) Set(context.Context, kernel.UUID, int64, services.Comparison) {}
