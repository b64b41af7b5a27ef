package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"procurement/internal/adapters/out/cache"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

var (
	orderID    = kernel.MustUUIDFromString("11111111-1111-4111-8111-111111111111")
	supplierID = kernel.MustUUIDFromString("aaaaaaaa-0000-4000-8000-000000000001")
)

func comparison() services.Comparison {
	price := kernel.MustMoney("12.50")
	return services.Comparison{
		OrderID: orderID,
		Suppliers: []services.SupplierColumn{{
			SupplierID:   supplierID,
			SupplierName: "Acme Supplies",
			PaymentTerm:  "NET30",
			DeliveryDays: 5,
			ValidUntil:   time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
			SubmittedAt:  time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
			Revision:     1,
			QuotedLines:  1,
			QuotedTotal:  kernel.MustMoney("125.00"),
		}},
		Lines: []services.LineComparison{{
			LineItemID:     1,
			Description:    "A4 paper",
			Quantity:       10,
			Prices:         []*kernel.Money{&price},
			BestSupplierID: &supplierID,
		}},
		BestAllocation: order.NewAllocation().Assign(1, supplierID),
		BestTotals: services.Totals{
			PerSupplier: []services.SupplierTotal{{SupplierID: supplierID, SupplierName: "Acme Supplies", Total: kernel.MustMoney("125.00")}},
			GrandTotal:  kernel.MustMoney("125.00"),
		},
		Unassigned: []order.LineItemID{},
	}
}

func TestNew(t *testing.T) {
	t.Run("should fall back to noop store", func(t *testing.T) {
		c, closeFn, err := cache.New(context.Background(), cache.Config{}, zap.NewNop())

		require.NoError(t, err)
		assert.IsType(t, cache.Noop{}, c)
		assert.NoError(t, closeFn())
	})

	t.Run("should reject unknown driver", func(t *testing.T) {
		_, _, err := cache.New(context.Background(), cache.Config{Driver: "memcached"}, zap.NewNop())

		assert.ErrorContains(t, err, "unsupported cache driver")
	})
}

func TestNoop(t *testing.T) {
	c := cache.Noop{}
	c.Set(context.Background(), orderID, 3, comparison())

	_, ok := c.Get(context.Background(), orderID, 3)

	assert.False(t, ok)
}

func TestRedisComparisonCache_UnavailableServer(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	require.NoError(t, client.Close())
	c := cache.NewRedisComparisonCache(client, time.Minute, zap.NewNop())

	t.Run("should treat read failures as a miss", func(t *testing.T) {
		_, ok := c.Get(context.Background(), orderID, 1)

		assert.False(t, ok)
	})

	t.Run("should swallow write failures", func(t *testing.T) {
		assert.NotPanics(t, func() { c.Set(context.Background(), orderID, 1, comparison()) })
	})
}

type RedisIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
	cache     *cache.RedisComparisonCache
}

func (s *RedisIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	addr, err := container.Endpoint(ctx, "")
	s.Require().NoError(err)

	s.client = goredis.NewClient(&goredis.Options{Addr: addr})
	s.cache = cache.NewRedisComparisonCache(s.client, time.Minute, zap.NewNop())
}

func (s *RedisIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(context.Background()).Err())
}

func (s *RedisIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		s.Require().NoError(s.client.Close())
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RedisIntegrationTestSuite) TestRoundTrip() {
	ctx := context.Background()
	want := comparison()

	s.cache.Set(ctx, orderID, 4, want)
	got, ok := s.cache.Get(ctx, orderID, 4)

	s.Require().True(ok)
	wantJSON, err := json.Marshal(want)
	s.Require().NoError(err)
	gotJSON, err := json.Marshal(got)
	s.Require().NoError(err)
	s.JSONEq(string(wantJSON), string(gotJSON))
	s.True(got.BestAllocation.Equal(want.BestAllocation))
}

func (s *RedisIntegrationTestSuite) TestEntriesAreScopedByVersion() {
	ctx := context.Background()
	s.cache.Set(ctx, orderID, 4, comparison())

	_, ok := s.cache.Get(ctx, orderID, 5)

	s.False(ok)
}

func (s *RedisIntegrationTestSuite) TestEntriesExpire() {
	ctx := context.Background()
	s.cache.Set(ctx, orderID, 4, comparison())

	ttl, err := s.client.TTL(ctx, "comparison:"+orderID.String()+":4").Result()

	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *RedisIntegrationTestSuite) TestCorruptEntryIsAMiss() {
	ctx := context.Background()
	s.Require().NoError(s.client.Set(ctx, "comparison:"+orderID.String()+":9", "{not json", time.Minute).Err())

	_, ok := s.cache.Get(ctx, orderID, 9)

	s.False(ok)
}

func TestRedisIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RedisIntegrationTestSuite))
}
