package queries_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"procurement/internal/adapters/out/memory"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/quote"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"

	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	buyerID   = kernel.MustUUIDFromString("22222222-2222-4222-8222-222222222222")
	supplierX = kernel.MustUUIDFromString("aaaaaaaa-0000-4000-8000-000000000001")
	supplierY = kernel.MustUUIDFromString("bbbbbbbb-0000-4000-8000-000000000002")
	admin     = order.MustActor(kernel.MustUUIDFromString("33333333-3333-4333-8333-333333333333"), order.RoleAdmin)
)

type nopEmitter struct{}

func (nopEmitter) Emit(context.Context, kernel.DomainEvent) {}

// countingCache is an in-process ComparisonCache that records traffic.
type countingCache struct {
	mu      sync.Mutex
	entries map[string]services.Comparison
	gets    int
	hits    int
	sets    int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string]services.Comparison{}}
}

func cacheKey(id kernel.UUID, version int64) string {
	return fmt.Sprintf("%s/%d", id, version)
}

func (c *countingCache) Get(_ context.Context, orderID kernel.UUID, version int64) (services.Comparison, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	cmp, ok := c.entries[cacheKey(orderID, version)]
	if ok {
		c.hits++
	}
	return cmp, ok
}

func (c *countingCache) Set(_ context.Context, orderID kernel.UUID, version int64, cmp services.Comparison) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[cacheKey(orderID, version)] = cmp
}

type world struct {
	t     *testing.T
	store *memory.Store
}

func newWorld(t *testing.T) *world {
	return &world{t: t, store: memory.NewStore(nopEmitter{})}
}

func (w *world) tx(fn func(uow ports.UnitOfWork) error) {
	w.t.Helper()
	uow := w.store.Create()
	require.NoError(w.t, uow.Begin(context.Background()))
	require.NoError(w.t, fn(uow))
	require.NoError(w.t, uow.Commit(context.Background()))
}

// openOrder stores an IN_REVIEW order with two lines: 10 x paper, 5 x toner.
func (w *world) openOrder(createdAt time.Time) *order.Order {
	w.t.Helper()
	buyer := order.MustActor(buyerID, order.RoleBuyer)
	o, err := order.NewOrder(kernel.NewUUID(), buyer, "City Hospital", []order.LineItemDraft{
		{Quantity: 10, Description: "A4 paper"},
		{Quantity: 5, Description: "Toner", PreferredBrand: "HP"},
	}, createdAt.Add(48*time.Hour), nil, "net 30", createdAt)
	require.NoError(w.t, err)
	w.tx(func(uow ports.UnitOfWork) error { return uow.OrderRepository().Add(context.Background(), o) })

	require.NoError(w.t, o.Publish(admin, createdAt))
	w.tx(func(uow ports.UnitOfWork) error { return uow.OrderRepository().Update(context.Background(), o) })
	return o
}

// submit stores or revises a quote and bumps the order, like the SubmitQuote command.
func (w *world) submit(orderID, supplierID kernel.UUID, name string, at time.Time, prices ...string) {
	w.t.Helper()
	w.tx(func(uow ports.UnitOfWork) error {
		ctx := context.Background()
		o, err := uow.OrderRepository().Get(ctx, orderID)
		require.NoError(w.t, err)
		require.NoError(w.t, o.AcceptQuote(at))

		offers := make([]quote.LineOffer, 0, len(prices))
		for i, p := range prices {
			lo, err := quote.NewLineOffer(order.LineItemID(i+1), kernel.MustMoney(p), "", "")
			require.NoError(w.t, err)
			offers = append(offers, lo)
		}
		terms, err := quote.NewTerms("NET30", 5, at.Add(24*time.Hour))
		require.NoError(w.t, err)

		q, err := uow.QuoteRepository().Get(ctx, orderID, supplierID)
		if err != nil {
			q, err = quote.NewQuote(o, supplierID, name, offers, terms, at)
		} else {
			err = q.Revise(o, name, offers, terms, at)
		}
		require.NoError(w.t, err)
		require.NoError(w.t, uow.QuoteRepository().Save(ctx, q))
		return uow.OrderRepository().Update(ctx, o)
	})
}
