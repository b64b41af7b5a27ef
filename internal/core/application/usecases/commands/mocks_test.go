package commands_test

import (
	"context"
	"testing"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/quote"
	"procurement/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type fixedTracking string

func (f fixedTracking) Next() string { return string(f) }

var fastRetry = commands.WithRetryPolicy(commands.RetryPolicy{
	MaxRetries:      3,
	InitialInterval: time.Millisecond,
	MaxInterval:     time.Millisecond,
})

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockQuoteRepository struct{ mock.Mock }

func (m *MockQuoteRepository) Get(ctx context.Context, orderID, supplierID kernel.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, orderID, supplierID)
	q, _ := args.Get(0).(*quote.Quote)
	return q, args.Error(1)
}

func (m *MockQuoteRepository) Save(ctx context.Context, q *quote.Quote) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuoteRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*quote.Quote, error) {
	args := m.Called(ctx, orderID)
	quotes, _ := args.Get(0).([]*quote.Quote)
	return quotes, args.Error(1)
}

func (m *MockQuoteRepository) ListRevisions(ctx context.Context, orderID, supplierID kernel.UUID) ([]quote.Revision, error) {
	args := m.Called(ctx, orderID, supplierID)
	revisions, _ := args.Get(0).([]quote.Revision)
	return revisions, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) QuoteRepository() ports.QuoteRepository {
	return m.Called().Get(0).(ports.QuoteRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	return m.Called().Get(0).(ports.UnitOfWork)
}

// fixture bundles the mocks of one handler test.
type fixture struct {
	orders  *MockOrderRepository
	quotes  *MockQuoteRepository
	uow     *MockUoW
	factory *MockUoWFactory
}

func newFixture() *fixture {
	f := &fixture{
		orders:  new(MockOrderRepository),
		quotes:  new(MockQuoteRepository),
		uow:     new(MockUoW),
		factory: new(MockUoWFactory),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("QuoteRepository").Return(f.quotes).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return f
}

func (f *fixture) assert(t *testing.T) {
	t.Helper()
	f.orders.AssertExpectations(t)
	f.quotes.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

var (
	orderID   = kernel.MustUUIDFromString("11111111-1111-4111-8111-111111111111")
	buyerID   = kernel.MustUUIDFromString("22222222-2222-4222-8222-222222222222")
	adminID   = kernel.MustUUIDFromString("33333333-3333-4333-8333-333333333333")
	supplierX = kernel.MustUUIDFromString("aaaaaaaa-0000-4000-8000-000000000001")
	supplierY = kernel.MustUUIDFromString("bbbbbbbb-0000-4000-8000-000000000002")

	buyer = order.MustActor(buyerID, order.RoleBuyer)
	admin = order.MustActor(adminID, order.RoleAdmin)
)

func drafts() []order.LineItemDraft {
	return []order.LineItemDraft{
		{Quantity: 10, Description: "A4 paper"},
		{Quantity: 5, Description: "Toner"},
	}
}

// orderIn builds an order and walks it to status along the happy path.
func orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(orderID, buyer, "City Hospital", drafts(), now.Add(48*time.Hour), nil, "", now.Add(-time.Hour))
	require.NoError(t, err)
	o.SetVersion(1)

	if status == order.PendingApproval {
		return o
	}
	require.NoError(t, o.Publish(admin, now))
	if status == order.InReview {
		o.ClearDomainEvents()
		return o
	}
	if status == order.Rejected {
		require.NoError(t, o.Reject("", admin, now))
		o.ClearDomainEvents()
		return o
	}
	awards := make([]order.Award, 0, 2)
	for _, item := range o.Items() {
		a, err := order.NewAward(item.ID(), supplierX, "Acme Supplies", kernel.MustMoney("10.00"))
		require.NoError(t, err)
		awards = append(awards, a)
	}
	require.NoError(t, o.Adjudicate(awards, admin, now))
	if status == order.InPreparation {
		o.ClearDomainEvents()
		return o
	}
	info, err := order.NewDispatchInfo("Ivan", "VAN-1", "TRK-ABCDEF12", now)
	require.NoError(t, err)
	require.NoError(t, o.Dispatch(info, order.MustActor(supplierX, order.RoleSupplier), now))
	if status == order.OnItsWay {
		o.ClearDomainEvents()
		return o
	}
	require.NoError(t, o.ConfirmDelivery(buyer, now))
	o.ClearDomainEvents()
	return o
}

func quoteLines(prices ...string) []commands.QuoteLine {
	lines := make([]commands.QuoteLine, 0, len(prices))
	for i, p := range prices {
		lines = append(lines, commands.QuoteLine{
			LineItemID: order.LineItemID(i + 1),
			UnitPrice:  kernel.MustMoney(p),
		})
	}
	return lines
}

func submittedQuote(t *testing.T, o *order.Order, supplierID kernel.UUID, name string, prices ...string) *quote.Quote {
	t.Helper()
	offers := make([]quote.LineOffer, 0, len(prices))
	for i, p := range prices {
		offer, err := quote.NewLineOffer(order.LineItemID(i+1), kernel.MustMoney(p), "", "")
		require.NoError(t, err)
		offers = append(offers, offer)
	}
	terms, err := quote.NewTerms("NET30", 5, now.Add(24*time.Hour))
	require.NoError(t, err)
	q, err := quote.NewQuote(o, supplierID, name, offers, terms, now)
	require.NoError(t, err)
	q.SetVersion(1)
	q.ClearDomainEvents()
	return q
}
