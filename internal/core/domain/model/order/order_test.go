package order_test

import (
	"errors"
	"testing"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	buyer    = order.MustActor(kernel.NewUUID(), order.RoleBuyer)
	admin    = order.MustActor(kernel.NewUUID(), order.RoleAdmin)
	supplier = order.MustActor(kernel.NewUUID(), order.RoleSupplier)
)

func drafts() []order.LineItemDraft {
	return []order.LineItemDraft{
		{Quantity: 10, Description: "Nitrile gloves, box of 100", PreferredBrand: "SafeHands"},
		{Quantity: 5, Description: "Surgical masks"},
	}
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), buyer, "City Hospital", drafts(), now.Add(72*time.Hour), nil, "NET30", now)
	require.NoError(t, err)
	return o
}

func orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o := newOrder(t)
	steps := map[order.Status]func(){
		order.InReview: func() { require.NoError(t, o.Publish(admin, now)) },
		order.InPreparation: func() {
			require.NoError(t, o.Adjudicate(awardsFor(t, o), admin, now))
		},
		order.OnItsWay: func() {
			info, err := order.NewDispatchInfo("Ivan", "AB-123", "TRK-1A2B3C4D", now)
			require.NoError(t, err)
			require.NoError(t, o.Dispatch(info, supplier, now))
		},
		order.Delivered: func() { require.NoError(t, o.ConfirmDelivery(buyer, now)) },
	}
	path := []order.Status{order.InReview, order.InPreparation, order.OnItsWay, order.Delivered}
	if status == order.Rejected {
		require.NoError(t, o.Reject("budget cut", admin, now))
		o.ClearDomainEvents()
		return o
	}
	for _, s := range path {
		if o.Status() == status {
			break
		}
		steps[s]()
	}
	require.Equal(t, status, o.Status())
	o.ClearDomainEvents()
	return o
}

func awardsFor(t *testing.T, o *order.Order) []order.Award {
	t.Helper()
	awards := make([]order.Award, 0, len(o.Items()))
	for _, item := range o.Items() {
		a, err := order.NewAward(item.ID(), supplier.ID(), "Acme", kernel.MustMoney("10"))
		require.NoError(t, err)
		awards = append(awards, a)
	}
	return awards
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in pending approval", func(t *testing.T) {
		id := kernel.NewUUID()
		delivery := now.Add(240 * time.Hour)

		o, err := order.NewOrder(id, buyer, "City Hospital", drafts(), now.Add(72*time.Hour), &delivery, "NET30", now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.BuyerID().IsEqual(buyer.ID()))
		assert.Equal(t, order.PendingApproval, o.Status())
		assert.Equal(t, int64(0), o.Version())
		assert.Equal(t, "NET30", o.Terms())
		require.NotNil(t, o.RequestedDeliveryDate())
		assert.True(t, o.RequestedDeliveryDate().Equal(delivery))
		assert.Empty(t, o.Awards())
		assert.Empty(t, o.Comments())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should number line items by position", func(t *testing.T) {
		o := newOrder(t)

		items := o.Items()
		require.Len(t, items, 2)
		assert.Equal(t, order.LineItemID(1), items[0].ID())
		assert.Equal(t, order.LineItemID(2), items[1].ID())
		assert.Equal(t, 10, items[0].Quantity())
		assert.Equal(t, "SafeHands", items[0].PreferredBrand())

		item, ok := o.Item(2)
		assert.True(t, ok)
		assert.Equal(t, "Surgical masks", item.Description())
		_, ok = o.Item(3)
		assert.False(t, ok)
	})

	t.Run("should fail with empty items", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), buyer, "x", nil, now.Add(time.Hour), nil, "", now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})

	t.Run("should fail with invalid items", func(t *testing.T) {
		bad := []order.LineItemDraft{{Quantity: 0, Description: "Gloves"}, {Quantity: 1, Description: " "}}

		o, err := order.NewOrder(kernel.NewUUID(), buyer, "x", bad, now.Add(time.Hour), nil, "", now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "description of line item 2")
	})

	t.Run("should fail without expiration date", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), buyer, "x", drafts(), time.Time{}, nil, "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "expiration date")
	})

	t.Run("should fail when expiration is not in the future", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), buyer, "x", drafts(), now, nil, "", now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should fail when creator is not a buyer", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), supplier, "x", drafts(), now.Add(time.Hour), nil, "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot create orders")
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, order.Actor{}, "x", nil, time.Time{}, nil, "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "expiration date")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should walk the happy path recording one event per transition", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Publish(admin, now))
		require.NoError(t, o.Adjudicate(awardsFor(t, o), admin, now.Add(time.Minute)))
		info, err := order.NewDispatchInfo("Ivan", "AB-123", "TRK-ABCD1234", now.Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, o.Dispatch(info, supplier, now.Add(time.Hour)))
		require.NoError(t, o.ConfirmDelivery(buyer, now.Add(2*time.Hour)))

		assert.Equal(t, order.Delivered, o.Status())
		assert.True(t, o.UpdatedAt().Equal(now.Add(2*time.Hour)))
		got, ok := o.DispatchInfo()
		require.True(t, ok)
		assert.Equal(t, "TRK-ABCD1234", got.TrackingNumber())

		var changes []order.StatusChangedEvent
		var adjudicated int
		for _, e := range o.DomainEvents() {
			switch ev := e.(type) {
			case order.StatusChangedEvent:
				changes = append(changes, ev)
			case order.OrderAdjudicatedEvent:
				adjudicated++
				assert.Len(t, ev.Awards, 2)
			}
		}
		require.Len(t, changes, 4)
		assert.Equal(t, 1, adjudicated)
		assert.Equal(t, order.PendingApproval, changes[0].From)
		assert.Equal(t, order.InReview, changes[0].To)
		assert.Equal(t, order.RoleAdmin, changes[0].ActorRole)
		assert.Equal(t, order.Delivered, changes[3].To)
		assert.True(t, changes[3].ActorID.IsEqual(buyer.ID()))
	})

	t.Run("should not skip states", func(t *testing.T) {
		o := newOrder(t)

		err := o.ConfirmDelivery(buyer, now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, order.PendingApproval, o.Status())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should require a valid actor", func(t *testing.T) {
		o := newOrder(t)

		err := o.Publish(order.Actor{}, now)

		require.Error(t, err)
		assert.Equal(t, order.PendingApproval, o.Status())
	})
}

func TestOrder_Adjudicate(t *testing.T) {
	t.Run("should fail with invalid transition before checking awards", func(t *testing.T) {
		o := newOrder(t)

		err := o.Adjudicate(nil, admin, now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
	})

	t.Run("should fail when a line has no award", func(t *testing.T) {
		o := orderIn(t, order.InReview)
		awards := awardsFor(t, o)[:1]

		err := o.Adjudicate(awards, admin, now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrIncompleteAllocation))
		assert.Equal(t, order.InReview, o.Status())
		assert.Empty(t, o.Awards())
	})

	t.Run("should fail when a line is awarded twice", func(t *testing.T) {
		o := orderIn(t, order.InReview)
		awards := awardsFor(t, o)
		awards = append(awards, awards[0])

		err := o.Adjudicate(awards, admin, now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrIncompleteAllocation))
	})

	t.Run("should store awards in line order", func(t *testing.T) {
		o := orderIn(t, order.InReview)
		awards := awardsFor(t, o)
		awards[0], awards[1] = awards[1], awards[0]

		require.NoError(t, o.Adjudicate(awards, admin, now))

		got := o.Awards()
		require.Len(t, got, 2)
		assert.Equal(t, order.LineItemID(1), got[0].LineItemID())
		assert.Equal(t, order.LineItemID(2), got[1].LineItemID())
	})
}

func TestOrder_Reject(t *testing.T) {
	for _, status := range []order.Status{order.PendingApproval, order.InReview, order.InPreparation} {
		t.Run("should reject from "+status.String(), func(t *testing.T) {
			o := orderIn(t, status)

			require.NoError(t, o.Reject("  out of budget ", admin, now))

			assert.Equal(t, order.Rejected, o.Status())
			assert.Equal(t, "out of budget", o.RejectionReason())
		})
	}

	t.Run("should fail from on its way", func(t *testing.T) {
		o := orderIn(t, order.OnItsWay)

		err := o.Reject("", admin, now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
	})

	for _, status := range []order.Status{order.Delivered, order.Rejected} {
		t.Run("should answer already terminal from "+status.String(), func(t *testing.T) {
			o := orderIn(t, status)

			err := o.Reject("again", admin, now)

			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrAlreadyTerminal))
			assert.Equal(t, status, o.Status())
		})
	}
}

func TestOrder_TerminalOrdersOnlyAcceptComments(t *testing.T) {
	for _, status := range []order.Status{order.Delivered, order.Rejected} {
		t.Run("should refuse transitions but accept comments when "+status.String(), func(t *testing.T) {
			o := orderIn(t, status)
			info, _ := order.NewDispatchInfo("Ivan", "AB-123", "TRK-ABCD1234", now)

			assert.True(t, errors.Is(o.Publish(admin, now), errs.ErrInvalidTransition))
			assert.True(t, errors.Is(o.Adjudicate(awardsFor(t, o), admin, now), errs.ErrInvalidTransition))
			assert.True(t, errors.Is(o.Dispatch(info, supplier, now), errs.ErrInvalidTransition))
			assert.True(t, errors.Is(o.ConfirmDelivery(buyer, now), errs.ErrInvalidTransition))

			c, err := order.NewComment(kernel.NewUUID(), buyer, "City Hospital", "thanks", now)
			require.NoError(t, err)
			require.NoError(t, o.AddComment(c))
			assert.Len(t, o.Comments(), 1)
			assert.Equal(t, status, o.Status())
		})
	}
}

func TestOrder_AcceptQuote(t *testing.T) {
	t.Run("should accept quotes while in review before expiration", func(t *testing.T) {
		o := orderIn(t, order.InReview)

		require.NoError(t, o.AcceptQuote(now.Add(time.Hour)))
		assert.True(t, o.UpdatedAt().Equal(now.Add(time.Hour)))
		assert.True(t, o.IsOpenForQuotes(now))
	})

	t.Run("should accept quotes exactly at expiration", func(t *testing.T) {
		o := orderIn(t, order.InReview)

		require.NoError(t, o.AcceptQuote(o.ExpirationDate()))
	})

	t.Run("should refuse quotes after expiration", func(t *testing.T) {
		o := orderIn(t, order.InReview)

		err := o.AcceptQuote(o.ExpirationDate().Add(time.Second))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrOrderNotOpen))
		assert.True(t, o.AwaitsAdjudication(o.ExpirationDate().Add(time.Second)))
	})

	for _, status := range []order.Status{order.PendingApproval, order.InPreparation, order.Delivered} {
		t.Run("should refuse quotes when "+status.String(), func(t *testing.T) {
			o := orderIn(t, status)

			err := o.AcceptQuote(now)

			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrOrderNotOpen))
			assert.False(t, o.AwaitsAdjudication(now.Add(1000*time.Hour)))
		})
	}
}

func TestOrder_Comments(t *testing.T) {
	t.Run("should append comments in order and record events", func(t *testing.T) {
		o := newOrder(t)
		first, err := order.NewComment(kernel.NewUUID(), buyer, "City Hospital", "Need by Friday", now)
		require.NoError(t, err)
		second, err := order.NewComment(kernel.NewUUID(), admin, "Procurement office", "Noted", now.Add(time.Minute))
		require.NoError(t, err)

		require.NoError(t, o.AddComment(first))
		require.NoError(t, o.AddComment(second))

		comments := o.Comments()
		require.Len(t, comments, 2)
		assert.Equal(t, "Need by Friday", comments[0].Text())
		assert.Equal(t, order.RoleAdmin, comments[1].Author().Role())
		assert.Len(t, o.DomainEvents(), 2)
		assert.Equal(t, order.EventKindCommentAdded, o.DomainEvents()[0].EventKind())
	})

	t.Run("should reject empty text", func(t *testing.T) {
		_, err := order.NewComment(kernel.NewUUID(), buyer, "x", "   ", now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should round trip through a snapshot", func(t *testing.T) {
		o := orderIn(t, order.InPreparation)
		o.SetVersion(3)

		restored, err := order.RestoreOrder(o.Snapshot())

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, o.Status(), restored.Status())
		assert.Equal(t, int64(3), restored.Version())
		assert.Equal(t, o.Items(), restored.Items())
		assert.Equal(t, o.Awards(), restored.Awards())
		assert.Empty(t, restored.DomainEvents())
	})

	t.Run("should isolate the snapshot from later changes", func(t *testing.T) {
		o := newOrder(t)
		snap := o.Snapshot()

		c, _ := order.NewComment(kernel.NewUUID(), buyer, "x", "hi", now)
		require.NoError(t, o.AddComment(c))

		assert.Empty(t, snap.Comments)
	})

	t.Run("should refuse prepared orders without awards", func(t *testing.T) {
		snap := newOrder(t).Snapshot()
		snap.Status = order.InPreparation

		_, err := order.RestoreOrder(snap)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvariantViolation))
	})

	t.Run("should refuse unknown status", func(t *testing.T) {
		snap := newOrder(t).Snapshot()
		snap.Status = order.Unknown

		_, err := order.RestoreOrder(snap)

		require.Error(t, err)
	})
}
