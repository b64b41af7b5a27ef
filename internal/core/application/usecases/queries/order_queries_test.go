package queries_test

import (
	"testing"
	"time"

	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	w := newWorld(t)
	o := w.openOrder(now)
	h := queries.NewGetOrderQueryHandler(w.store)

	t.Run("should return order view", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(o.ID())
		require.NoError(t, err)

		view, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, o.ID(), view.ID)
		assert.Equal(t, order.InReview, view.Status)
		assert.Equal(t, int64(2), view.Version)
		require.Len(t, view.Items, 2)
		assert.Equal(t, "HP", view.Items[1].PreferredBrand)
		assert.Empty(t, view.Comments)
		assert.Nil(t, view.Dispatch)
	})

	t.Run("should report unknown order", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), query)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject zero-value query", func(t *testing.T) {
		_, err := h.Handle(t.Context(), queries.GetOrderQuery{})

		assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestListOrdersQueryHandler_Handle(t *testing.T) {
	w := newWorld(t)
	first := w.openOrder(now)
	second := w.openOrder(now.Add(time.Hour))
	h := queries.NewListOrdersQueryHandler(w.store)

	t.Run("should list newest first", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(nil, nil)
		require.NoError(t, err)

		views, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, second.ID(), views[0].ID)
		assert.Equal(t, first.ID(), views[1].ID)
	})

	t.Run("should filter by status", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery([]order.Status{order.PendingApproval}, nil)
		require.NoError(t, err)

		views, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("should filter by buyer", func(t *testing.T) {
		other := kernel.NewUUID()
		query, err := queries.NewListOrdersQuery([]order.Status{order.InReview}, &other)
		require.NoError(t, err)

		views, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery([]order.Status{order.Status(42)}, nil)

		assert.Error(t, err)
	})
}
