package order_test

import (
	"errors"
	"fmt"
	"testing"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.PendingApproval))
		assert.Equal(t, 2, int(order.InReview))
		assert.Equal(t, 3, int(order.InPreparation))
		assert.Equal(t, 4, int(order.OnItsWay))
		assert.Equal(t, 5, int(order.Delivered))
		assert.Equal(t, 6, int(order.Rejected))
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range order.AllStatuses() {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(7), order.Status(100)} {
		t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "PENDING_APPROVAL", order.PendingApproval.String())
	assert.Equal(t, "IN_REVIEW", order.InReview.String())
	assert.Equal(t, "IN_PREPARATION", order.InPreparation.String())
	assert.Equal(t, "ON_ITS_WAY", order.OnItsWay.String())
	assert.Equal(t, "DELIVERED", order.Delivered.String())
	assert.Equal(t, "REJECTED", order.Rejected.String())
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every wire code back", func(t *testing.T) {
		for _, status := range order.AllStatuses() {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should be case insensitive", func(t *testing.T) {
		parsed, err := order.StatusFromString(" in_review ")

		require.NoError(t, err)
		assert.Equal(t, order.InReview, parsed)
	})

	t.Run("should reject unknown codes", func(t *testing.T) {
		for _, code := range []string{"", "UNKNOWN", "SHIPPED"} {
			_, err := order.StatusFromString(code)

			require.Error(t, err, code)
			assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
		}
	})
}

func TestStatus_Transitions(t *testing.T) {
	type move struct {
		name string
		to   order.Status
		fn   func(order.Status) (order.Status, error)
	}
	moves := []move{
		{"publish", order.InReview, order.Status.Publish},
		{"adjudicate", order.InPreparation, order.Status.Adjudicate},
		{"dispatch", order.OnItsWay, order.Status.Dispatch},
		{"confirm delivery", order.Delivered, order.Status.ConfirmDelivery},
		{"reject", order.Rejected, order.Status.Reject},
	}

	// Every (status, move) pair either follows a declared edge or fails without skipping ahead.
	for _, from := range order.AllStatuses() {
		for _, m := range moves {
			t.Run(fmt.Sprintf("should %s from %s only along an edge", m.name, from), func(t *testing.T) {
				next, err := m.fn(from)

				if from.CanTransitionTo(m.to) {
					require.NoError(t, err)
					assert.Equal(t, m.to, next)
					return
				}

				require.Error(t, err)
				assert.Equal(t, order.Unknown, next)
				if m.to == order.Rejected && from.IsTerminal() {
					assert.True(t, errors.Is(err, errs.ErrAlreadyTerminal))
				} else {
					assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
					assert.Contains(t, err.Error(), fmt.Sprintf("%s -> %s", from, m.to))
				}
			})
		}
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should allow the happy path", func(t *testing.T) {
		assert.True(t, order.PendingApproval.CanTransitionTo(order.InReview))
		assert.True(t, order.InReview.CanTransitionTo(order.InPreparation))
		assert.True(t, order.InPreparation.CanTransitionTo(order.OnItsWay))
		assert.True(t, order.OnItsWay.CanTransitionTo(order.Delivered))
	})

	t.Run("should allow rejection only before dispatch", func(t *testing.T) {
		assert.True(t, order.PendingApproval.CanTransitionTo(order.Rejected))
		assert.True(t, order.InReview.CanTransitionTo(order.Rejected))
		assert.True(t, order.InPreparation.CanTransitionTo(order.Rejected))
		assert.False(t, order.OnItsWay.CanTransitionTo(order.Rejected))
	})

	t.Run("should not allow skipping states", func(t *testing.T) {
		assert.False(t, order.PendingApproval.CanTransitionTo(order.InPreparation))
		assert.False(t, order.InReview.CanTransitionTo(order.OnItsWay))
		assert.False(t, order.InPreparation.CanTransitionTo(order.Delivered))
	})

	t.Run("should have no edges out of terminal statuses", func(t *testing.T) {
		for _, to := range order.AllStatuses() {
			assert.False(t, order.Delivered.CanTransitionTo(to))
			assert.False(t, order.Rejected.CanTransitionTo(to))
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Rejected.IsTerminal())
	assert.False(t, order.OnItsWay.IsTerminal())
	assert.False(t, order.PendingApproval.IsTerminal())
}
