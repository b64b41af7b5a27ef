package commands_test

import (
	"testing"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should keep all fields", func(t *testing.T) {
		delivery := now.Add(10 * 24 * time.Hour)
		cmd, err := commands.NewCreateOrderCommand(orderID, buyer, " City Hospital ", drafts(), now.Add(time.Hour), &delivery, " urgent ")

		require.NoError(t, err)
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, buyer, cmd.Buyer())
		assert.Equal(t, "City Hospital", cmd.BuyerName())
		assert.Equal(t, drafts(), cmd.Items())
		assert.Equal(t, "urgent", cmd.Terms())
		assert.Equal(t, delivery, *cmd.RequestedDeliveryDate())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, buyer, "", nil, time.Time{}, nil, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "expirationDate")
	})

	t.Run("should reject zero-value actor", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(orderID, order.Actor{}, "x", drafts(), now, nil, "")

		assert.Error(t, err)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
