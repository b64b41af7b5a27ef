package kernel_test

import (
	"encoding/json"
	"errors"
	"testing"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromString(t *testing.T) {
	t.Run("should parse integer and fractional amounts", func(t *testing.T) {
		m, err := kernel.MoneyFromString("90")
		require.NoError(t, err)
		assert.Equal(t, "90.00", m.String())

		m, err = kernel.MoneyFromString("12.5")
		require.NoError(t, err)
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("should accept zero as not quoted", func(t *testing.T) {
		m, err := kernel.MoneyFromString("0")

		require.NoError(t, err)
		assert.True(t, m.IsZero())
		assert.False(t, m.IsPositive())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.MoneyFromString("-1")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsOutOfRange))
	})

	t.Run("should reject more than two decimal places", func(t *testing.T) {
		_, err := kernel.MoneyFromString("1.005")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should accept trailing zeros beyond scale", func(t *testing.T) {
		m, err := kernel.MoneyFromString("1.500")

		require.NoError(t, err)
		assert.True(t, m.Equal(kernel.MustMoney("1.5")))
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten")

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})
}

func TestMoneyFromMinorUnits(t *testing.T) {
	m, err := kernel.MoneyFromMinorUnits(11500)

	require.NoError(t, err)
	assert.Equal(t, "115.00", m.String())
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("should multiply by quantity exactly", func(t *testing.T) {
		line, err := kernel.MustMoney("0.10").MulQuantity(3)

		require.NoError(t, err)
		assert.True(t, line.Decimal().Equal(decimal.RequireFromString("0.3")))
	})

	t.Run("should add amounts", func(t *testing.T) {
		sum := kernel.MustMoney("900").Add(kernel.MustMoney("250"))

		assert.Equal(t, "1150.00", sum.String())
	})

	t.Run("should report negative quantity as invariant violation", func(t *testing.T) {
		_, err := kernel.MustMoney("5").MulQuantity(-1)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvariantViolation))
	})

	t.Run("should compare amounts", func(t *testing.T) {
		assert.Equal(t, -1, kernel.MustMoney("85").Cmp(kernel.MustMoney("90")))
		assert.Equal(t, 0, kernel.MustMoney("90").Cmp(kernel.MustMoney("90.00")))
		assert.Equal(t, 1, kernel.MustMoney("90.01").Cmp(kernel.MustMoney("90")))
	})

	t.Run("should treat zero value as zero amount", func(t *testing.T) {
		var m kernel.Money

		assert.True(t, m.IsZero())
		assert.Equal(t, "0.00", m.String())
	})
}

func TestMoney_JSON(t *testing.T) {
	t.Run("should marshal as fixed point string", func(t *testing.T) {
		data, err := json.Marshal(kernel.MustMoney("25"))

		require.NoError(t, err)
		assert.JSONEq(t, `"25.00"`, string(data))
	})

	t.Run("should unmarshal string and number forms", func(t *testing.T) {
		var a, b kernel.Money

		require.NoError(t, json.Unmarshal([]byte(`"12.30"`), &a))
		require.NoError(t, json.Unmarshal([]byte(`12.3`), &b))
		assert.True(t, a.Equal(b))
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		var m kernel.Money

		err := json.Unmarshal([]byte(`"-3"`), &m)

		require.Error(t, err)
	})
}
