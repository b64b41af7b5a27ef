package kernel

import (
	"bytes"
	"encoding/json"
	"fmt"

	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of minor-unit digits kept for every amount.
const moneyScale = 2

// Money is a non-negative currency amount with exact decimal arithmetic.
// Floating point is never used for prices or totals.
//
// The zero value is a valid zero amount. In quote offers a zero price means
// "not quoted" and is never treated as a winning price.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the zero amount.
var ZeroMoney = Money{amount: decimal.Zero}

// NewMoney validates amount: it must be non-negative and have at most two decimal places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	if !amount.Equal(amount.Round(moneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d decimal places", amount.String(), moneyScale),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "90", "12.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MoneyFromMinorUnits builds an amount from an integer count of cents.
func MoneyFromMinorUnits(cents int64) (Money, error) {
	return NewMoney(decimal.New(cents, -moneyScale))
}

// MustMoney is MoneyFromString for literals in tests and fixtures. It panics on bad input.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulQuantity returns the line contribution m × quantity.
// A negative result is an invariant violation and is reported instead of clamped.
func (m Money) MulQuantity(quantity int) (Money, error) {
	total := m.amount.Mul(decimal.NewFromInt(int64(quantity)))
	if total.IsNegative() {
		return Money{}, errs.NewInvariantViolationError("line total %s × %d is negative", m.String(), quantity)
	}
	return Money{amount: total}, nil
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal reports numeric equality (1.5 equals 1.50).
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// MarshalJSON renders the amount as a fixed-point string, e.g. "1150.00".
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both string and number encodings.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	if raw == "" || raw == "null" {
		*m = ZeroMoney
		return nil
	}
	parsed, err := MoneyFromString(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
