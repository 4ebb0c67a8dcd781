package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created through
// the NewMoney factory function.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// Money is a value object pairing a decimal amount with an ISO 4217 currency
// code. It is used for the monetary snapshot captured on an order at creation
// time: subtotal, discount, tax, shipping cost and total.
//
// Money is immutable. Arithmetic returns new values and never mutates the
// receiver. Amounts use github.com/shopspring/decimal to avoid binary
// floating-point rounding in financial figures.
//
// The zero value is invalid; construct via NewMoney.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value with validation.
// The currency must be a three-letter uppercase ISO 4217 code.
// Negative amounts are rejected: discounts are stored as positive magnitudes
// and subtracted where they apply.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if !isValidCurrency(currency) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not a three-letter ISO 4217 code", currency),
		)
	}
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}

	return Money{amount: amount, currency: currency}, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two Money values have the same currency and amount.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns the amount followed by the currency code, e.g. "1250.00 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}

// Validate returns ErrMoneyIsNotConstructed for the zero value and nil otherwise.
func (m Money) Validate() error {
	if m.currency == "" {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

func isValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
