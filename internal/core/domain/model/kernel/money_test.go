package kernel_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create valid money", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(1250.50), "USD")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "USD", m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(1250.50)))
		assert.Equal(t, "1250.5 USD", m.String())
	})

	t.Run("should create zero money", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero, "VND")

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject invalid currency codes", func(t *testing.T) {
		invalidCodes := []string{"", "US", "usd", "DOLLAR", "U$D"}

		for _, code := range invalidCodes {
			_, err := kernel.NewMoney(decimal.Zero, code)

			require.Error(t, err, "currency %q should be rejected", code)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1), "USD")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "is negative")
	})
}

func TestMoney_IsEqual(t *testing.T) {
	t.Run("equal amount and currency", func(t *testing.T) {
		a, _ := kernel.NewMoney(decimal.NewFromInt(100), "USD")
		b, _ := kernel.NewMoney(decimal.NewFromFloat(100.00), "USD")

		assert.True(t, a.IsEqual(b))
	})

	t.Run("different currency", func(t *testing.T) {
		a, _ := kernel.NewMoney(decimal.NewFromInt(100), "USD")
		b, _ := kernel.NewMoney(decimal.NewFromInt(100), "VND")

		assert.False(t, a.IsEqual(b))
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var m kernel.Money

		require.ErrorIs(t, m.Validate(), errs.ErrValueIsRequired)
	})
}
