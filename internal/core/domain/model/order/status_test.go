package order_test

import (
	"fmt"
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Draft,
		order.PendingConfirmation,
		order.Confirmed,
		order.Packing,
		order.Shipped,
		order.Delivered,
		order.Canceled,
		order.ReturnRequested,
		order.Returned,
		order.Failed,
	}
}

func TestStatus_Constants(t *testing.T) {
	t.Run("should have distinct values", func(t *testing.T) {
		seen := make(map[order.Status]bool)
		for _, status := range allStatuses() {
			assert.False(t, seen[status], "duplicate status value %d", int(status))
			seen[status] = true
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate all defined statuses", func(t *testing.T) {
		for _, status := range allStatuses() {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject StatusUnknown", func(t *testing.T) {
		err := order.StatusUnknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject out-of-range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(11), order.Status(100)} {
			require.Error(t, status.Validate(), "status %d should be invalid", int(status))
		}
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Draft, "DRAFT"},
		{order.PendingConfirmation, "PENDING_CONFIRMATION"},
		{order.Confirmed, "CONFIRMED"},
		{order.Packing, "PACKING"},
		{order.Shipped, "SHIPPED"},
		{order.Delivered, "DELIVERED"},
		{order.Canceled, "CANCELED"},
		{order.ReturnRequested, "RETURN_REQUESTED"},
		{order.Returned, "RETURNED"},
		{order.Failed, "FAILED"},
		{order.StatusUnknown, "UNKNOWN"},
		{order.Status(42), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip all statuses", func(t *testing.T) {
		for _, status := range allStatuses() {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should parse case-insensitively", func(t *testing.T) {
		parsed, err := order.StatusFromString("pending_confirmation")

		require.NoError(t, err)
		assert.Equal(t, order.PendingConfirmation, parsed)
	})

	t.Run("should reject unknown input", func(t *testing.T) {
		_, err := order.StatusFromString("TELEPORTED")

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[order.Status]bool{
		order.Delivered: true,
		order.Canceled:  true,
		order.Returned:  true,
		order.Failed:    true,
	}

	for _, status := range allStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			assert.Equal(t, terminal[status], status.IsTerminal())
			if terminal[status] {
				assert.Empty(t, status.AllowedNext())
			}
		})
	}
}

// TestValidateTransition_CrossProduct checks every (from, to) pair against
// the adjacency table: without force, a transition succeeds iff the target is
// reachable in one step or equals the current status.
func TestValidateTransition_CrossProduct(t *testing.T) {
	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			name := fmt.Sprintf("%s_to_%s", from, to)
			t.Run(name, func(t *testing.T) {
				err := order.ValidateTransition(from, to, false, "stock issue")

				if to == from || from.CanTransitionTo(to) {
					require.NoError(t, err)
				} else {
					require.Error(t, err)
					var invalid *order.InvalidTransitionError
					require.ErrorAs(t, err, &invalid)
					assert.Equal(t, from, invalid.From)
					assert.Equal(t, to, invalid.To)
					require.ErrorIs(t, err, order.ErrInvalidTransition)
				}
			})
		}
	}
}

func TestValidateTransition_Force(t *testing.T) {
	t.Run("force allows any non-cancel jump", func(t *testing.T) {
		for _, from := range allStatuses() {
			for _, to := range allStatuses() {
				if to == order.Canceled {
					continue
				}
				require.NoError(t, order.ValidateTransition(from, to, true, ""),
					"forced %s -> %s should succeed", from, to)
			}
		}
	})

	t.Run("cancel without reason fails regardless of force", func(t *testing.T) {
		for _, from := range allStatuses() {
			if from == order.Canceled {
				continue
			}
			err := order.ValidateTransition(from, order.Canceled, true, "")

			require.ErrorIs(t, err, order.ErrMissingCancelReason, "from %s", from)
		}
	})

	t.Run("cancel with blank reason fails", func(t *testing.T) {
		err := order.ValidateTransition(order.Confirmed, order.Canceled, false, "   ")

		require.ErrorIs(t, err, order.ErrMissingCancelReason)
	})

	t.Run("cancel with reason succeeds on legal edge", func(t *testing.T) {
		err := order.ValidateTransition(order.Confirmed, order.Canceled, false, "buyer withdrew")

		require.NoError(t, err)
	})
}

func TestValidateTransition_InvalidStatuses(t *testing.T) {
	t.Run("unknown current status", func(t *testing.T) {
		err := order.ValidateTransition(order.StatusUnknown, order.Confirmed, false, "")

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})

	t.Run("unknown requested status", func(t *testing.T) {
		err := order.ValidateTransition(order.Confirmed, order.Status(99), true, "")

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

// Concrete scenario from the admin workflow: skipping fulfillment stages is
// rejected without force.
func TestValidateTransition_NoStageSkipping(t *testing.T) {
	err := order.ValidateTransition(order.Confirmed, order.Delivered, false, "")

	var invalid *order.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, order.Confirmed, invalid.From)
	assert.Equal(t, order.Delivered, invalid.To)
}

func TestStatus_AllowedNext_ReturnsCopy(t *testing.T) {
	first := order.Confirmed.AllowedNext()
	first[0] = order.Failed

	second := order.Confirmed.AllowedNext()
	assert.Equal(t, order.Packing, second[0], "mutating the returned slice must not affect the table")
}
