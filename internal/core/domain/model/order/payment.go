package order

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// PaymentState tracks the financial axis of an order independently of its
// lifecycle status: how much money has been collected or refunded.
type PaymentState int

const (
	// PaymentUnknown represents an invalid or undefined payment state.
	PaymentUnknown PaymentState = iota

	// PaymentUnpaid means no money has been collected yet.
	PaymentUnpaid

	// PaymentAuthorized means funds are reserved but not captured.
	PaymentAuthorized

	// PaymentPaid means the full amount was captured.
	PaymentPaid

	// PaymentPartiallyRefunded means part of the captured amount was returned.
	PaymentPartiallyRefunded

	// PaymentRefunded means the full captured amount was returned.
	PaymentRefunded

	// PaymentFailed means a capture attempt failed.
	PaymentFailed
)

func paymentStateStrings() map[PaymentState]string {
	return map[PaymentState]string{
		PaymentUnknown:           "UNKNOWN",
		PaymentUnpaid:            "UNPAID",
		PaymentAuthorized:        "AUTHORIZED",
		PaymentPaid:              "PAID",
		PaymentPartiallyRefunded: "PARTIALLY_REFUNDED",
		PaymentRefunded:          "REFUNDED",
		PaymentFailed:            "FAILED",
	}
}

// PaymentStateFromString parses the wire representation of a payment state
// (e.g. "PAID"). Parsing is case-insensitive.
func PaymentStateFromString(s string) (PaymentState, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for state, name := range paymentStateStrings() {
		if state != PaymentUnknown && name == upper {
			return state, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentState",
		fmt.Errorf("%q is not a known payment state", s),
	)
}

// Validate checks that the PaymentState is one of the defined states.
func (p PaymentState) Validate() error {
	if p <= PaymentUnknown || p > PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentState",
			fmt.Errorf("%d is not a valid payment state", int(p)),
		)
	}
	return nil
}

// String returns the wire representation of the payment state, e.g. "PAID".
func (p PaymentState) String() string {
	if str, ok := paymentStateStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}
