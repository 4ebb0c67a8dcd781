package order

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// FulfillmentStatus tracks the physical-shipment axis of an order
// independently of its lifecycle status. The numeric order of the constants
// is meaningful: a fulfillment status only ever advances, never regresses,
// so derived updates cannot downgrade DELIVERED back to SHIPPED as a side
// effect of an unrelated status edit.
type FulfillmentStatus int

const (
	// FulfillmentUnknown represents an invalid or undefined fulfillment status.
	FulfillmentUnknown FulfillmentStatus = iota

	// FulfillmentPending means no physical handling has started.
	FulfillmentPending

	// FulfillmentPacking means the shipment is being prepared.
	FulfillmentPacking

	// FulfillmentShipped means the parcel is with the carrier.
	FulfillmentShipped

	// FulfillmentDelivered means the parcel reached the buyer.
	FulfillmentDelivered

	// FulfillmentReturned means the parcel came back to the warehouse.
	FulfillmentReturned
)

func fulfillmentStatusStrings() map[FulfillmentStatus]string {
	return map[FulfillmentStatus]string{
		FulfillmentUnknown:   "UNKNOWN",
		FulfillmentPending:   "PENDING",
		FulfillmentPacking:   "PACKING",
		FulfillmentShipped:   "SHIPPED",
		FulfillmentDelivered: "DELIVERED",
		FulfillmentReturned:  "RETURNED",
	}
}

// FulfillmentStatusFromString parses the wire representation of a fulfillment
// status (e.g. "SHIPPED"). Parsing is case-insensitive.
func FulfillmentStatusFromString(s string) (FulfillmentStatus, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range fulfillmentStatusStrings() {
		if status != FulfillmentUnknown && name == upper {
			return status, nil
		}
	}
	return FulfillmentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"fulfillmentStatus",
		fmt.Errorf("%q is not a known fulfillment status", s),
	)
}

// Validate checks that the FulfillmentStatus is one of the defined stages.
func (f FulfillmentStatus) Validate() error {
	if f <= FulfillmentUnknown || f > FulfillmentReturned {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillmentStatus",
			fmt.Errorf("%d is not a valid fulfillment status", int(f)),
		)
	}
	return nil
}

// String returns the wire representation of the fulfillment status.
func (f FulfillmentStatus) String() string {
	if str, ok := fulfillmentStatusStrings()[f]; ok {
		return str
	}
	return "UNKNOWN"
}

// isFurtherAlongThan reports whether f is a later physical stage than other.
func (f FulfillmentStatus) isFurtherAlongThan(other FulfillmentStatus) bool {
	return f > other
}
