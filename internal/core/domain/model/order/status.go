package order

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle stage of an order.
// It implements a state machine with a single transition table so that every
// mutation path (status edits, shipping conveniences, the expiry job) defers
// to one source of truth for "what is a valid next step".
//
// State transitions:
//
//	DRAFT ──> PENDING_CONFIRMATION ──> CONFIRMED ──> PACKING ──> SHIPPED ──> DELIVERED
//	  │                │                   │            │           │
//	  │                ├──> FAILED         │            │           ├──> RETURN_REQUESTED ──> RETURNED
//	  │                │                   │            │           │                            │
//	  └────────────────┴───────────────────┴────────────┘           └──> FAILED <───────────────┘
//	                  (CANCELED reachable from every pre-shipment stage)
//
// DELIVERED, CANCELED, RETURNED and FAILED are terminal: their allowed-next
// sets are empty and only a forced transition can leave them.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Draft is an order being assembled by back-office staff,
	// not yet visible to the buyer.
	Draft

	// PendingConfirmation is a submitted order awaiting confirmation.
	PendingConfirmation

	// Confirmed means the order was accepted and is queued for fulfillment.
	Confirmed

	// Packing means warehouse staff are preparing the shipment.
	Packing

	// Shipped means the parcel was handed to the carrier.
	Shipped

	// Delivered means the buyer received the parcel. Terminal.
	Delivered

	// Canceled means the order was abandoned before completion. Terminal.
	// Cancellation always carries a reason; orders are never deleted.
	Canceled

	// ReturnRequested means the buyer refused or is returning the shipment.
	ReturnRequested

	// Returned means the parcel came back to the warehouse. Terminal.
	Returned

	// Failed means the order could not be completed
	// (payment failure, lost shipment). Terminal.
	Failed
)

// Sentinel errors for transition validation. InvalidTransitionError carries
// the offending pair; ErrMissingCancelReason is returned whenever a move to
// Canceled lacks a reason, force or not.
var (
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrMissingCancelReason = errs.NewValueIsRequiredError("cancelReason is required to cancel an order")
)

// InvalidTransitionError reports a requested status change that is not
// reachable from the current status without a forced override.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// allowedTransitions is the single source of truth for one-step reachability.
// The table is total: every valid status has an entry, empty for terminal states.
// It is constructed once and never mutated at runtime.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:               {PendingConfirmation, Canceled},
		PendingConfirmation: {Confirmed, Canceled, Failed},
		Confirmed:           {Packing, Canceled},
		Packing:             {Shipped, Canceled},
		Shipped:             {Delivered, ReturnRequested, Failed},
		Delivered:           {},
		Canceled:            {},
		ReturnRequested:     {Returned, Failed},
		Returned:            {},
		Failed:              {},
	}
}

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:       "UNKNOWN",
		Draft:               "DRAFT",
		PendingConfirmation: "PENDING_CONFIRMATION",
		Confirmed:           "CONFIRMED",
		Packing:             "PACKING",
		Shipped:             "SHIPPED",
		Delivered:           "DELIVERED",
		Canceled:            "CANCELED",
		ReturnRequested:     "RETURN_REQUESTED",
		Returned:            "RETURNED",
		Failed:              "FAILED",
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "PENDING_CONFIRMATION"). Parsing is case-insensitive.
// Returns a ValueIsInvalidError for unrecognized input.
func StatusFromString(s string) (Status, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusStrings() {
		if status != StatusUnknown && name == upper {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known order status", s),
	)
}

// Validate checks that the Status is one of the defined lifecycle stages.
// StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", int(s)),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "PACKING".
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// AllowedNext returns a copy of the statuses legally reachable from s in one
// step. Empty for terminal states. Used by the admin UI to pre-filter the
// status dropdown; the server re-validates independently.
func (s Status) AllowedNext() []Status {
	next, ok := allowedTransitions()[s]
	if !ok {
		return nil
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether next is in the allowed-next set of s.
// A status is never considered reachable from itself; same-status requests
// are handled as idempotent no-ops by ValidateTransition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the allowed-next set of s is empty.
func (s Status) IsTerminal() bool {
	next, ok := allowedTransitions()[s]
	return ok && len(next) == 0
}

// ValidateTransition checks a requested status change against the transition
// table. It is pure: no I/O, so it can be unit-tested against the full
// cross-product of status pairs.
//
// Rules, in order:
//   - both statuses must be valid lifecycle stages;
//   - a move to Canceled requires a non-empty cancelReason, regardless of force;
//   - requested == current is an idempotent no-op and succeeds;
//   - requested in the allowed-next set of current succeeds;
//   - force bypasses the adjacency rule (the caller enforces privilege and
//     flags the audit row);
//   - anything else fails with InvalidTransitionError{From, To}.
func ValidateTransition(current, requested Status, force bool, cancelReason string) error {
	if err := current.Validate(); err != nil {
		return err
	}
	if err := requested.Validate(); err != nil {
		return err
	}

	if requested == Canceled && requested != current && strings.TrimSpace(cancelReason) == "" {
		return ErrMissingCancelReason
	}

	if requested == current {
		return nil
	}
	if current.CanTransitionTo(requested) {
		return nil
	}
	if force {
		return nil
	}

	return &InvalidTransitionError{From: current, To: requested}
}
