package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrForceNotPermitted is returned when a non-admin actor requests a forced
	// transition.
	ErrForceNotPermitted = errors.New("forced transition requires admin privilege")

	// ErrShippingDetailsFrozen is returned when carrier or tracking edits are
	// attempted after the parcel has been delivered or returned.
	ErrShippingDetailsFrozen = errors.New("shipping details can no longer be changed")

	// ErrNoteIsRequired is returned when a note entry carries neither an internal
	// nor a customer-facing note.
	ErrNoteIsRequired = errs.NewValueIsRequiredError("at least one of noteInternal or noteCustomer")
)

// Order is the aggregate root for the order lifecycle. It owns three
// independently tracked status axes (lifecycle status, payment state,
// fulfillment status), the monetary and party snapshots fixed at creation
// time, and the append-only status history.
//
// Order enforces these invariants:
//   - Status changes go through the transition table; there is no way to
//     write the status field directly.
//   - Every successful status change queues exactly one StatusChange row,
//     persisted in the same transaction as the order.
//   - The monetary snapshot and party snapshots never change after creation.
//   - A more advanced fulfillment status is never regressed by a derived
//     update.
//   - Orders are never deleted; cancellation is a terminal status.
//
// All fields are private; the aggregate can only be created through NewOrder
// (new orders) or RestoreOrder (rehydration from persistence).
type Order struct {
	id   kernel.UUID
	code string

	status      Status
	payment     PaymentState
	fulfillment FulfillmentStatus

	totals   Totals
	buyer    PartySnapshot
	shipping PartySnapshot
	billing  PartySnapshot

	carrier        string
	trackingCode   string
	transactionRef string
	cancelReason   string

	version   int64
	createdAt time.Time
	updatedAt time.Time

	// pendingChanges holds audit rows queued by mutations on this instance,
	// not yet persisted. The repository writes and clears them atomically
	// with the order row.
	pendingChanges []StatusChange

	isConstructed bool
}

// ChangeStatusOptions carries the optional parts of a status change request.
type ChangeStatusOptions struct {
	NoteInternal string
	NoteCustomer string
	CancelReason string
	Force        bool
}

// NewOrder creates a new order with validation.
//
// The order starts in PendingConfirmation, or Draft when asDraft is set,
// with payment UNPAID and fulfillment PENDING. The initial audit row
// (nil from-status) is queued immediately so the history invariant holds
// from the first persisted state.
func NewOrder(
	id kernel.UUID,
	code string,
	totals Totals,
	buyer, shipping, billing PartySnapshot,
	asDraft bool,
	actor Actor,
) (*Order, error) {
	o := &Order{
		status:        PendingConfirmation,
		payment:       PaymentUnpaid,
		fulfillment:   FulfillmentPending,
		version:       1,
		isConstructed: true,
	}
	if asDraft {
		o.status = Draft
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setTotals(totals),
		o.setSnapshots(buyer, shipping, billing),
		actor.Validate(),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o.createdAt = now
	o.updatedAt = now
	o.pendingChanges = []StatusChange{
		newStatusChange(nil, o.status, actor, false, "", "", now),
	}

	return o, nil
}

// RestoreOrderParams carries the persisted state needed to rehydrate an Order.
type RestoreOrderParams struct {
	ID                kernel.UUID
	Code              string
	Status            Status
	PaymentState      PaymentState
	FulfillmentStatus FulfillmentStatus
	Totals            Totals
	Buyer             PartySnapshot
	Shipping          PartySnapshot
	Billing           PartySnapshot
	Carrier           string
	TrackingCode      string
	TransactionRef    string
	CancelReason      string
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestoreOrder reconstructs an order from persistence.
// All enum fields and snapshots are re-validated so corrupt rows surface as
// errors instead of invalid aggregates. No audit row is queued.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		carrier:        p.Carrier,
		trackingCode:   p.TrackingCode,
		transactionRef: p.TransactionRef,
		cancelReason:   p.CancelReason,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCode(p.Code),
		o.setTotals(p.Totals),
		o.setSnapshots(p.Buyer, p.Shipping, p.Billing),
		p.Status.Validate(),
		p.PaymentState.Validate(),
		p.FulfillmentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if p.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("%d is not a valid version", p.Version),
		)
	}

	o.status = p.Status
	o.payment = p.PaymentState
	o.fulfillment = p.FulfillmentStatus
	o.version = p.Version

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for struct-literal instances.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Code returns the human-facing order code, e.g. "ORD-20260831-0042".
func (o *Order) Code() string { return o.code }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentState returns the current payment state.
func (o *Order) PaymentState() PaymentState { return o.payment }

// FulfillmentStatus returns the current fulfillment status.
func (o *Order) FulfillmentStatus() FulfillmentStatus { return o.fulfillment }

// Totals returns the monetary snapshot fixed at creation.
func (o *Order) Totals() Totals { return o.totals }

// Buyer returns the buyer identity snapshot.
func (o *Order) Buyer() PartySnapshot { return o.buyer }

// Shipping returns the shipping address snapshot.
func (o *Order) Shipping() PartySnapshot { return o.shipping }

// Billing returns the billing address snapshot.
func (o *Order) Billing() PartySnapshot { return o.billing }

// Carrier returns the shipping carrier, if set.
func (o *Order) Carrier() string { return o.carrier }

// TrackingCode returns the carrier tracking code, if set.
func (o *Order) TrackingCode() string { return o.trackingCode }

// TransactionRef returns the payment transaction reference, if set.
func (o *Order) TransactionRef() string { return o.transactionRef }

// CancelReason returns the reason recorded when the order was canceled.
func (o *Order) CancelReason() string { return o.cancelReason }

// Version returns the optimistic-lock version of the loaded state.
func (o *Order) Version() int64 { return o.version }

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns when the order was last mutated.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// PendingChanges returns the audit rows queued by mutations on this instance.
// The repository persists them in the same transaction as the order row.
func (o *Order) PendingChanges() []StatusChange {
	out := make([]StatusChange, len(o.pendingChanges))
	copy(out, o.pendingChanges)
	return out
}

// ClearPendingChanges drops the queued audit rows after successful persistence.
func (o *Order) ClearPendingChanges() {
	o.pendingChanges = nil
}

// CommitVersion advances the in-memory version to match the row a successful
// optimistic-lock write just produced. Called by the repository only; without
// it a persisted aggregate would report the version it was loaded with.
func (o *Order) CommitVersion() {
	o.version++
}

// ChangeStatus applies a lifecycle transition through the transition table.
//
// The requested status is validated with ValidateTransition; validator errors
// propagate unchanged. A same-status request is an idempotent no-op: it
// returns (false, nil), queues no audit row and leaves updatedAt untouched.
//
// Force requires an actor with admin privilege. A transition that was only
// possible because of force is flagged on its audit row; a force flag on an
// already-legal transition is not.
//
// On success the dependent fulfillment status is advanced (never regressed):
// PACKING, SHIPPED, DELIVERED and RETURNED each imply the matching
// fulfillment stage.
func (o *Order) ChangeStatus(newStatus Status, actor Actor, opts ChangeStatusOptions) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := actor.Validate(); err != nil {
		return false, err
	}
	if opts.Force && !actor.CanForce() {
		return false, ErrForceNotPermitted
	}

	if err := ValidateTransition(o.status, newStatus, opts.Force, opts.CancelReason); err != nil {
		return false, err
	}

	if newStatus == o.status {
		return false, nil
	}

	forced := opts.Force && !o.status.CanTransitionTo(newStatus)
	from := o.status

	o.status = newStatus
	if newStatus == Canceled {
		o.cancelReason = strings.TrimSpace(opts.CancelReason)
	}
	o.advanceFulfillmentFor(newStatus)

	now := time.Now().UTC()
	o.updatedAt = now
	o.pendingChanges = append(o.pendingChanges,
		newStatusChange(&from, newStatus, actor, forced, opts.NoteInternal, opts.NoteCustomer, now))

	return true, nil
}

// MarkShipped is a convenience that routes through the transition table.
func (o *Order) MarkShipped(actor Actor, force bool) (bool, error) {
	return o.ChangeStatus(Shipped, actor, ChangeStatusOptions{Force: force})
}

// MarkDelivered is a convenience that routes through the transition table.
func (o *Order) MarkDelivered(actor Actor, force bool) (bool, error) {
	return o.ChangeStatus(Delivered, actor, ChangeStatusOptions{Force: force})
}

// UpdateShipping sets the carrier and tracking code.
// Empty arguments leave the corresponding field unchanged. Fails with
// ErrShippingDetailsFrozen once the parcel is delivered or returned.
// Returns whether anything actually changed.
func (o *Order) UpdateShipping(carrier, trackingCode string) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if o.fulfillment.isFurtherAlongThan(FulfillmentShipped) {
		return false, ErrShippingDetailsFrozen
	}

	changed := false
	if carrier != "" && carrier != o.carrier {
		o.carrier = carrier
		changed = true
	}
	if trackingCode != "" && trackingCode != o.trackingCode {
		o.trackingCode = trackingCode
		changed = true
	}

	if changed {
		o.updatedAt = time.Now().UTC()
	}
	return changed, nil
}

// UpdatePayment sets the payment state and, optionally, the gateway
// transaction reference. The state must be a valid PaymentState; the payment
// axis has no adjacency table of its own.
func (o *Order) UpdatePayment(state PaymentState, transactionRef string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := state.Validate(); err != nil {
		return err
	}

	o.payment = state
	if transactionRef != "" {
		o.transactionRef = transactionRef
	}
	o.updatedAt = time.Now().UTC()
	return nil
}

// AddNote queues a note-only audit row (from == to == current status).
// At least one of the two notes must be non-empty.
func (o *Order) AddNote(actor Actor, noteInternal, noteCustomer string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(noteInternal) == "" && strings.TrimSpace(noteCustomer) == "" {
		return ErrNoteIsRequired
	}

	now := time.Now().UTC()
	current := o.status
	o.updatedAt = now
	o.pendingChanges = append(o.pendingChanges,
		newStatusChange(&current, current, actor, false, noteInternal, noteCustomer, now))

	return nil
}

// advanceFulfillmentFor applies the fulfillment stage implied by a lifecycle
// status, only ever moving forward.
func (o *Order) advanceFulfillmentFor(newStatus Status) {
	var implied FulfillmentStatus
	switch newStatus {
	case Packing:
		implied = FulfillmentPacking
	case Shipped:
		implied = FulfillmentShipped
	case Delivered:
		implied = FulfillmentDelivered
	case Returned:
		implied = FulfillmentReturned
	default:
		return
	}

	if implied.isFurtherAlongThan(o.fulfillment) {
		o.fulfillment = implied
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("order code")
	}
	o.code = code
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}
	o.totals = totals
	return nil
}

func (o *Order) setSnapshots(buyer, shipping, billing PartySnapshot) error {
	if err := errors.Join(
		buyer.Validate(),
		shipping.Validate(),
		billing.Validate(),
	); err != nil {
		return err
	}
	o.buyer = buyer
	o.shipping = shipping
	o.billing = billing
	return nil
}
