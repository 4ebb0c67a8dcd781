package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// lifecycle status. The transition itself is validated by the aggregate
// against the transition table; the command only validates shape.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	newStatus      order.Status
	noteInternal   string
	noteCustomer   string
	cancelReason   string
	force          bool
	notifyCustomer bool
	actor          order.Actor

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a status change command.
// The target status must be a defined lifecycle stage and the actor must be
// properly constructed; transition legality is the aggregate's concern.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	actor order.Actor,
	noteInternal, noteCustomer, cancelReason string,
	force, notifyCustomer bool,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		noteInternal:   noteInternal,
		noteCustomer:   noteCustomer,
		cancelReason:   cancelReason,
		force:          force,
		notifyCustomer: notifyCustomer,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		newStatus.Validate(),
		cmd.setActor(actor),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	cmd.newStatus = newStatus

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// NewStatus returns the requested lifecycle status.
func (c ChangeOrderStatusCommand) NewStatus() order.Status { return c.newStatus }

// NoteInternal returns the staff-only note, if any.
func (c ChangeOrderStatusCommand) NoteInternal() string { return c.noteInternal }

// NoteCustomer returns the customer-facing note, if any.
func (c ChangeOrderStatusCommand) NoteCustomer() string { return c.noteCustomer }

// CancelReason returns the cancellation reason, if any.
func (c ChangeOrderStatusCommand) CancelReason() string { return c.cancelReason }

// Force reports whether the adjacency rule should be bypassed.
func (c ChangeOrderStatusCommand) Force() bool { return c.force }

// NotifyCustomer reports whether the customer should be informed on success.
func (c ChangeOrderStatusCommand) NotifyCustomer() bool { return c.notifyCustomer }

// Actor returns the identity requesting the change.
func (c ChangeOrderStatusCommand) Actor() order.Actor { return c.actor }

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
