package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrAddOrderNoteCommandIsNotConstructed = errors.New(
		"AddOrderNoteCommand must be created via NewAddOrderNoteCommand constructor",
	)
)

// AddOrderNoteCommand represents a request to append a note-only history row
// to an order. At least one of the two notes must be non-empty.
type AddOrderNoteCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	noteInternal string
	noteCustomer string
	actor        order.Actor

	guard guard.ConstructorGuard
}

// NewAddOrderNoteCommand creates a note command.
func NewAddOrderNoteCommand(
	orderID kernel.UUID,
	actor order.Actor,
	noteInternal, noteCustomer string,
) (AddOrderNoteCommand, error) {
	cmd := AddOrderNoteCommand{
		noteInternal: noteInternal,
		noteCustomer: noteCustomer,
		guard:        guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(noteInternal) == "" && strings.TrimSpace(noteCustomer) == "" {
		return AddOrderNoteCommand{}, order.ErrNoteIsRequired
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return AddOrderNoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderNoteCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AddOrderNoteCommand) OrderID() kernel.UUID { return c.orderID }

// NoteInternal returns the staff-only note, if any.
func (c AddOrderNoteCommand) NoteInternal() string { return c.noteInternal }

// NoteCustomer returns the customer-facing note, if any.
func (c AddOrderNoteCommand) NoteCustomer() string { return c.noteCustomer }

// Actor returns the identity adding the note.
func (c AddOrderNoteCommand) Actor() order.Actor { return c.actor }

func (c *AddOrderNoteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AddOrderNoteCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
