package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// StatusChange is one append-only audit row in an order's status history.
// Rows are created exclusively by the Order aggregate as part of a mutation
// and persisted in the same transaction as the order itself; they are never
// updated or deleted afterwards.
//
// A row with equal from and to statuses is a note-only entry: it records
// internal or customer-facing notes without a lifecycle change. The initial
// row of an order has a nil from status.
type StatusChange struct {
	id           kernel.UUID
	from         *Status
	to           Status
	actorID      *kernel.UUID
	actorName    string
	forced       bool
	noteInternal string
	noteCustomer string
	createdAt    time.Time
}

// newStatusChange records a transition performed by actor at the given time.
// from is nil for the initial row written at order creation.
func newStatusChange(from *Status, to Status, actor Actor, forced bool, noteInternal, noteCustomer string, at time.Time) StatusChange {
	return StatusChange{
		id:           kernel.NewUUID(),
		from:         from,
		to:           to,
		actorID:      actor.ID(),
		actorName:    actor.Name(),
		forced:       forced,
		noteInternal: noteInternal,
		noteCustomer: noteCustomer,
		createdAt:    at,
	}
}

// ID returns the audit row's identifier.
func (c StatusChange) ID() kernel.UUID { return c.id }

// From returns the status the order left, or nil for the initial row.
func (c StatusChange) From() *Status { return c.from }

// To returns the status the order entered.
func (c StatusChange) To() Status { return c.to }

// ActorID returns the acting user's ID, or nil for system-initiated changes.
func (c StatusChange) ActorID() *kernel.UUID { return c.actorID }

// ActorName returns the acting user's display identity captured at write time.
func (c StatusChange) ActorName() string { return c.actorName }

// Forced reports whether the transition bypassed the adjacency table.
func (c StatusChange) Forced() bool { return c.forced }

// NoteInternal returns the staff-only note, if any.
func (c StatusChange) NoteInternal() string { return c.noteInternal }

// NoteCustomer returns the customer-facing note, if any.
func (c StatusChange) NoteCustomer() string { return c.noteCustomer }

// CreatedAt returns when the change was recorded.
func (c StatusChange) CreatedAt() time.Time { return c.createdAt }

// IsNoteOnly reports whether the row records notes without a status change.
func (c StatusChange) IsNoteOnly() bool {
	return c.from != nil && *c.from == c.to
}
