// Package order provides domain entities and business logic for the order
// lifecycle. It implements the Order aggregate root with three independent
// status axes and an append-only status history.
//
// The package includes:
//   - Order: The aggregate root owning identity, snapshots and lifecycle state
//   - Status: A state machine backed by a single immutable transition table
//   - PaymentState / FulfillmentStatus: Independent financial and logistics axes
//   - StatusChange: One append-only audit row per transition or note
//   - Actor: The identity performing a mutation, captured on every audit row
//
// Key business rules:
//   - Every status mutation defers to the transition table; conveniences like
//     "mark shipped" route through the same validator
//   - Transition to CANCELED always requires a reason, even when forced
//   - Only admin actors may force a transition past the table; forced rows
//     are flagged in the history
//   - Monetary and party snapshots are fixed at creation and never recomputed
//   - Orders are never deleted; terminal statuses end the lifecycle
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
