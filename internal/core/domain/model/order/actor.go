package order

import (
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Role is the privilege level of an actor touching an order.
// Only RoleAdmin may force a transition past the adjacency table.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleSystem is the service itself (scheduled jobs, internal automation).
	RoleSystem

	// RoleStaff is a back-office operator with normal mutation rights.
	RoleStaff

	// RoleAdmin is a privileged operator allowed to force transitions.
	RoleAdmin
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleSystem:  "system",
		RoleStaff:   "staff",
		RoleAdmin:   "admin",
	}
}

// RoleFromString parses a role name ("system", "staff", "admin").
// Parsing is case-insensitive.
func RoleFromString(s string) (Role, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for role, name := range roleStrings() {
		if role != RoleUnknown && name == lower {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a known role", s),
	)
}

// String returns the lowercase role name.
func (r Role) String() string {
	if str, ok := roleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor is the identity performing an order mutation, as supplied by the
// authentication layer. It is captured on every audit row: the display name
// is denormalized at write time so the history stays stable even if the
// user record is later renamed or removed.
//
// The zero value is invalid; use NewActor or SystemActor.
type Actor struct {
	id   *kernel.UUID
	name string
	role Role
}

// NewActor creates an actor for an authenticated user.
// The display name must be non-empty and the role must be valid.
func NewActor(id kernel.UUID, name string, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor name")
	}
	if role != RoleStaff && role != RoleAdmin {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%s is not a valid role for a user actor", role),
		)
	}

	return Actor{id: &id, name: name, role: role}, nil
}

// SystemActor returns the actor used for system-initiated mutations.
// Its ID is nil, which persists as a NULL actor on audit rows.
func SystemActor() Actor {
	return Actor{name: "system", role: RoleSystem}
}

// ID returns the actor's user ID, or nil for the system actor.
func (a Actor) ID() *kernel.UUID {
	return a.id
}

// Name returns the actor's display identity.
func (a Actor) Name() string {
	return a.name
}

// Role returns the actor's privilege level.
func (a Actor) Role() Role {
	return a.role
}

// IsSystem reports whether this is the system actor.
func (a Actor) IsSystem() bool {
	return a.role == RoleSystem
}

// CanForce reports whether the actor may bypass the transition table.
func (a Actor) CanForce() bool {
	return a.role == RoleAdmin
}

// Validate returns an error for the zero value.
func (a Actor) Validate() error {
	if a.role == RoleUnknown {
		return errs.NewValueIsRequiredError("actor must be created via NewActor or SystemActor")
	}
	return nil
}
