// Package guard implements the constructor guard pattern used by command
// value objects. A zero-value struct fails validation until it has been
// created through its designated constructor, preventing callers from
// bypassing field validation with a struct literal.
package guard

import "errors"

// ErrNotConstructed is returned by Validate when no specific error is supplied
// and the guarded object was not created via its constructor.
var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// Embed it as a field and initialize it with NewConstructorGuard inside
// the object's constructor. The zero value is invalid.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil when the guard was created via NewConstructorGuard.
// Otherwise it returns notConstructedErr, or ErrNotConstructed when
// notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}
	if notConstructedErr != nil {
		return notConstructedErr
	}
	return ErrNotConstructed
}
