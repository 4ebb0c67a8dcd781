// Package ports defines the contracts between the application core and
// infrastructure adapters, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by Update when the order row changed
// between the read and the write (optimistic version mismatch). The order was
// not modified; callers may re-read, re-validate and retry.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// ErrDuplicateOrderCode is returned by Add when another order already owns
// the human-facing code.
var ErrDuplicateOrderCode = errors.New("order code already exists")

// OrderRepository defines the persistence contract for order aggregates.
//
// Update persists the aggregate and its pending status-history rows in one
// statement batch; inside a unit-of-work transaction both succeed or both
// fail, which upholds the invariant that the order's current status always
// equals the newest history row.
type OrderRepository interface {
	// Add persists a new order aggregate together with its initial history row.
	// Fails if the order code already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and appends its
	// pending history rows. The write is guarded by the aggregate's loaded
	// version; a mismatch returns ErrConcurrentModification and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCode retrieves an order aggregate by its human-facing code.
	GetByCode(ctx context.Context, code string) (*order.Order, error)

	// GetStaleInStatus retrieves orders that have sat in the given status
	// since before the cutoff. Used by the expiry job to find unconfirmed
	// orders whose confirmation window has lapsed.
	GetStaleInStatus(ctx context.Context, status order.Status, before time.Time) ([]*order.Order, error)
}
