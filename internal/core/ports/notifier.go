package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// StatusNotification describes a committed status change to be relayed to
// the customer. Only the customer-facing note is included; internal notes
// never leave the back office.
type StatusNotification struct {
	OrderCode    string
	From         order.Status
	To           order.Status
	NoteCustomer string
}

// Notifier is the outbound channel informing customers of status changes.
// Dispatch is fire-and-forget: it runs after the transaction commits, its
// failure is logged but never rolls back or retries the transition.
type Notifier interface {
	NotifyStatusChanged(ctx context.Context, n StatusNotification) error
}
