package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetStatusHistoryQueryIsNotConstructed = errors.New(
	"GetStatusHistoryQuery must be created via NewGetStatusHistoryQuery constructor",
)

// GetStatusHistoryQuery requests the audit trail of a single order.
type GetStatusHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStatusHistoryQuery(orderID kernel.UUID) (GetStatusHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetStatusHistoryQuery{}, err
	}

	return GetStatusHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusHistoryQueryIsNotConstructed)
}

func (q GetStatusHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StatusChangeResponse is one audit trail entry. FromStatus is empty for
// the row written when the order was created and for note-only entries
// it equals ToStatus.
type StatusChangeResponse struct {
	ID           kernel.UUID
	FromStatus   string
	ToStatus     string
	ActorName    string
	Forced       bool
	NoteInternal string
	NoteCustomer string
	CreatedAt    time.Time
}

// GetStatusHistoryQueryResponse lists audit entries newest first.
type GetStatusHistoryQueryResponse struct {
	Changes []StatusChangeResponse
}
