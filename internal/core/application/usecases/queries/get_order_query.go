// Package queries contains read-only projections for the order lifecycle.
// Query handlers read the database directly and return plain response
// structs; they never touch the domain aggregate or mutate state.
package queries

import (
	"encoding/json"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery represents a request for a single order projection.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full order projection returned to the API.
// Party snapshots stay opaque JSON at this boundary; they were validated
// when the order was created.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	Code              string
	Status            string
	PaymentState      string
	FulfillmentStatus string
	Subtotal          decimal.Decimal
	Discount          decimal.Decimal
	Tax               decimal.Decimal
	ShippingCost      decimal.Decimal
	Total             decimal.Decimal
	Currency          string
	Buyer             json.RawMessage
	Shipping          json.RawMessage
	Billing           json.RawMessage
	Carrier           string
	TrackingCode      string
	TransactionRef    string
	CancelReason      string
	AllowedNext       []string
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
