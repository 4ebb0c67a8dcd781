package queries

import (
	"context"
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order projection straight from the
// database, bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) (GetOrderQueryHandler, error) {
	if db == nil {
		return GetOrderQueryHandler{}, errs.NewValueIsRequiredError("db")
	}

	return GetOrderQueryHandler{db: db}, nil
}

type orderRow struct {
	Code              string
	Status            int
	PaymentState      int
	FulfillmentStatus int
	Subtotal          decimal.Decimal
	Discount          decimal.Decimal
	Tax               decimal.Decimal
	ShippingCost      decimal.Decimal
	Total             decimal.Decimal
	Currency          string
	Buyer             []byte
	Shipping          []byte
	Billing           []byte
	Carrier           string
	TrackingCode      string
	TransactionRef    string
	CancelReason      string
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (h GetOrderQueryHandler) Handle(
	ctx context.Context, query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT code, status, payment_state, fulfillment_status,
		       subtotal, discount, tax, shipping_cost, total, currency,
		       buyer, shipping, billing,
		       carrier, tracking_code, transaction_ref, cancel_reason,
		       version, created_at, updated_at
		FROM orders
		WHERE id = ?`,
		query.OrderID().Bytes(),
	).Scan(&row)
	if result.Error != nil {
		return GetOrderQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError(
			"orderID", query.OrderID().Bytes())
	}

	status := order.Status(row.Status)
	resp := GetOrderQueryResponse{
		ID:                query.OrderID(),
		Code:              row.Code,
		Status:            status.String(),
		PaymentState:      order.PaymentState(row.PaymentState).String(),
		FulfillmentStatus: order.FulfillmentStatus(row.FulfillmentStatus).String(),
		Subtotal:          row.Subtotal,
		Discount:          row.Discount,
		Tax:               row.Tax,
		ShippingCost:      row.ShippingCost,
		Total:             row.Total,
		Currency:          row.Currency,
		Buyer:             json.RawMessage(row.Buyer),
		Shipping:          json.RawMessage(row.Shipping),
		Billing:           json.RawMessage(row.Billing),
		Carrier:           row.Carrier,
		TrackingCode:      row.TrackingCode,
		TransactionRef:    row.TransactionRef,
		CancelReason:      row.CancelReason,
		Version:           row.Version,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}

	for _, next := range status.AllowedNext() {
		resp.AllowedNext = append(resp.AllowedNext, next.String())
	}

	return resp, nil
}
