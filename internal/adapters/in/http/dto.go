package http

import (
	"encoding/json"
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Request bodies.

type moneyBreakdownRequest struct {
	Subtotal     string `json:"subtotal"`
	Discount     string `json:"discount"`
	Tax          string `json:"tax"`
	ShippingCost string `json:"shippingCost"`
	Total        string `json:"total"`
	Currency     string `json:"currency"`
}

type partyRequest struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

type createOrderRequest struct {
	Code     string                `json:"code"`
	AsDraft  bool                  `json:"asDraft"`
	Totals   moneyBreakdownRequest `json:"totals"`
	Buyer    partyRequest          `json:"buyer"`
	Shipping partyRequest          `json:"shipping"`
	Billing  partyRequest          `json:"billing"`
}

type changeStatusRequest struct {
	NewStatus      string `json:"newStatus"`
	NoteInternal   string `json:"noteInternal"`
	NoteCustomer   string `json:"noteCustomer"`
	CancelReason   string `json:"cancelReason"`
	Force          bool   `json:"force"`
	NotifyCustomer bool   `json:"notifyCustomer"`
}

type updateShippingRequest struct {
	Carrier       string `json:"carrier"`
	TrackingCode  string `json:"trackingCode"`
	MarkShipped   bool   `json:"markShipped"`
	MarkDelivered bool   `json:"markDelivered"`
	Force         bool   `json:"force"`
}

type updatePaymentRequest struct {
	PaymentState   string `json:"paymentState"`
	TransactionRef string `json:"transactionRef"`
}

type addNoteRequest struct {
	NoteInternal string `json:"noteInternal"`
	NoteCustomer string `json:"noteCustomer"`
}

// Response bodies.

type moneyBreakdownResponse struct {
	Subtotal     string `json:"subtotal"`
	Discount     string `json:"discount"`
	Tax          string `json:"tax"`
	ShippingCost string `json:"shippingCost"`
	Total        string `json:"total"`
	Currency     string `json:"currency"`
}

type partyResponse struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	AddressLine string `json:"addressLine,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`
}

type orderResponse struct {
	ID                string                 `json:"id"`
	Code              string                 `json:"code"`
	Status            string                 `json:"status"`
	PaymentState      string                 `json:"paymentState"`
	FulfillmentStatus string                 `json:"fulfillmentStatus"`
	Totals            moneyBreakdownResponse `json:"totals"`
	Buyer             partyResponse          `json:"buyer"`
	Shipping          partyResponse          `json:"shipping"`
	Billing           partyResponse          `json:"billing"`
	Carrier           string                 `json:"carrier,omitempty"`
	TrackingCode      string                 `json:"trackingCode,omitempty"`
	TransactionRef    string                 `json:"transactionRef,omitempty"`
	CancelReason      string                 `json:"cancelReason,omitempty"`
	AllowedNext       []string               `json:"allowedNext"`
	Version           int64                  `json:"version"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

type statusChangeResponse struct {
	ID           string    `json:"id"`
	FromStatus   string    `json:"fromStatus,omitempty"`
	ToStatus     string    `json:"toStatus"`
	ActorName    string    `json:"actorName"`
	Forced       bool      `json:"forced"`
	NoteInternal string    `json:"noteInternal,omitempty"`
	NoteCustomer string    `json:"noteCustomer,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type historyResponse struct {
	Changes []statusChangeResponse `json:"changes"`
}

// Mapping helpers.

func (r moneyBreakdownRequest) toTotals() (order.Totals, error) {
	parse := func(v string) (kernel.Money, error) {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return kernel.Money{}, errs.NewValueIsInvalidError("totals")
		}
		return kernel.NewMoney(amount, r.Currency)
	}

	subtotal, err := parse(r.Subtotal)
	if err != nil {
		return order.Totals{}, err
	}
	discount, err := parse(r.Discount)
	if err != nil {
		return order.Totals{}, err
	}
	tax, err := parse(r.Tax)
	if err != nil {
		return order.Totals{}, err
	}
	shippingCost, err := parse(r.ShippingCost)
	if err != nil {
		return order.Totals{}, err
	}
	total, err := parse(r.Total)
	if err != nil {
		return order.Totals{}, err
	}

	return order.NewTotals(subtotal, discount, tax, shippingCost, total)
}

func (r partyRequest) toSnapshot() (order.PartySnapshot, error) {
	return order.NewPartySnapshot(order.PartySnapshotFields{
		Name:        r.Name,
		Company:     r.Company,
		Email:       r.Email,
		Phone:       r.Phone,
		AddressLine: r.AddressLine,
		City:        r.City,
		Province:    r.Province,
		PostalCode:  r.PostalCode,
		Country:     r.Country,
	})
}

func partyResponseFromSnapshot(p order.PartySnapshot) partyResponse {
	f := p.Fields()
	return partyResponse{
		Name:        f.Name,
		Company:     f.Company,
		Email:       f.Email,
		Phone:       f.Phone,
		AddressLine: f.AddressLine,
		City:        f.City,
		Province:    f.Province,
		PostalCode:  f.PostalCode,
		Country:     f.Country,
	}
}

// orderResponseFromAggregate renders a mutated aggregate for command
// endpoint responses.
func orderResponseFromAggregate(o *order.Order) orderResponse {
	totals := o.Totals()

	allowedNext := make([]string, 0)
	for _, next := range o.Status().AllowedNext() {
		allowedNext = append(allowedNext, next.String())
	}

	return orderResponse{
		ID:                o.ID().String(),
		Code:              o.Code(),
		Status:            o.Status().String(),
		PaymentState:      o.PaymentState().String(),
		FulfillmentStatus: o.FulfillmentStatus().String(),
		Totals: moneyBreakdownResponse{
			Subtotal:     totals.Subtotal().Amount().String(),
			Discount:     totals.Discount().Amount().String(),
			Tax:          totals.Tax().Amount().String(),
			ShippingCost: totals.ShippingCost().Amount().String(),
			Total:        totals.Total().Amount().String(),
			Currency:     totals.Currency(),
		},
		Buyer:          partyResponseFromSnapshot(o.Buyer()),
		Shipping:       partyResponseFromSnapshot(o.Shipping()),
		Billing:        partyResponseFromSnapshot(o.Billing()),
		Carrier:        o.Carrier(),
		TrackingCode:   o.TrackingCode(),
		TransactionRef: o.TransactionRef(),
		CancelReason:   o.CancelReason(),
		AllowedNext:    allowedNext,
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

// orderResponseFromQuery renders the read-side projection for GET responses.
func orderResponseFromQuery(q queries.GetOrderQueryResponse) orderResponse {
	resp := orderResponse{
		ID:                q.ID.String(),
		Code:              q.Code,
		Status:            q.Status,
		PaymentState:      q.PaymentState,
		FulfillmentStatus: q.FulfillmentStatus,
		Totals: moneyBreakdownResponse{
			Subtotal:     q.Subtotal.String(),
			Discount:     q.Discount.String(),
			Tax:          q.Tax.String(),
			ShippingCost: q.ShippingCost.String(),
			Total:        q.Total.String(),
			Currency:     q.Currency,
		},
		Carrier:        q.Carrier,
		TrackingCode:   q.TrackingCode,
		TransactionRef: q.TransactionRef,
		CancelReason:   q.CancelReason,
		AllowedNext:    q.AllowedNext,
		Version:        q.Version,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
	if resp.AllowedNext == nil {
		resp.AllowedNext = make([]string, 0)
	}

	resp.Buyer = partyResponseFromJSON(q.Buyer)
	resp.Shipping = partyResponseFromJSON(q.Shipping)
	resp.Billing = partyResponseFromJSON(q.Billing)
	return resp
}

func partyResponseFromJSON(raw json.RawMessage) partyResponse {
	var stored struct {
		Name        string `json:"name"`
		Company     string `json:"company"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		AddressLine string `json:"address_line"`
		City        string `json:"city"`
		Province    string `json:"province"`
		PostalCode  string `json:"postal_code"`
		Country     string `json:"country"`
	}
	// Snapshots were validated on the way in; a decode failure here leaves
	// the party empty rather than failing the whole read.
	_ = json.Unmarshal(raw, &stored)

	return partyResponse{
		Name:        stored.Name,
		Company:     stored.Company,
		Email:       stored.Email,
		Phone:       stored.Phone,
		AddressLine: stored.AddressLine,
		City:        stored.City,
		Province:    stored.Province,
		PostalCode:  stored.PostalCode,
		Country:     stored.Country,
	}
}

func historyResponseFromQuery(q queries.GetStatusHistoryQueryResponse) historyResponse {
	changes := make([]statusChangeResponse, 0, len(q.Changes))
	for _, c := range q.Changes {
		changes = append(changes, statusChangeResponse{
			ID:           c.ID.String(),
			FromStatus:   c.FromStatus,
			ToStatus:     c.ToStatus,
			ActorName:    c.ActorName,
			Forced:       c.Forced,
			NoteInternal: c.NoteInternal,
			NoteCustomer: c.NoteCustomer,
			CreatedAt:    c.CreatedAt,
		})
	}
	return historyResponse{Changes: changes}
}
