// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between the domain model and its relational shape.
package orderrepo

import (
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the database row backing an order aggregate. Party snapshots
// are stored as jsonb documents captured at checkout time; totals are kept
// in discrete numeric columns so reports can aggregate them in SQL.
//
// Timestamps are owned by the domain, so GORM's automatic time tracking is
// switched off.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code              string          `gorm:"uniqueIndex;not null"`
	Status            int             `gorm:"index;not null"`
	PaymentState      int             `gorm:"not null"`
	FulfillmentStatus int             `gorm:"not null"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Discount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Tax               decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ShippingCost      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency          string          `gorm:"type:char(3);not null"`
	Buyer             datatypes.JSON  `gorm:"not null"`
	Shipping          datatypes.JSON  `gorm:"not null"`
	Billing           datatypes.JSON  `gorm:"not null"`
	Carrier           string
	TrackingCode      string
	TransactionRef    string
	CancelReason      string
	Version           int64     `gorm:"not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusChangeDTO is one append-only audit trail row. FromStatus is null for
// the row written at order creation; for note-only rows it equals ToStatus.
// ActorID is null when the change was applied by the system.
//
// Seq is a database-assigned insertion sequence. Timestamps from a single
// transaction can collide at microsecond precision, so ordering the trail
// relies on Seq instead.
type StatusChangeDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq          int64      `gorm:"autoIncrement;uniqueIndex"`
	OrderID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	FromStatus   *int       `gorm:"type:smallint"`
	ToStatus     int        `gorm:"type:smallint;not null"`
	ActorID      *uuid.UUID `gorm:"type:uuid"`
	ActorName    string     `gorm:"not null"`
	Forced       bool       `gorm:"not null"`
	NoteInternal string
	NoteCustomer string
	CreatedAt    time.Time `gorm:"index;autoCreateTime:false"`
}

// TableName overrides GORM's default naming convention.
func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

// partyJSON fixes the jsonb document shape for party snapshots. Keys are
// part of the stored contract, so they are spelled out rather than derived
// from the Go field names.
type partyJSON struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	AddressLine string `json:"address_line,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	Country     string `json:"country,omitempty"`
}

func marshalParty(p order.PartySnapshot) (datatypes.JSON, error) {
	f := p.Fields()
	raw, err := json.Marshal(partyJSON{
		Name:        f.Name,
		Company:     f.Company,
		Email:       f.Email,
		Phone:       f.Phone,
		AddressLine: f.AddressLine,
		City:        f.City,
		Province:    f.Province,
		PostalCode:  f.PostalCode,
		Country:     f.Country,
	})
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func unmarshalParty(raw datatypes.JSON) (order.PartySnapshot, error) {
	var j partyJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return order.PartySnapshot{}, err
	}

	return order.NewPartySnapshot(order.PartySnapshotFields{
		Name:        j.Name,
		Company:     j.Company,
		Email:       j.Email,
		Phone:       j.Phone,
		AddressLine: j.AddressLine,
		City:        j.City,
		Province:    j.Province,
		PostalCode:  j.PostalCode,
		Country:     j.Country,
	})
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	buyer, err := marshalParty(aggregate.Buyer())
	if err != nil {
		return OrderDTO{}, err
	}
	shipping, err := marshalParty(aggregate.Shipping())
	if err != nil {
		return OrderDTO{}, err
	}
	billing, err := marshalParty(aggregate.Billing())
	if err != nil {
		return OrderDTO{}, err
	}

	totals := aggregate.Totals()
	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		Code:              aggregate.Code(),
		Status:            int(aggregate.Status()),
		PaymentState:      int(aggregate.PaymentState()),
		FulfillmentStatus: int(aggregate.FulfillmentStatus()),
		Subtotal:          totals.Subtotal().Amount(),
		Discount:          totals.Discount().Amount(),
		Tax:               totals.Tax().Amount(),
		ShippingCost:      totals.ShippingCost().Amount(),
		Total:             totals.Total().Amount(),
		Currency:          totals.Currency(),
		Buyer:             buyer,
		Shipping:          shipping,
		Billing:           billing,
		Carrier:           aggregate.Carrier(),
		TrackingCode:      aggregate.TrackingCode(),
		TransactionRef:    aggregate.TransactionRef(),
		CancelReason:      aggregate.CancelReason(),
		Version:           aggregate.Version(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}, nil
}

// changeFromDomain converts a pending audit entry to its database row.
func changeFromDomain(orderID kernel.UUID, change order.StatusChange) StatusChangeDTO {
	var from *int
	if f := change.From(); f != nil {
		v := int(*f)
		from = &v
	}

	var actorID *uuid.UUID
	if id := change.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return StatusChangeDTO{
		ID:           change.ID().Bytes(),
		OrderID:      orderID.Bytes(),
		FromStatus:   from,
		ToStatus:     int(change.To()),
		ActorID:      actorID,
		ActorName:    change.ActorName(),
		Forced:       change.Forced(),
		NoteInternal: change.NoteInternal(),
		NoteCustomer: change.NoteCustomer(),
		CreatedAt:    change.CreatedAt(),
	}
}

// toDomain reconstructs the order aggregate from its row using RestoreOrder,
// re-validating enums and snapshots on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyer, err := unmarshalParty(dto.Buyer)
	if err != nil {
		return nil, err
	}
	shipping, err := unmarshalParty(dto.Shipping)
	if err != nil {
		return nil, err
	}
	billing, err := unmarshalParty(dto.Billing)
	if err != nil {
		return nil, err
	}

	totals, err := totalsFromColumns(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		Code:              dto.Code,
		Status:            order.Status(dto.Status),
		PaymentState:      order.PaymentState(dto.PaymentState),
		FulfillmentStatus: order.FulfillmentStatus(dto.FulfillmentStatus),
		Totals:            totals,
		Buyer:             buyer,
		Shipping:          shipping,
		Billing:           billing,
		Carrier:           dto.Carrier,
		TrackingCode:      dto.TrackingCode,
		TransactionRef:    dto.TransactionRef,
		CancelReason:      dto.CancelReason,
		Version:           dto.Version,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}

func totalsFromColumns(dto OrderDTO) (order.Totals, error) {
	subtotal, err := kernel.NewMoney(dto.Subtotal, dto.Currency)
	if err != nil {
		return order.Totals{}, err
	}
	discount, err := kernel.NewMoney(dto.Discount, dto.Currency)
	if err != nil {
		return order.Totals{}, err
	}
	tax, err := kernel.NewMoney(dto.Tax, dto.Currency)
	if err != nil {
		return order.Totals{}, err
	}
	shippingCost, err := kernel.NewMoney(dto.ShippingCost, dto.Currency)
	if err != nil {
		return order.Totals{}, err
	}
	total, err := kernel.NewMoney(dto.Total, dto.Currency)
	if err != nil {
		return order.Totals{}, err
	}

	return order.NewTotals(subtotal, discount, tax, shippingCost, total)
}
