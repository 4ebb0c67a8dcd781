package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to register a new order.
// It carries the identity, monetary snapshot and party snapshots that are
// fixed at creation time, plus the actor recorded on the initial history row.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	code     string
	totals   order.Totals
	buyer    order.PartySnapshot
	shipping order.PartySnapshot
	billing  order.PartySnapshot
	asDraft  bool
	actor    order.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// All snapshots and the monetary totals must be properly constructed
// value objects; the code must be non-empty.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	code string,
	totals order.Totals,
	buyer, shipping, billing order.PartySnapshot,
	asDraft bool,
	actor order.Actor,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		code:    code,
		asDraft: asDraft,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		validateCode(code),
		cmd.setTotals(totals),
		cmd.setSnapshots(buyer, shipping, billing),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Code returns the human-facing order code.
func (c CreateOrderCommand) Code() string { return c.code }

// Totals returns the monetary snapshot.
func (c CreateOrderCommand) Totals() order.Totals { return c.totals }

// Buyer returns the buyer identity snapshot.
func (c CreateOrderCommand) Buyer() order.PartySnapshot { return c.buyer }

// Shipping returns the shipping address snapshot.
func (c CreateOrderCommand) Shipping() order.PartySnapshot { return c.shipping }

// Billing returns the billing address snapshot.
func (c CreateOrderCommand) Billing() order.PartySnapshot { return c.billing }

// AsDraft reports whether the order starts in DRAFT instead of PENDING_CONFIRMATION.
func (c CreateOrderCommand) AsDraft() bool { return c.asDraft }

// Actor returns the identity creating the order.
func (c CreateOrderCommand) Actor() order.Actor { return c.actor }

func validateCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("order code")
	}
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTotals(totals order.Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}
	c.totals = totals
	return nil
}

func (c *CreateOrderCommand) setSnapshots(buyer, shipping, billing order.PartySnapshot) error {
	if err := errors.Join(
		buyer.Validate(),
		shipping.Validate(),
		billing.Validate(),
	); err != nil {
		return err
	}
	c.buyer = buyer
	c.shipping = shipping
	c.billing = billing
	return nil
}

func (c *CreateOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
