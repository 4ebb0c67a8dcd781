package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrUpdatePaymentCommandIsNotConstructed = errors.New(
		"UpdatePaymentCommand must be created via NewUpdatePaymentCommand constructor",
	)
)

// UpdatePaymentCommand represents a request to set an order's payment state
// and, optionally, the gateway transaction reference.
type UpdatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	paymentState   order.PaymentState
	transactionRef string
	actor          order.Actor

	guard guard.ConstructorGuard
}

// NewUpdatePaymentCommand creates a payment update command.
// The payment state must be one of the defined states.
func NewUpdatePaymentCommand(
	orderID kernel.UUID,
	actor order.Actor,
	paymentState order.PaymentState,
	transactionRef string,
) (UpdatePaymentCommand, error) {
	cmd := UpdatePaymentCommand{
		transactionRef: transactionRef,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		paymentState.Validate(),
		cmd.setActor(actor),
	); err != nil {
		return UpdatePaymentCommand{}, err
	}
	cmd.paymentState = paymentState

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c UpdatePaymentCommand) OrderID() kernel.UUID { return c.orderID }

// PaymentState returns the requested payment state.
func (c UpdatePaymentCommand) PaymentState() order.PaymentState { return c.paymentState }

// TransactionRef returns the gateway transaction reference, if any.
func (c UpdatePaymentCommand) TransactionRef() string { return c.transactionRef }

// Actor returns the identity requesting the update.
func (c UpdatePaymentCommand) Actor() order.Actor { return c.actor }

func (c *UpdatePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdatePaymentCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
