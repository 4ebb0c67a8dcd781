package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrUpdateShippingCommandIsNotConstructed = errors.New(
		"UpdateShippingCommand must be created via NewUpdateShippingCommand constructor",
	)
	ErrShippingCommandIsEmpty = errs.NewValueIsRequiredError(
		"at least one of carrier, trackingCode, markShipped, markDelivered",
	)
	ErrMarkShippedAndDelivered = errs.NewValueIsInvalidError(
		"markShipped and markDelivered cannot both be set",
	)
)

// UpdateShippingCommand represents a request to update an order's shipping
// details and, optionally, advance its lifecycle via the markShipped /
// markDelivered conveniences. The conveniences route through the same
// transition validator as a direct status change.
type UpdateShippingCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	carrier       string
	trackingCode  string
	markShipped   bool
	markDelivered bool
	force         bool
	actor         order.Actor

	guard guard.ConstructorGuard
}

// NewUpdateShippingCommand creates a shipping update command.
// The command must carry at least one effect, and the two mark conveniences
// are mutually exclusive.
func NewUpdateShippingCommand(
	orderID kernel.UUID,
	actor order.Actor,
	carrier, trackingCode string,
	markShipped, markDelivered, force bool,
) (UpdateShippingCommand, error) {
	cmd := UpdateShippingCommand{
		carrier:       carrier,
		trackingCode:  trackingCode,
		markShipped:   markShipped,
		markDelivered: markDelivered,
		force:         force,
		guard:         guard.NewConstructorGuard(),
	}

	if carrier == "" && trackingCode == "" && !markShipped && !markDelivered {
		return UpdateShippingCommand{}, ErrShippingCommandIsEmpty
	}
	if markShipped && markDelivered {
		return UpdateShippingCommand{}, ErrMarkShippedAndDelivered
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return UpdateShippingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShippingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShippingCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c UpdateShippingCommand) OrderID() kernel.UUID { return c.orderID }

// Carrier returns the carrier name, empty when unchanged.
func (c UpdateShippingCommand) Carrier() string { return c.carrier }

// TrackingCode returns the tracking code, empty when unchanged.
func (c UpdateShippingCommand) TrackingCode() string { return c.trackingCode }

// MarkShipped reports whether the order should transition to SHIPPED.
func (c UpdateShippingCommand) MarkShipped() bool { return c.markShipped }

// MarkDelivered reports whether the order should transition to DELIVERED.
func (c UpdateShippingCommand) MarkDelivered() bool { return c.markDelivered }

// Force reports whether the transition may bypass the adjacency rule.
func (c UpdateShippingCommand) Force() bool { return c.force }

// Actor returns the identity requesting the update.
func (c UpdateShippingCommand) Actor() order.Actor { return c.actor }

func (c *UpdateShippingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateShippingCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
