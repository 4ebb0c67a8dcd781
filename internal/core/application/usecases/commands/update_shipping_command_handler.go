package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// UpdateShippingCommandHandler updates carrier/tracking details and applies
// the markShipped / markDelivered conveniences. Status changes go through the
// aggregate's transition validator, never directly to the status field, so
// the shipping endpoint cannot bypass the lifecycle rules.
type UpdateShippingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateShippingCommandHandler creates a handler for shipping updates.
func NewUpdateShippingCommandHandler(uowFactory OrderUoWFactory) UpdateShippingCommandHandler {
	return UpdateShippingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipping update and returns the updated order.
// When neither the details nor the status actually change, nothing is written.
func (h *UpdateShippingCommandHandler) Handle(ctx context.Context, cmd UpdateShippingCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runOrderMutation(ctx, h.uowFactory,
		func(ctx context.Context, uow OrderUoW) (*order.Order, bool, error) {
			repo := uow.OrderRepository()

			aggregate, err := repo.Get(ctx, cmd.OrderID())
			if err != nil {
				return nil, false, err
			}

			detailsChanged, err := aggregate.UpdateShipping(cmd.Carrier(), cmd.TrackingCode())
			if err != nil {
				return nil, false, err
			}

			statusChanged := false
			switch {
			case cmd.MarkShipped():
				statusChanged, err = aggregate.MarkShipped(cmd.Actor(), cmd.Force())
			case cmd.MarkDelivered():
				statusChanged, err = aggregate.MarkDelivered(cmd.Actor(), cmd.Force())
			}
			if err != nil {
				return nil, false, err
			}

			if !detailsChanged && !statusChanged {
				return aggregate, false, nil
			}

			if err = repo.Update(ctx, aggregate); err != nil {
				return nil, false, err
			}

			return aggregate, true, nil
		})
}
