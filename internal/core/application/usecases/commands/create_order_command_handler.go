package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// The new order starts in PENDING_CONFIRMATION (or DRAFT) and is persisted
// together with its initial history row in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runOrderMutation(ctx, h.uowFactory,
		func(ctx context.Context, uow OrderUoW) (*order.Order, bool, error) {
			aggregate, err := order.NewOrder(
				cmd.OrderID(),
				cmd.Code(),
				cmd.Totals(),
				cmd.Buyer(),
				cmd.Shipping(),
				cmd.Billing(),
				cmd.AsDraft(),
				cmd.Actor(),
			)
			if err != nil {
				return nil, false, err
			}

			if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
				return nil, false, err
			}

			return aggregate, true, nil
		})
}
