package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// UpdatePaymentCommandHandler sets the payment axis of an order.
// The payment state has no adjacency table; the aggregate only validates
// that the state is a defined one.
type UpdatePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdatePaymentCommandHandler creates a handler for payment updates.
func NewUpdatePaymentCommandHandler(uowFactory OrderUoWFactory) UpdatePaymentCommandHandler {
	return UpdatePaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment update and returns the updated order.
func (h *UpdatePaymentCommandHandler) Handle(ctx context.Context, cmd UpdatePaymentCommand) (*order.Order, error) {
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

			if err = aggregate.UpdatePayment(cmd.PaymentState(), cmd.TransactionRef()); err != nil {
				return nil, false, err
			}

			if err = repo.Update(ctx, aggregate); err != nil {
				return nil, false, err
			}

			return aggregate, true, nil
		})
}
