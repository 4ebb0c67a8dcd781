package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// ExpireStaleOrdersCommandHandler cancels orders whose confirmation window has
// lapsed. Each cancellation goes through the same transition validator as an
// admin-initiated one, as the system actor with an explicit cancel reason, so
// the audit trail shows exactly what happened and why.
//
// Orders that collide with a concurrent admin edit are skipped; the next run
// picks them up again if they are still stale.
type ExpireStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewExpireStaleOrdersCommandHandler creates a handler for stale-order expiry.
func NewExpireStaleOrdersCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) ExpireStaleOrdersCommandHandler {
	return ExpireStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "expire_stale_orders"),
	}
}

// Handle cancels every stale unconfirmed order and returns how many were expired.
func (h *ExpireStaleOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-cmd.Window())
	reason := "confirmation window expired"

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	stale, err := repo.GetStaleInStatus(ctx, order.PendingConfirmation, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, aggregate := range stale {
		changed, changeErr := aggregate.ChangeStatus(order.Canceled, order.SystemActor(), order.ChangeStatusOptions{
			CancelReason: reason,
			NoteCustomer: "Your order was canceled because it was not confirmed in time.",
		})
		if changeErr != nil || !changed {
			continue
		}

		if updateErr := repo.Update(ctx, aggregate); updateErr != nil {
			h.logger.WarnContext(ctx, "skipping stale order",
				"order_code", aggregate.Code(),
				"error", updateErr)
			continue
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if expired > 0 {
		h.logger.InfoContext(ctx, "expired stale orders", "count", expired)
	}
	return expired, nil
}
