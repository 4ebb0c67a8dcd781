package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies a validated lifecycle transition.
//
// The handler loads the order, lets the aggregate validate and apply the
// transition, and persists the order row plus exactly one history row in the
// same transaction. An optimistic-lock collision triggers one automatic
// re-read and re-validation; the second collision is surfaced.
//
// When the command asks for customer notification, dispatch happens after the
// commit on a detached goroutine: a notification failure is logged and never
// affects the already-committed transition.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "change_order_status"),
	}
}

// Handle processes the status change command and returns the updated order.
// A same-status request succeeds without writing anything.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var fromStatus order.Status
	var applied bool

	updated, err := runOrderMutation(ctx, h.uowFactory,
		func(ctx context.Context, uow OrderUoW) (*order.Order, bool, error) {
			repo := uow.OrderRepository()

			aggregate, err := repo.Get(ctx, cmd.OrderID())
			if err != nil {
				return nil, false, err
			}
			fromStatus = aggregate.Status()

			changed, err := aggregate.ChangeStatus(cmd.NewStatus(), cmd.Actor(), order.ChangeStatusOptions{
				NoteInternal: cmd.NoteInternal(),
				NoteCustomer: cmd.NoteCustomer(),
				CancelReason: cmd.CancelReason(),
				Force:        cmd.Force(),
			})
			if err != nil {
				return nil, false, err
			}
			if !changed {
				return aggregate, false, nil
			}

			if err = repo.Update(ctx, aggregate); err != nil {
				return nil, false, err
			}

			applied = true
			return aggregate, true, nil
		})
	if err != nil {
		return nil, err
	}

	if applied && cmd.NotifyCustomer() {
		h.dispatchNotification(updated, fromStatus, cmd.NoteCustomer())
	}

	return updated, nil
}

// dispatchNotification relays the committed change to the customer channel.
// Fire-and-forget: runs detached from the request context so a slow or
// failing channel cannot delay the response.
func (h *ChangeOrderStatusCommandHandler) dispatchNotification(updated *order.Order, from order.Status, noteCustomer string) {
	notification := ports.StatusNotification{
		OrderCode:    updated.Code(),
		From:         from,
		To:           updated.Status(),
		NoteCustomer: noteCustomer,
	}

	go func() {
		ctx := context.Background()
		if err := h.notifier.NotifyStatusChanged(ctx, notification); err != nil {
			h.logger.ErrorContext(ctx, "customer notification failed",
				"order_code", notification.OrderCode,
				"to_status", notification.To.String(),
				"error", err)
		}
	}()
}
