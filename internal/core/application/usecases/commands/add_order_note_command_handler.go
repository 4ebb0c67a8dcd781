package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// AddOrderNoteCommandHandler appends a note-only history row to an order.
// The row records the current status as both from and to, keeping the
// history invariant intact.
type AddOrderNoteCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddOrderNoteCommandHandler creates a handler for order notes.
func NewAddOrderNoteCommandHandler(uowFactory OrderUoWFactory) AddOrderNoteCommandHandler {
	return AddOrderNoteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the note command and returns the order.
func (h *AddOrderNoteCommandHandler) Handle(ctx context.Context, cmd AddOrderNoteCommand) (*order.Order, error) {
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

			if err = aggregate.AddNote(cmd.Actor(), cmd.NoteInternal(), cmd.NoteCustomer()); err != nil {
				return nil, false, err
			}

			if err = repo.Update(ctx, aggregate); err != nil {
				return nil, false, err
			}

			return aggregate, true, nil
		})
}
