package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statusCommand(t *testing.T, orderID kernel.UUID, to order.Status, actor order.Actor) commands.ChangeOrderStatusCommand {
	t.Helper()
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, to, actor, "", "", "", false, false)
	require.NoError(t, err)
	return cmd
}

func TestChangeOrderStatusCommandHandler_Handle_LegalTransition_Succeeds(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	stored := storedOrder(orderID)
	cmd := statusCommand(t, orderID, order.Confirmed, staffActor())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier), discardLogger())
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, updated.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_IllegalTransition_RollsBackWithoutWrite(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	stored := storedOrderInStatus(orderID, order.Confirmed)
	cmd := statusCommand(t, orderID, order.Delivered, staffActor())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Equal(t, order.Confirmed, stored.Status(), "aggregate must stay untouched")
}

func TestChangeOrderStatusCommandHandler_Handle_SameStatus_NoOpWithoutWrite(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	stored := storedOrderInStatus(orderID, order.Confirmed)
	cmd := statusCommand(t, orderID, order.Confirmed, staffActor())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier), discardLogger())
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, updated.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_ForceByStaff_Rejected(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	stored := storedOrder(orderID)
	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, order.Shipped, staffActor(), "", "", "", true, false)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier), discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrForceNotPermitted)
}

func TestChangeOrderStatusCommandHandler_Handle_ConcurrentModification_RetriesOnce(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	// Each attempt re-reads, so hand out fresh aggregates.
	firstLoad := storedOrder(orderID)
	secondLoad := storedOrder(orderID)
	cmd := statusCommand(t, orderID, order.Confirmed, staffActor())

	repo := new(MockOrderRepository)
	uow1 := new(MockOrderUoW)
	mock.InOrder(
		uow1.On("Begin", ctx).Return(nil).Once(),
		uow1.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(firstLoad, nil).Once(),
		repo.On("Update", mock.Anything, firstLoad).Return(ports.ErrConcurrentModification).Once(),
		uow1.On("Rollback", ctx).Return(nil).Once(),
	)

	uow2 := new(MockOrderUoW)
	mock.InOrder(
		uow2.On("Begin", ctx).Return(nil).Once(),
		uow2.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(secondLoad, nil).Once(),
		repo.On("Update", mock.Anything, secondLoad).Return(nil).Once(),
		uow2.On("Commit", ctx).Return(nil).Once(),
		uow2.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow1).Once()
	factory.On("Create").Return(uow2).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier), discardLogger())
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, updated.Status())
	repo.AssertExpectations(t)
	uow1.AssertExpectations(t)
	uow2.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_SecondCollision_Surfaces(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := statusCommand(t, orderID, order.Confirmed, staffActor())

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, orderID).
		Return(storedOrder(orderID), nil).Once().
		On("Get", mock.Anything, orderID).
		Return(storedOrder(orderID), nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).
		Return(ports.ErrConcurrentModification).Twice()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrConcurrentModification)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_NotifyCustomer_DispatchesAfterCommit(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	stored := storedOrder(orderID)
	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, order.Confirmed, staffActor(),
		"", "Your order has been confirmed.", "", false, true)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notified := make(chan ports.StatusNotification, 1)
	notifier := new(MockNotifier)
	notifier.On("NotifyStatusChanged", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			notified <- args.Get(1).(ports.StatusNotification)
		}).
		Return(nil).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	select {
	case n := <-notified:
		assert.Equal(t, stored.Code(), n.OrderCode)
		assert.Equal(t, order.PendingConfirmation, n.From)
		assert.Equal(t, order.Confirmed, n.To)
		assert.Equal(t, "Your order has been confirmed.", n.NoteCustomer)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dispatched")
	}
}

func TestChangeOrderStatusCommandHandler_Handle_NoOp_DoesNotNotify(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	stored := storedOrderInStatus(orderID, order.Confirmed)
	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, order.Confirmed, staffActor(), "", "note", "", false, true)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, orderID).Return(stored, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
}
