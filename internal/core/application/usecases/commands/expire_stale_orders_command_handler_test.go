package commands_test

import (
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

func TestNewExpireStaleOrdersCommand_NonPositiveWindow_ReturnsError(t *testing.T) {
	_, err := commands.NewExpireStaleOrdersCommand(0)
	require.Error(t, err)

	_, err = commands.NewExpireStaleOrdersCommand(-time.Hour)
	require.Error(t, err)
}

func TestExpireStaleOrdersCommandHandler_Handle_CancelsStaleOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewExpireStaleOrdersCommand(48 * time.Hour)
	require.NoError(t, err)

	stale1 := storedOrder(kernel.NewUUID())
	stale2 := storedOrder(kernel.NewUUID())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetStaleInStatus", mock.Anything, order.PendingConfirmation, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{stale1, stale2}, nil).Once(),
		repo.On("Update", mock.Anything, stale1).Return(nil).Once(),
		repo.On("Update", mock.Anything, stale2).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireStaleOrdersCommandHandler(factory, discardLogger())
	expired, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, expired)

	for _, stale := range []*order.Order{stale1, stale2} {
		assert.Equal(t, order.Canceled, stale.Status())
		assert.Equal(t, "confirmation window expired", stale.CancelReason())
		require.Len(t, stale.PendingChanges(), 1)
		change := stale.PendingChanges()[0]
		assert.Equal(t, "system", change.ActorName())
		assert.Nil(t, change.ActorID())
	}
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestExpireStaleOrdersCommandHandler_Handle_NoStaleOrders_CommitsZero(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewExpireStaleOrdersCommand(48 * time.Hour)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetStaleInStatus", mock.Anything, order.PendingConfirmation, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireStaleOrdersCommandHandler(factory, discardLogger())
	expired, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, expired)
}

func TestExpireStaleOrdersCommandHandler_Handle_ConflictedOrderIsSkipped(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewExpireStaleOrdersCommand(48 * time.Hour)
	require.NoError(t, err)

	conflicted := storedOrder(kernel.NewUUID())
	clean := storedOrder(kernel.NewUUID())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetStaleInStatus", mock.Anything, order.PendingConfirmation, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{conflicted, clean}, nil).Once(),
		repo.On("Update", mock.Anything, conflicted).Return(ports.ErrConcurrentModification).Once(),
		repo.On("Update", mock.Anything, clean).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireStaleOrdersCommandHandler(factory, discardLogger())
	expired, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, expired, "conflicted order is skipped, not counted")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
