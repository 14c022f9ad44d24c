package commands_test

import (
	"errors"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeleteOrderCommand("o1")
	require.NoError(t, err)

	f := newOrderUoWFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.orders.On("ExistsByID", ctx, cmd.OrderID()).Return(true, nil).Once(),
		f.orders.On("DeleteByID", ctx, cmd.OrderID()).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewDeleteOrderCommandHandler(f.factory)
	require.NoError(t, h.Handle(ctx, cmd))
	f.assertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeleteOrderCommand("o1")
	require.NoError(t, err)

	f := newOrderUoWFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.orders.On("ExistsByID", ctx, cmd.OrderID()).Return(false, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewDeleteOrderCommandHandler(f.factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), "o1")
	f.orders.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_Errors(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeleteOrderCommand("o1")
	require.NoError(t, err)

	t.Run("exists check", func(t *testing.T) {
		f := newOrderUoWFixture()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.orders.On("ExistsByID", ctx, cmd.OrderID()).Return(false, errors.New("db down")).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewDeleteOrderCommandHandler(f.factory)
		require.EqualError(t, h.Handle(ctx, cmd), "db down")
		f.assertExpectations(t)
	})

	t.Run("delete", func(t *testing.T) {
		f := newOrderUoWFixture()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.orders.On("ExistsByID", ctx, cmd.OrderID()).Return(true, nil).Once()
		f.orders.On("DeleteByID", ctx, cmd.OrderID()).Return(errors.New("delete error")).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewDeleteOrderCommandHandler(f.factory)
		require.EqualError(t, h.Handle(ctx, cmd), "delete error")
		f.assertExpectations(t)
	})

	t.Run("not constructed", func(t *testing.T) {
		h := commands.NewDeleteOrderCommandHandler(new(MockOrderUoWFactory))
		require.ErrorIs(t, h.Handle(ctx, commands.DeleteOrderCommand{}), commands.ErrDeleteOrderCommandIsNotConstructed)
	})
}
