package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRemoveOrderLineCommand(t *testing.T) {
	cmd, err := commands.NewRemoveOrderLineCommand("o1", "p1")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "p1", cmd.ProductID().String())

	_, err = commands.NewRemoveOrderLineCommand("", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "orderId")
	assert.Contains(t, err.Error(), "productId")

	assert.ErrorIs(t, commands.RemoveOrderLineCommand{}.Validate(), commands.ErrRemoveOrderLineCommandIsNotConstructed)
}

func TestRemoveOrderLineCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	existing := pendingOrderWithLine(t)
	cmd, err := commands.NewRemoveOrderLineCommand(existing.ID().String(), "p1")
	require.NoError(t, err)

	f := newOrderUoWFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.orders.On("FindByID", ctx, existing.ID()).Return(existing, nil).Once(),
		f.orders.On("Save", ctx, existing).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRemoveOrderLineCommandHandler(f.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Empty(t, existing.Lines())
	assert.True(t, existing.Total().IsZero())
	f.assertExpectations(t)
}

func TestRemoveOrderLineCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	existing := pendingOrderWithLine(t)
	cmd, err := commands.NewRemoveOrderLineCommand(existing.ID().String(), "p9")
	require.NoError(t, err)

	f := newOrderUoWFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.orders.On("FindByID", ctx, existing.ID()).Return(existing, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRemoveOrderLineCommandHandler(f.factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), "p9")
	assert.Len(t, existing.Lines(), 1)
	f.assertExpectations(t)
}

func TestRemoveOrderLineCommandHandler_Handle_NotPendingWinsOverUnknownProduct(t *testing.T) {
	ctx := t.Context()
	existing := pendingOrderWithLine(t)
	require.NoError(t, existing.Cancel(""))
	cmd, err := commands.NewRemoveOrderLineCommand(existing.ID().String(), "p9")
	require.NoError(t, err)

	f := newOrderUoWFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.orders.On("FindByID", ctx, existing.ID()).Return(existing, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRemoveOrderLineCommandHandler(f.factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
	require.ErrorIs(t, err, order.ErrOrderIsNotPending)
	f.assertExpectations(t)
}
