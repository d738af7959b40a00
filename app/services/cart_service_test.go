package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddTwiceFailsWithDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.CreateProduct(t, f.db, f.seller, "Frações", "15.90")

	item, err := f.cart.Add(ctx, f.buyer.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	_, err = f.cart.Add(ctx, f.buyer.ID, p.ID)
	assert.ErrorIs(t, err, errs.ErrDuplicateItem)

	n, err := f.cart.Count(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.cart.Item(ctx, f.buyer.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity, "a duplicate add does not bump the quantity")
}

func TestCartAddRejectsMissingAndInactiveProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := testutil.CreateProduct(t, f.db, f.seller, "Rascunho", "5.00", testutil.WithStatus(models.ProductStatusDraft))

	_, err := f.cart.Add(ctx, f.buyer.ID, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = f.cart.Add(ctx, f.buyer.ID, draft.ID)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCartSetQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.CreateProduct(t, f.db, f.seller, "Frações", "15.90")
	_, err := f.cart.Add(ctx, f.buyer.ID, p.ID)
	require.NoError(t, err)

	for _, qty := range []int{0, -1, models.MaxCartQty + 1} {
		err := f.cart.SetQuantity(ctx, f.buyer.ID, p.ID, qty)
		assert.ErrorIs(t, err, errs.ErrInvalidQuantity, "qty=%d", qty)
		assert.ErrorIs(t, err, errs.ErrValidation)
	}
	got, err := f.cart.Item(ctx, f.buyer.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity, "rejected updates leave the row unchanged")

	require.NoError(t, f.cart.SetQuantity(ctx, f.buyer.ID, p.ID, 3))
	got, err = f.cart.Item(ctx, f.buyer.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)

	assert.ErrorIs(t, f.cart.SetQuantity(ctx, f.buyer.ID, "missing", 2), errs.ErrNotFound)

	_, err = f.cart.Item(ctx, f.buyer.ID, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCartListTotalsUseCurrentPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := testutil.CreateProduct(t, f.db, f.seller, "A", "15.90")
	b := testutil.CreateProduct(t, f.db, f.seller, "B", "22.50")

	for _, p := range []*models.Product{a, b} {
		_, err := f.cart.Add(ctx, f.buyer.ID, p.ID)
		require.NoError(t, err)
	}
	require.NoError(t, f.cart.SetQuantity(ctx, f.buyer.ID, b.ID, 2))

	view, err := f.cart.List(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, "60.90", view.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, 3, view.Totals.ItemCount)
	assert.Equal(t, 2, view.Totals.LineCount)
	assert.Equal(t, "R$ 60,90", view.SubtotalDisplay)

	require.NoError(t, f.db.Model(a).Update("price", "20.00").Error)
	view, err = f.cart.List(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, "65.00", view.Totals.Subtotal.StringFixed(2))
}

func TestCartRemoveAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := testutil.CreateProduct(t, f.db, f.seller, "A", "1")
	b := testutil.CreateProduct(t, f.db, f.seller, "B", "2")
	for _, p := range []*models.Product{a, b} {
		_, err := f.cart.Add(ctx, f.buyer.ID, p.ID)
		require.NoError(t, err)
	}

	require.NoError(t, f.cart.Remove(ctx, f.buyer.ID, a.ID))
	assert.ErrorIs(t, f.cart.Remove(ctx, f.buyer.ID, a.ID), errs.ErrNotFound)

	_, err := f.cart.Add(ctx, f.buyer.ID, a.ID)
	require.NoError(t, err, "a removed product can be added again")

	require.NoError(t, f.cart.Clear(ctx, f.buyer.ID))
	view, err := f.cart.List(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Totals.Subtotal.IsZero())
}
