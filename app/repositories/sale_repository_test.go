package repositories

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleRepositoryCreateAndList(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewSaleRepository(db)
	seller := testutil.CreateUser(t, db, "vendedora", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "comprador", models.RoleBuyer)
	a := testutil.CreateProduct(t, db, seller, "A", "15.90")
	b := testutil.CreateProduct(t, db, seller, "B", "22.50")

	for _, p := range []*models.Product{a, b} {
		sale := &models.Sale{ProductID: p.ID, BuyerID: buyer.ID, SellerID: seller.ID, Amount: p.Price, Status: models.SaleStatusCompleted}
		require.NoError(t, repo.Create(ctx, nil, sale))
		assert.NotEmpty(t, sale.ID)
		assert.Contains(t, sale.TransactionID, "txn_")
	}

	purchases, err := repo.ListByBuyer(ctx, buyer.ID, 0)
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	require.NotNil(t, purchases[0].Product)
	require.NotNil(t, purchases[0].Seller)
	assert.Equal(t, "vendedora", purchases[0].Seller.Name)

	sales, err := repo.ListBySeller(ctx, seller.ID, 1)
	require.NoError(t, err)
	assert.Len(t, sales, 1)

	none, err := repo.ListBySeller(ctx, buyer.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSaleRepositoryTransactionIDIsUnique(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewSaleRepository(db)
	seller := testutil.CreateUser(t, db, "vendedora", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "comprador", models.RoleBuyer)
	p := testutil.CreateProduct(t, db, seller, "A", "15.90")

	first := &models.Sale{ProductID: p.ID, BuyerID: buyer.ID, SellerID: seller.ID, Amount: p.Price, Status: models.SaleStatusCompleted}
	require.NoError(t, repo.Create(ctx, nil, first))

	dup := &models.Sale{ProductID: p.ID, BuyerID: buyer.ID, SellerID: seller.ID, Amount: p.Price,
		Status: models.SaleStatusCompleted, TransactionID: first.TransactionID}
	assert.ErrorIs(t, repo.Create(ctx, nil, dup), errs.ErrDuplicateItem)
}

func TestSaleRepositoryUpdateStatusIsCompareAndSet(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewSaleRepository(db)
	seller := testutil.CreateUser(t, db, "vendedora", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "comprador", models.RoleBuyer)
	p := testutil.CreateProduct(t, db, seller, "A", "15.90")

	sale := &models.Sale{ProductID: p.ID, BuyerID: buyer.ID, SellerID: seller.ID, Amount: p.Price, Status: models.SaleStatusPending}
	require.NoError(t, repo.Create(ctx, nil, sale))

	require.NoError(t, repo.UpdateStatus(ctx, nil, sale.ID, models.SaleStatusPending, models.SaleStatusCompleted))
	err := repo.UpdateStatus(ctx, nil, sale.ID, models.SaleStatusPending, models.SaleStatusCancelled)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.ErrorIs(t, err, errs.ErrValidation)

	got, err := repo.GetByID(ctx, nil, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaleStatusCompleted, got.Status)

	_, err = repo.GetByID(ctx, nil, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
