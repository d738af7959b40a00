package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-edumarket/app/catalog"
	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productIDs(products []models.Product) []string {
	return lo.Map(products, func(p models.Product, _ int) string { return p.ID })
}

func TestProductRepositoryFindCandidatesAppliesPushdown(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	author := testutil.CreateUser(t, db, "autora", models.RoleSeller)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cheap := testutil.CreateProduct(t, db, author, "Frações", "15.90", testutil.WithCreatedAt(base))
	pricey := testutil.CreateProduct(t, db, author, "Geometria", "22.50", testutil.WithCreatedAt(base.Add(time.Hour)))
	other := testutil.CreateProduct(t, db, author, "Leitura", "10.00",
		testutil.WithCategory("Português", "Literatura"), testutil.WithCreatedAt(base.Add(2*time.Hour)))
	testutil.CreateProduct(t, db, author, "Rascunho", "5.00", testutil.WithStatus(models.ProductStatusDraft))

	all, err := repo.FindCandidates(ctx, catalog.Pushdown{})
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID, pricey.ID, cheap.ID}, productIDs(all))
	require.NotNil(t, all[0].Author)
	assert.Equal(t, "autora", all[0].Author.Name)

	math, err := repo.FindCandidates(ctx, catalog.Pushdown{
		Category: "Matemática",
		PriceMax: decimal.NewNullDecimal(decimal.RequireFromString("20")),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{cheap.ID}, productIDs(math))

	bounded, err := repo.FindCandidates(ctx, catalog.Pushdown{
		PriceMin: decimal.NewNullDecimal(decimal.RequireFromString("15.90")),
		PriceMax: decimal.NewNullDecimal(decimal.RequireFromString("22.50")),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{cheap.ID, pricey.ID}, productIDs(bounded))
}

func TestProductRepositoryGetByIDKeepsSetColumns(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewProductRepository(db)
	author := testutil.CreateUser(t, db, "autor", models.RoleSeller)
	p := testutil.CreateProduct(t, db, author, "Tabuada", "9.90", testutil.WithGrades("2º ano", "3º ano"))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2º ano", "3º ano"}, []string(got.GradeLevel))
	assert.True(t, got.Price.Equal(decimal.RequireFromString("9.90")))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProductRepositoryUpdateAndStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	author := testutil.CreateUser(t, db, "autor", models.RoleSeller)
	p := testutil.CreateProduct(t, db, author, "Tabuada", "9.90")

	p.Title = "Tabuada ilustrada"
	p.Price = decimal.RequireFromString("11.00")
	p.DownloadCount = 99
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tabuada ilustrada", got.Title)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("11")))
	assert.Zero(t, got.DownloadCount, "aggregates are not editable")

	require.NoError(t, repo.UpdateStatus(ctx, p.ID, models.ProductStatusInactive))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusInactive, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", models.ProductStatusActive), errs.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.Product{ID: "missing", Title: "x"}), errs.ErrNotFound)
}

func TestProductRepositoryDelete(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	author := testutil.CreateUser(t, db, "autor", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "comprador", models.RoleBuyer)

	p := testutil.CreateProduct(t, db, author, "Tabuada", "9.90")
	require.NoError(t, db.Create(&models.CartItem{UserID: buyer.ID, ProductID: p.ID, Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: buyer.ID, ProductID: p.ID}).Error)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	var left int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&left).Error)
	assert.Zero(t, left)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), errs.ErrNotFound)

	sold := testutil.CreateProduct(t, db, author, "Frações", "15.90")
	require.NoError(t, db.Create(&models.Sale{
		ProductID: sold.ID, BuyerID: buyer.ID, SellerID: author.ID,
		Amount: sold.Price, Status: models.SaleStatusCompleted,
	}).Error)
	assert.ErrorIs(t, repo.Delete(ctx, sold.ID), errs.ErrValidation)
}

func TestProductRepositoryDistinctValues(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	author := testutil.CreateUser(t, db, "autor", models.RoleSeller)

	testutil.CreateProduct(t, db, author, "a", "1", testutil.WithCategory("Matemática", "Álgebra"))
	testutil.CreateProduct(t, db, author, "b", "1", testutil.WithCategory("Matemática", "Geometria"))
	testutil.CreateProduct(t, db, author, "c", "1", testutil.WithCategory("Ciências", "Biologia"))
	testutil.CreateProduct(t, db, author, "d", "1", testutil.WithCategory("História", "Brasil"),
		testutil.WithStatus(models.ProductStatusDraft))

	categories, err := repo.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ciências", "Matemática"}, categories)

	subjects, err := repo.DistinctSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Biologia", "Geometria", "Álgebra"}, subjects)
}

func TestProductRepositoryIncrementDownloadCount(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	author := testutil.CreateUser(t, db, "autor", models.RoleSeller)
	p := testutil.CreateProduct(t, db, author, "Tabuada", "9.90")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementDownloadCount(ctx, nil, p.ID))
	}
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.DownloadCount)

	assert.ErrorIs(t, repo.IncrementDownloadCount(ctx, nil, "missing"), errs.ErrNotFound)
}

func TestProductRepositoryRecomputeRating(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	author := testutil.CreateUser(t, db, "autor", models.RoleSeller)
	p := testutil.CreateProduct(t, db, author, "Tabuada", "9.90")

	require.NoError(t, repo.RecomputeRating(ctx, nil, p.ID))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Rating)
	assert.Zero(t, got.ReviewCount)

	for i, rating := range []float64{5, 3, 4} {
		u := testutil.CreateUser(t, db, "leitor"+string(rune('a'+i)), models.RoleBuyer)
		require.NoError(t, db.Create(&models.Review{ProductID: p.ID, UserID: u.ID, Rating: rating, Comment: "ok"}).Error)
	}
	require.NoError(t, repo.RecomputeRating(ctx, nil, p.ID))

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.Rating, 0.001)
	assert.Equal(t, 3, got.ReviewCount)
}
