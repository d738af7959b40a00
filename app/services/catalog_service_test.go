package services

import (
	"context"
	"fmt"
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

func TestCatalogSearchCombinesPushdownAndEngine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	fracoes := testutil.CreateProduct(t, f.db, f.seller, "Frações divertidas", "15.90",
		testutil.WithGrades("5º ano"), testutil.WithCreatedAt(base))
	tabuada := testutil.CreateProduct(t, f.db, f.seller, "Tabuada ilustrada", "9.90",
		testutil.WithGrades("3º ano"), testutil.WithCreatedAt(base.Add(time.Hour)))
	testutil.CreateProduct(t, f.db, f.seller, "Geometria plana", "22.50", testutil.WithCreatedAt(base.Add(2*time.Hour)))
	testutil.CreateProduct(t, f.db, f.seller, "Leitura", "8.00", testutil.WithCategory("Português", "Literatura"))
	testutil.CreateProduct(t, f.db, f.seller, "Frações rascunho", "1.00", testutil.WithStatus(models.ProductStatusDraft))

	page, err := f.catalog.Search(ctx, catalog.FilterSpec{
		Category: "Matemática",
		PriceMax: decimal.NewNullDecimal(decimal.RequireFromString("20")),
		SortBy:   catalog.SortPriceAsc,
	}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, []string{tabuada.ID, fracoes.ID}, productIDs(page.Items))

	page, err = f.catalog.Search(ctx, catalog.FilterSpec{Search: "frações"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{fracoes.ID}, productIDs(page.Items))

	page, err = f.catalog.Search(ctx, catalog.FilterSpec{Search: "professora", GradeLevels: []string{"3º ano"}}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{tabuada.ID}, productIDs(page.Items), "search covers the author name")

	_, err = f.catalog.Search(ctx, catalog.FilterSpec{PriceMin: decimal.NewNullDecimal(decimal.RequireFromString("-5"))}, 1, 10)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCatalogFallbackOnlyWhenUpstreamIsDown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fallback := []models.Product{
		{ID: "f1", Title: "Frações", Category: "Matemática", Subject: "Álgebra", Price: decimal.RequireFromString("10"), Status: models.ProductStatusActive},
		{ID: "f2", Title: "Leitura", Category: "Português", Subject: "Literatura", Price: decimal.RequireFromString("12"), Status: models.ProductStatusActive},
		{ID: "f3", Title: "Rascunho", Category: "Ciências", Subject: "Física", Price: decimal.RequireFromString("5"), Status: models.ProductStatusDraft},
	}
	f.catalog.WithFallback(fallback)

	page, err := f.catalog.Search(ctx, catalog.FilterSpec{}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total, "a reachable empty database is not replaced by the fallback")

	_, err = f.catalog.GetProduct(ctx, "", "f1")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	page, err = f.catalog.Search(ctx, catalog.FilterSpec{Category: "Matemática"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1"}, productIDs(page.Items))

	categories, err := f.catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Matemática", "Português"}, categories)

	p, err := f.catalog.GetProduct(ctx, "", "f2")
	require.NoError(t, err)
	assert.Equal(t, "Leitura", p.Title)
}

func TestCatalogUpstreamErrorWithoutFallback(t *testing.T) {
	f := newFixture(t)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.catalog.Search(context.Background(), catalog.FilterSpec{}, 1, 10)
	assert.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
}

func TestCatalogSearchCapsPageSize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		testutil.CreateProduct(t, f.db, f.seller, fmt.Sprintf("Material %d", i), "10.00")
	}

	page, err := f.catalog.Search(ctx, catalog.FilterSpec{}, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, MaxPerPage, page.PerPage)
	assert.Len(t, page.Items, 3)

	page, err = f.catalog.Search(ctx, catalog.FilterSpec{}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultPerPage, page.PerPage)
}

func TestCatalogListByAuthorIncludesHidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	active := testutil.CreateProduct(t, f.db, f.seller, "Frações", "15.90")
	draft := testutil.CreateProduct(t, f.db, f.seller, "Rascunho", "9.90", testutil.WithStatus(models.ProductStatusDraft))
	testutil.CreateProduct(t, f.db, f.buyer, "Outro autor", "5.00")

	products, err := f.catalog.ListByAuthor(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{active.ID, draft.ID}, productIDs(products))
}

func TestCatalogProductLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := ProductInput{
		Title:      "  Sistema solar  ",
		Price:      decimal.RequireFromString("16.00"),
		Category:   "Ciências",
		Subject:    "Física",
		GradeLevel: []string{"5º ano", "5º ano", "6º ano"},
		Tags:       []string{"planetas"},
	}
	product, err := f.catalog.CreateProduct(ctx, f.seller.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Sistema solar", product.Title)
	assert.Equal(t, models.ProductStatusDraft, product.Status)
	assert.Equal(t, []string{"5º ano", "6º ano"}, []string(product.GradeLevel))

	_, err = f.catalog.GetProduct(ctx, f.buyer.ID, product.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound, "drafts are hidden from other users")
	_, err = f.catalog.GetProduct(ctx, f.seller.ID, product.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.catalog.SetStatus(ctx, f.buyer.ID, product.ID, models.ProductStatusActive), errs.ErrForbidden)
	assert.ErrorIs(t, f.catalog.SetStatus(ctx, f.seller.ID, product.ID, "published"), errs.ErrValidation)
	require.NoError(t, f.catalog.SetStatus(ctx, f.seller.ID, product.ID, models.ProductStatusActive))

	in.Price = decimal.RequireFromString("18.50")
	updated, err := f.catalog.UpdateProduct(ctx, f.seller.ID, product.ID, in)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("18.5")))
	assert.Equal(t, models.ProductStatusActive, updated.Status, "an empty status keeps the current one")

	_, err = f.catalog.UpdateProduct(ctx, f.buyer.ID, product.ID, in)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	seller, err := f.users.FindByID(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, seller.TotalProducts)

	assert.ErrorIs(t, f.catalog.DeleteProduct(ctx, f.buyer.ID, product.ID), errs.ErrForbidden)
	require.NoError(t, f.catalog.DeleteProduct(ctx, f.seller.ID, product.ID))
	_, err = f.catalog.GetProduct(ctx, f.seller.ID, product.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCatalogCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.CreateProduct(ctx, f.seller.ID, ProductInput{Title: "Sem categoria", Price: decimal.RequireFromString("1")})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.catalog.CreateProduct(ctx, f.seller.ID, ProductInput{
		Title: "Negativo", Category: "Matemática", Subject: "Álgebra", Price: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.catalog.CreateProduct(ctx, "ghost", ProductInput{
		Title: "Órfão", Category: "Matemática", Subject: "Álgebra", Price: decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
