package services

import (
	"testing"

	"github.com/Rakhulsr/go-edumarket/app/helpers"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/repositories"
	"github.com/Rakhulsr/go-edumarket/app/testutil"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	products  repositories.ProductRepositoryImpl
	cartItems repositories.CartItemRepositoryImpl
	sales     repositories.SaleRepository
	reviews   repositories.ReviewRepository
	favorites repositories.FavoriteRepository
	users     repositories.UserRepositoryImpl

	catalog   *CatalogService
	cart      *CartService
	checkout  *CheckoutService
	review    *ReviewService
	favorite  *FavoriteService
	dashboard *DashboardService

	seller *models.User
	buyer  *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	validate := helpers.NewValidator()

	f := &fixture{
		db:        db,
		products:  repositories.NewProductRepository(db),
		cartItems: repositories.NewCartItemRepository(db),
		sales:     repositories.NewSaleRepository(db),
		reviews:   repositories.NewReviewRepository(db),
		favorites: repositories.NewFavoriteRepository(db),
		users:     repositories.NewUserRepository(db),
	}
	f.catalog = NewCatalogService(f.products, f.users, validate)
	f.cart = NewCartService(f.cartItems, f.products, models.MaxCartQty)
	f.checkout = NewCheckoutService(db, f.products, f.cartItems, f.sales, f.users, validate)
	f.review = NewReviewService(db, f.reviews, f.products, f.users, validate)
	f.favorite = NewFavoriteService(f.favorites, f.products)
	f.dashboard = NewDashboardService(f.users, f.products, f.sales)

	f.seller = testutil.CreateUser(t, db, "professora", models.RoleSeller)
	f.buyer = testutil.CreateUser(t, db, "aluno", models.RoleBuyer)
	return f
}
