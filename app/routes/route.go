package routes

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-edumarket/app/configs"
	"github.com/Rakhulsr/go-edumarket/app/db/seeders"
	"github.com/Rakhulsr/go-edumarket/app/handlers"
	"github.com/Rakhulsr/go-edumarket/app/helpers"
	"github.com/Rakhulsr/go-edumarket/app/middlewares"
	"github.com/Rakhulsr/go-edumarket/app/repositories"
	"github.com/Rakhulsr/go-edumarket/app/services"
	"github.com/Rakhulsr/go-edumarket/app/utils/renderer"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV) *mux.Router {
	rnd := renderer.New(env.APP_ENV == "development")
	validate := helpers.NewValidator()

	productRepo := repositories.NewProductRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	userRepo := repositories.NewUserRepository(db)

	catalogSvc := services.NewCatalogService(productRepo, userRepo, validate)
	if env.CatalogFallback {
		catalogSvc.WithFallback(seeders.Catalog())
		log.Println("✅ Catalog fallback enabled")
	}
	cartSvc := services.NewCartService(cartItemRepo, productRepo, env.CartMaxQty)
	checkoutSvc := services.NewCheckoutService(db, productRepo, cartItemRepo, saleRepo, userRepo, validate)
	reviewSvc := services.NewReviewService(db, reviewRepo, productRepo, userRepo, validate)
	favoriteSvc := services.NewFavoriteService(favoriteRepo, productRepo)
	dashboardSvc := services.NewDashboardService(userRepo, productRepo, saleRepo)

	homeHandler := handlers.NewHomeHandler(rnd, db, dashboardSvc)
	productHandler := handlers.NewProductHandler(catalogSvc, rnd)
	cartHandler := handlers.NewCartHandler(cartSvc, rnd)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc, rnd)
	reviewHandler := handlers.NewReviewHandler(reviewSvc, rnd)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteSvc, rnd)

	router := mux.NewRouter()
	router.Use(middlewares.LoggingMiddleware, middlewares.IdentityMiddleware)

	auth := middlewares.RequireUserMiddleware(rnd)
	withUser := func(fn http.HandlerFunc) http.Handler { return auth(fn) }

	router.HandleFunc("/health", homeHandler.Health).Methods("GET")
	router.Handle("/dashboard", withUser(homeHandler.Dashboard)).Methods("GET")
	router.Handle("/me/products", withUser(productHandler.MyProducts)).Methods("GET")

	router.HandleFunc("/products", productHandler.Products).Methods("GET")
	router.Handle("/products", withUser(productHandler.CreateProduct)).Methods("POST")
	router.HandleFunc("/products/{id}", productHandler.ProductDetail).Methods("GET")
	router.Handle("/products/{id}", withUser(productHandler.UpdateProduct)).Methods("PUT")
	router.Handle("/products/{id}/status", withUser(productHandler.SetStatus)).Methods("PATCH")
	router.Handle("/products/{id}", withUser(productHandler.DeleteProduct)).Methods("DELETE")
	router.HandleFunc("/categories", productHandler.Categories).Methods("GET")
	router.HandleFunc("/subjects", productHandler.Subjects).Methods("GET")

	router.HandleFunc("/products/{id}/reviews", reviewHandler.ListReviews).Methods("GET")
	router.Handle("/products/{id}/reviews", withUser(reviewHandler.SubmitReview)).Methods("POST")

	router.Handle("/cart", withUser(cartHandler.GetCart)).Methods("GET")
	router.Handle("/cart", withUser(cartHandler.AddItem)).Methods("POST")
	router.Handle("/cart", withUser(cartHandler.ClearCart)).Methods("DELETE")
	router.Handle("/cart/count", withUser(cartHandler.Count)).Methods("GET")
	router.Handle("/cart/{productID}", withUser(cartHandler.GetItem)).Methods("GET")
	router.Handle("/cart/{productID}", withUser(cartHandler.UpdateQuantity)).Methods("PUT")
	router.Handle("/cart/{productID}", withUser(cartHandler.RemoveItem)).Methods("DELETE")

	router.Handle("/checkout", withUser(checkoutHandler.Checkout)).Methods("POST")
	router.Handle("/sales", withUser(checkoutHandler.ListSales)).Methods("GET")
	router.Handle("/sales/{id}/status", withUser(checkoutHandler.TransitionSale)).Methods("PATCH")

	router.Handle("/favorites", withUser(favoriteHandler.ListFavorites)).Methods("GET")
	router.Handle("/favorites/{productID}", withUser(favoriteHandler.AddFavorite)).Methods("POST")
	router.Handle("/favorites/{productID}", withUser(favoriteHandler.RemoveFavorite)).Methods("DELETE")
	router.Handle("/favorites/{productID}/toggle", withUser(favoriteHandler.ToggleFavorite)).Methods("POST")

	return router
}
