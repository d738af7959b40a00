package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/repositories"
	"github.com/Rakhulsr/go-edumarket/app/utils/calc"
)

const recentSalesLimit = 10

type SellerSummary struct {
	TotalSales     int              `json:"total_sales"`
	TotalRevenue   string           `json:"total_revenue"`
	TotalProducts  int              `json:"total_products"`
	AverageRating  float64          `json:"average_rating"`
	RatingCount    int              `json:"rating_count"`
	Products       []models.Product `json:"products"`
	RecentSales    []models.Sale    `json:"recent_sales"`
	TotalDownloads int              `json:"total_downloads"`
}

type Dashboard struct {
	User      *models.User   `json:"user"`
	Purchases []models.Sale  `json:"purchases"`
	Seller    *SellerSummary `json:"seller,omitempty"`
}

type DashboardService struct {
	userRepo    repositories.UserRepositoryImpl
	productRepo repositories.ProductRepositoryImpl
	saleRepo    repositories.SaleRepository
}

func NewDashboardService(userRepo repositories.UserRepositoryImpl, productRepo repositories.ProductRepositoryImpl, saleRepo repositories.SaleRepository) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		productRepo: productRepo,
		saleRepo:    saleRepo,
	}
}

// Get builds the dashboard for userID. The seller section is present for sellers, admins
// and anyone who has published products.
func (s *DashboardService) Get(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	purchases, err := s.saleRepo.ListByBuyer(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	dashboard := &Dashboard{User: user, Purchases: purchases}

	products, err := s.productRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if user.Role == models.RoleBuyer && len(products) == 0 {
		return dashboard, nil
	}

	recent, err := s.saleRepo.ListBySeller(ctx, userID, recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	summary := &SellerSummary{
		TotalSales:    user.TotalSales,
		TotalRevenue:  calc.FormatBRL(user.TotalRevenue),
		TotalProducts: user.TotalProducts,
		AverageRating: user.AverageRating,
		RatingCount:   user.RatingCount,
		Products:      products,
		RecentSales:   recent,
	}
	for _, p := range products {
		summary.TotalDownloads += p.DownloadCount
	}
	dashboard.Seller = summary
	return dashboard, nil
}
