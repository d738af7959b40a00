package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/repositories"
)

type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	productRepo  repositories.ProductRepositoryImpl
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, productRepo repositories.ProductRepositoryImpl) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, productRepo: productRepo}
}

func (s *FavoriteService) Add(ctx context.Context, userID, productID string) error {
	if _, err := visibleProduct(ctx, s.productRepo, userID, productID); err != nil {
		return err
	}
	if err := s.favoriteRepo.Insert(ctx, &models.Favorite{UserID: userID, ProductID: productID}); err != nil {
		return fmt.Errorf("failed to favorite %s: %w", productID, err)
	}
	return nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID string) error {
	if err := s.favoriteRepo.Delete(ctx, userID, productID); err != nil {
		return fmt.Errorf("failed to unfavorite %s: %w", productID, err)
	}
	return nil
}

// Toggle flips the favorite and reports whether the product is now a favorite.
func (s *FavoriteService) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite %s: %w", productID, err)
	}
	if exists {
		return false, s.Remove(ctx, userID, productID)
	}
	return true, s.Add(ctx, userID, productID)
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
