package repositories

import (
	"context"

	"github.com/Rakhulsr/go-edumarket/app/models"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Insert(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, userID, productID string) error
	Exists(ctx context.Context, userID, productID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Insert(ctx context.Context, favorite *models.Favorite) error {
	return translate("FavoriteRepository.Insert", r.db.WithContext(ctx).Create(favorite).Error)
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, productID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return translate("FavoriteRepository.Delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("FavoriteRepository.Delete", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, translate("FavoriteRepository.Exists", err)
	}
	return count > 0, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.WithContext(ctx).
		Preload("Product.Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, translate("FavoriteRepository.ListByUser", err)
	}
	return favorites, nil
}
