package repositories

import (
	"context"

	"github.com/Rakhulsr/go-edumarket/app/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *models.Review) error
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *models.Review) error {
	if tx == nil {
		tx = r.db
	}
	return translate("ReviewRepository.Create", tx.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, translate("ReviewRepository.ListByProduct", err)
	}
	return reviews, nil
}
