package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/go-edumarket/app/helpers"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/repositories"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Rating  *float64 `json:"rating" validate:"required,gte=0,lte=5,halfstep"`
	Comment string   `json:"comment" validate:"required,max=2000"`
}

type ReviewService struct {
	db          *gorm.DB
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepositoryImpl
	userRepo    repositories.UserRepositoryImpl
	validate    *validator.Validate
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo repositories.ReviewRepository,
	productRepo repositories.ProductRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	validate *validator.Validate,
) *ReviewService {
	return &ReviewService{
		db:          db,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		validate:    validate,
	}
}

// Submit stores a review and recomputes the product's rating and review_count from every
// stored review, inside one transaction. A second review by the same user for the same
// product fails with errs.ErrDuplicateItem.
func (s *ReviewService) Submit(ctx context.Context, userID, productID string, in ReviewInput) (*models.Review, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := helpers.ValidateStruct(s.validate, in); err != nil {
		return nil, err
	}

	product, err := visibleProduct(ctx, s.productRepo, userID, productID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    *in.Rating,
		Comment:   in.Comment,
	}
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			return fmt.Errorf("failed to store review: %w", err)
		}
		if err := s.productRepo.RecomputeRating(ctx, tx, productID); err != nil {
			return fmt.Errorf("failed to recompute rating of %s: %w", productID, err)
		}
		if err := s.userRepo.RefreshSellerStats(ctx, tx, product.AuthorID); err != nil {
			return fmt.Errorf("failed to refresh stats of seller %s: %w", product.AuthorID, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Printf("INFO: ReviewService.Submit: user %s rated product %s with %.1f", userID, productID, review.Rating)
	return review, nil
}

func (s *ReviewService) List(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of %s: %w", productID, err)
	}
	return reviews, nil
}
