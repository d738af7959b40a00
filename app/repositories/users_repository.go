package repositories

import (
	"context"
	"time"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"gorm.io/gorm"
)

type UserRepositoryImpl interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	RefreshSellerStats(ctx context.Context, tx *gorm.DB, sellerID string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepositoryImpl {
	return &userRepository{db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleBuyer
	}
	return translate("UserRepository.Create", r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate("UserRepository.FindByID", err)
	}
	return &user, nil
}

// RefreshSellerStats rederives every seller aggregate from sales, products and reviews in
// a single statement. Only completed sales count toward sales and revenue.
func (r *userRepository) RefreshSellerStats(ctx context.Context, tx *gorm.DB, sellerID string) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.WithContext(ctx).Exec(`
		UPDATE users SET
			total_sales = (SELECT COUNT(*) FROM sales WHERE sales.seller_id = ? AND sales.status = ?),
			total_revenue = (SELECT COALESCE(ROUND(SUM(sales.amount), 2), 0) FROM sales WHERE sales.seller_id = ? AND sales.status = ?),
			total_products = (SELECT COUNT(*) FROM products WHERE products.author_id = ? AND products.status <> ?),
			rating_count = (SELECT COALESCE(SUM(products.review_count), 0) FROM products WHERE products.author_id = ?),
			average_rating = (SELECT COALESCE(ROUND(SUM(products.rating * products.review_count) * 1.0 / NULLIF(SUM(products.review_count), 0), 2), 0) FROM products WHERE products.author_id = ?),
			updated_at = ?
		WHERE id = ?`,
		sellerID, models.SaleStatusCompleted,
		sellerID, models.SaleStatusCompleted,
		sellerID, models.ProductStatusInactive,
		sellerID,
		sellerID,
		time.Now(),
		sellerID,
	)
	if res.Error != nil {
		return translate("UserRepository.RefreshSellerStats", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("UserRepository.RefreshSellerStats", errs.ErrNotFound)
	}
	return nil
}
