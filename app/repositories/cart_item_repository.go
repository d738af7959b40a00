package repositories

import (
	"context"
	"time"

	"github.com/Rakhulsr/go-edumarket/app/models"
	"gorm.io/gorm"
)

type CartItemRepositoryImpl interface {
	Insert(ctx context.Context, item *models.CartItem) error
	Get(ctx context.Context, userID, productID string) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID string, qty int) error
	Delete(ctx context.Context, userID, productID string) error
	DeleteProducts(ctx context.Context, tx *gorm.DB, userID string, productIDs []string) error
	Clear(ctx context.Context, tx *gorm.DB, userID string) error
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	Count(ctx context.Context, userID string) (int, error)
}

type CartItemRepository struct {
	DB *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &CartItemRepository{db}
}

func (r *CartItemRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.DB
}

// Insert relies on the (user_id, product_id) unique index: a second insert for the same
// pair fails with errs.ErrDuplicateItem instead of being checked beforehand.
func (r *CartItemRepository) Insert(ctx context.Context, item *models.CartItem) error {
	return translate("CartItemRepository.Insert", r.DB.WithContext(ctx).Create(item).Error)
}

func (r *CartItemRepository) Get(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, translate("CartItemRepository.Get", err)
	}
	return &item, nil
}

func (r *CartItemRepository) UpdateQuantity(ctx context.Context, userID, productID string, qty int) error {
	res := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{
			"quantity":   qty,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate("CartItemRepository.UpdateQuantity", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("CartItemRepository.UpdateQuantity", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *CartItemRepository) Delete(ctx context.Context, userID, productID string) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return translate("CartItemRepository.Delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("CartItemRepository.Delete", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *CartItemRepository) DeleteProducts(ctx context.Context, tx *gorm.DB, userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	return translate("CartItemRepository.DeleteProducts", r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&models.CartItem{}).Error)
}

func (r *CartItemRepository) Clear(ctx context.Context, tx *gorm.DB, userID string) error {
	return translate("CartItemRepository.Clear", r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error)
}

func (r *CartItemRepository) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Preload("Product.Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, translate("CartItemRepository.ListByUser", err)
	}
	return items, nil
}

func (r *CartItemRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return int(count), translate("CartItemRepository.Count", err)
}
