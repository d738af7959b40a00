package repositories

import (
	"context"
	"time"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, sale *models.Sale) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Sale, error)
	ListByBuyer(ctx context.Context, buyerID string, limit int) ([]models.Sale, error)
	ListBySeller(ctx context.Context, sellerID string, limit int) ([]models.Sale, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id, from, to string) error
}

type gormSaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &gormSaleRepository{db: db}
}

func (r *gormSaleRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *gormSaleRepository) Create(ctx context.Context, tx *gorm.DB, sale *models.Sale) error {
	return translate("SaleRepository.Create", r.conn(tx).WithContext(ctx).Create(sale).Error)
}

func (r *gormSaleRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Sale, error) {
	var sale models.Sale
	if err := r.conn(tx).WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, translate("SaleRepository.GetByID", err)
	}
	return &sale, nil
}

func (r *gormSaleRepository) list(ctx context.Context, column, userID string, limit int) ([]models.Sale, error) {
	query := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Buyer").
		Preload("Seller").
		Where(column+" = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var sales []models.Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *gormSaleRepository) ListByBuyer(ctx context.Context, buyerID string, limit int) ([]models.Sale, error) {
	sales, err := r.list(ctx, "buyer_id", buyerID, limit)
	if err != nil {
		return nil, translate("SaleRepository.ListByBuyer", err)
	}
	return sales, nil
}

func (r *gormSaleRepository) ListBySeller(ctx context.Context, sellerID string, limit int) ([]models.Sale, error) {
	sales, err := r.list(ctx, "seller_id", sellerID, limit)
	if err != nil {
		return nil, translate("SaleRepository.ListBySeller", err)
	}
	return sales, nil
}

// UpdateStatus only applies when the sale is still in the from status.
func (r *gormSaleRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id, from, to string) error {
	res := r.conn(tx).WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate("SaleRepository.UpdateStatus", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("SaleRepository.UpdateStatus", errs.ErrInvalidTransition)
	}
	return nil
}
