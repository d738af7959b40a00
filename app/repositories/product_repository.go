package repositories

import (
	"context"
	"time"

	"github.com/Rakhulsr/go-edumarket/app/catalog"
	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]models.Product, error)
	FindCandidates(ctx context.Context, pd catalog.Pushdown) ([]models.Product, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Product, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctSubjects(ctx context.Context) ([]string, error)
	IncrementDownloadCount(ctx context.Context, tx *gorm.DB, id string) error
	RecomputeRating(ctx context.Context, tx *gorm.DB, id string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return p.db
}

var editableProductColumns = []string{
	"title", "description", "price", "category", "subject", "grade_level", "tags",
	"file_url", "thumbnail_url", "status", "updated_at",
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return translate("ProductRepository.Create", p.db.WithContext(ctx).Create(product).Error)
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	res := p.db.WithContext(ctx).
		Model(product).
		Select(editableProductColumns).
		Updates(product)
	if res.Error != nil {
		return translate("ProductRepository.Update", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("ProductRepository.Update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (p *productRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate("ProductRepository.UpdateStatus", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("ProductRepository.UpdateStatus", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a product together with the cart lines, favorites and reviews pointing at
// it. Products with sales keep their history and must be deactivated instead.
func (p *productRepository) Delete(ctx context.Context, id string) error {
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sales int64
		if err := tx.Model(&models.Sale{}).Where("product_id = ?", id).Count(&sales).Error; err != nil {
			return err
		}
		if sales > 0 {
			return errs.Validation("product %s has %d sales, set it inactive instead", id, sales)
		}

		for _, dependent := range []interface{}{&models.CartItem{}, &models.Favorite{}, &models.Review{}} {
			if err := tx.Where("product_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("ProductRepository.Delete", err)
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, translate("ProductRepository.GetByID", err)
	}
	return &product, nil
}

// GetByIDs returns the products found; missing ids are simply absent from the result.
func (p *productRepository) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := p.conn(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, translate("ProductRepository.GetByIDs", err)
	}
	return products, nil
}

// FindCandidates returns active products narrowed by the pushdown predicates, newest first.
func (p *productRepository) FindCandidates(ctx context.Context, pd catalog.Pushdown) ([]models.Product, error) {
	query := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Author").
		Where("status = ?", models.ProductStatusActive)

	if pd.Category != "" {
		query = query.Where("category = ?", pd.Category)
	}
	if pd.Subject != "" {
		query = query.Where("subject = ?", pd.Subject)
	}
	if pd.PriceMin.Valid {
		query = query.Where("price >= ?", pd.PriceMin.Decimal)
	}
	if pd.PriceMax.Valid {
		query = query.Where("price <= ?", pd.PriceMax.Decimal)
	}
	if pd.MinRating > 0 {
		query = query.Where("rating >= ?", pd.MinRating)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Order("id").Find(&products).Error; err != nil {
		return nil, translate("ProductRepository.FindCandidates", err)
	}
	return products, nil
}

func (p *productRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Product, error) {
	var products []models.Product
	if err := p.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, translate("ProductRepository.ListByAuthor", err)
	}
	return products, nil
}

func (p *productRepository) distinct(ctx context.Context, column string) ([]string, error) {
	values := make([]string, 0)
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive).
		Where(column + " <> ''").
		Distinct().
		Order(column).
		Pluck(column, &values).Error
	return values, err
}

func (p *productRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := p.distinct(ctx, "category")
	return values, translate("ProductRepository.DistinctCategories", err)
}

func (p *productRepository) DistinctSubjects(ctx context.Context) ([]string, error) {
	values, err := p.distinct(ctx, "subject")
	return values, translate("ProductRepository.DistinctSubjects", err)
}

func (p *productRepository) IncrementDownloadCount(ctx context.Context, tx *gorm.DB, id string) error {
	res := p.conn(tx).WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
	if res.Error != nil {
		return translate("ProductRepository.IncrementDownloadCount", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("ProductRepository.IncrementDownloadCount", errs.ErrNotFound)
	}
	return nil
}

// RecomputeRating derives rating and review_count from the reviews table in one statement,
// so concurrent submissions cannot overwrite each other with stale aggregates.
func (p *productRepository) RecomputeRating(ctx context.Context, tx *gorm.DB, id string) error {
	res := p.conn(tx).WithContext(ctx).Exec(`
		UPDATE products SET
			rating = (SELECT COALESCE(ROUND(AVG(reviews.rating), 2), 0) FROM reviews WHERE reviews.product_id = ?),
			review_count = (SELECT COUNT(*) FROM reviews WHERE reviews.product_id = ?),
			updated_at = ?
		WHERE id = ?`, id, id, time.Now(), id)
	if res.Error != nil {
		return translate("ProductRepository.RecomputeRating", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("ProductRepository.RecomputeRating", errs.ErrNotFound)
	}
	return nil
}
