package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/Rakhulsr/go-edumarket/app/catalog"
	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/helpers"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ProductInput struct {
	Title        string          `json:"title" validate:"required,max=255"`
	Description  string          `json:"description" validate:"max=10000"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	Category     string          `json:"category" validate:"required,max=100"`
	Subject      string          `json:"subject" validate:"required,max=100"`
	GradeLevel   []string        `json:"grade_level" validate:"max=20,dive,required,max=50"`
	Tags         []string        `json:"tags" validate:"max=20,dive,required,max=50"`
	FileURL      string          `json:"file_url" validate:"omitempty,url"`
	ThumbnailURL string          `json:"thumbnail_url" validate:"omitempty,url"`
	Status       string          `json:"status" validate:"omitempty,oneof=active draft inactive"`
}

func (in ProductInput) apply(p *models.Product) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	p.Price = in.Price.Round(2)
	p.Category = in.Category
	p.Subject = in.Subject
	p.GradeLevel = lo.Uniq(in.GradeLevel)
	p.Tags = lo.Uniq(in.Tags)
	p.FileURL = in.FileURL
	p.ThumbnailURL = in.ThumbnailURL
	if in.Status != "" {
		p.Status = in.Status
	}
}

// MaxPerPage bounds the page size a single search may request.
const MaxPerPage = 100

type CatalogService struct {
	productRepo repositories.ProductRepositoryImpl
	userRepo    repositories.UserRepositoryImpl
	validate    *validator.Validate
	fallback    []models.Product
}

func NewCatalogService(productRepo repositories.ProductRepositoryImpl, userRepo repositories.UserRepositoryImpl, validate *validator.Validate) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		userRepo:    userRepo,
		validate:    validate,
	}
}

// WithFallback sets the product list served when the database is unreachable. Only its
// active products are ever returned.
func (s *CatalogService) WithFallback(products []models.Product) *CatalogService {
	s.fallback = lo.Filter(products, func(p models.Product, _ int) bool {
		return p.Status == models.ProductStatusActive
	})
	return s
}

func (s *CatalogService) useFallback(err error) bool {
	return s.fallback != nil && errors.Is(err, errs.ErrUpstreamUnavailable)
}

func (s *CatalogService) Search(ctx context.Context, f catalog.FilterSpec, page, perPage int) (catalog.Page, error) {
	if err := f.Validate(); err != nil {
		return catalog.Page{}, err
	}

	candidates, err := s.productRepo.FindCandidates(ctx, f.Pushdown())
	if err != nil {
		if !s.useFallback(err) {
			return catalog.Page{}, fmt.Errorf("failed to search products: %w", err)
		}
		log.Printf("WARNING: CatalogService.Search: serving fallback catalog: %v", err)
		candidates = s.fallback
	}

	return catalog.Query(candidates, f, page, min(perPage, MaxPerPage)), nil
}

// GetProduct hides non-active products from everyone but their author.
func (s *CatalogService) GetProduct(ctx context.Context, viewerID, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if s.useFallback(err) {
			if p, ok := lo.Find(s.fallback, func(p models.Product) bool { return p.ID == id }); ok {
				return &p, nil
			}
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if !visibleTo(product, viewerID) {
		return nil, fmt.Errorf("product %s: %w", id, errs.ErrNotFound)
	}
	return product, nil
}

func visibleTo(p *models.Product, viewerID string) bool {
	return p.Status == models.ProductStatusActive || p.AuthorID == viewerID
}

// visibleProduct loads a product the way viewerID is allowed to see it: drafts and
// inactive products exist only for their author.
func visibleProduct(ctx context.Context, repo repositories.ProductRepositoryImpl, viewerID, id string) (*models.Product, error) {
	product, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if !visibleTo(product, viewerID) {
		return nil, fmt.Errorf("product %s: %w", id, errs.ErrNotFound)
	}
	return product, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	values, err := s.productRepo.DistinctCategories(ctx)
	if err != nil {
		if s.useFallback(err) {
			return s.distinctFallback(func(p models.Product) string { return p.Category }), nil
		}
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return values, nil
}

func (s *CatalogService) Subjects(ctx context.Context) ([]string, error) {
	values, err := s.productRepo.DistinctSubjects(ctx)
	if err != nil {
		if s.useFallback(err) {
			return s.distinctFallback(func(p models.Product) string { return p.Subject }), nil
		}
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return values, nil
}

func (s *CatalogService) distinctFallback(field func(models.Product) string) []string {
	values := lo.Uniq(lo.FilterMap(s.fallback, func(p models.Product, _ int) (string, bool) {
		v := field(p)
		return v, v != ""
	}))
	slices.Sort(values)
	return values
}

func (s *CatalogService) ListByAuthor(ctx context.Context, authorID string) ([]models.Product, error) {
	products, err := s.productRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products of %s: %w", authorID, err)
	}
	return products, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, authorID string, in ProductInput) (*models.Product, error) {
	if err := helpers.ValidateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, authorID); err != nil {
		return nil, fmt.Errorf("failed to find author %s: %w", authorID, err)
	}

	product := &models.Product{AuthorID: authorID}
	in.apply(product)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.refreshAuthor(ctx, authorID)

	log.Printf("INFO: CatalogService.CreateProduct: product %s created by %s", product.ID, authorID)
	return product, nil
}

// owned loads a product and checks that actorID is its author.
func (s *CatalogService) owned(ctx context.Context, actorID, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if product.AuthorID != actorID {
		return nil, fmt.Errorf("product %s: %w", id, errs.ErrForbidden)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actorID, id string, in ProductInput) (*models.Product, error) {
	if err := helpers.ValidateStruct(s.validate, in); err != nil {
		return nil, err
	}
	product, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	in.apply(product)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	s.refreshAuthor(ctx, actorID)
	return product, nil
}

func (s *CatalogService) SetStatus(ctx context.Context, actorID, id, status string) error {
	if !models.ValidProductStatus(status) {
		return errs.Validation("unknown product status %q", status)
	}
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.productRepo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to set status of product %s: %w", id, err)
	}
	s.refreshAuthor(ctx, actorID)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actorID, id string) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	s.refreshAuthor(ctx, actorID)
	log.Printf("INFO: CatalogService.DeleteProduct: product %s deleted by %s", id, actorID)
	return nil
}

// refreshAuthor runs after the product change is committed; failures are only logged.
func (s *CatalogService) refreshAuthor(ctx context.Context, authorID string) {
	if err := s.userRepo.RefreshSellerStats(ctx, nil, authorID); err != nil {
		log.Printf("ERROR: CatalogService: failed to refresh stats of %s: %v", authorID, err)
	}
}
