package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/helpers"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/repositories"
	"github.com/Rakhulsr/go-edumarket/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput names the products to buy. An empty ProductIDs buys the whole cart.
type CheckoutInput struct {
	ProductIDs    []string `json:"product_ids" validate:"dive,required"`
	PaymentMethod string   `json:"payment_method" validate:"required,oneof=credit_card pix"`
	Notes         string   `json:"notes" validate:"max=1000"`
}

type Receipt struct {
	Sales        []models.Sale   `json:"sales"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
}

type CheckoutService struct {
	db           *gorm.DB
	productRepo  repositories.ProductRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	saleRepo     repositories.SaleRepository
	userRepo     repositories.UserRepositoryImpl
	validate     *validator.Validate
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	saleRepo repositories.SaleRepository,
	userRepo repositories.UserRepositoryImpl,
	validate *validator.Validate,
) *CheckoutService {
	return &CheckoutService{
		db:           db,
		productRepo:  productRepo,
		cartItemRepo: cartItemRepo,
		saleRepo:     saleRepo,
		userRepo:     userRepo,
		validate:     validate,
	}
}

// Checkout buys every distinct product in one transaction: one completed Sale per product at
// the price read inside the transaction. Either every Sale is stored or none is; a failure
// is returned as *errs.CheckoutError naming the products that caused it.
func (s *CheckoutService) Checkout(ctx context.Context, buyerID string, in CheckoutInput) (*Receipt, error) {
	if err := helpers.ValidateStruct(s.validate, in); err != nil {
		return nil, err
	}

	productIDs := lo.Uniq(in.ProductIDs)
	if len(productIDs) == 0 {
		items, err := s.cartItemRepo.ListByUser(ctx, buyerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart: %w", err)
		}
		productIDs = lo.Uniq(lo.Map(items, func(item models.CartItem, _ int) string { return item.ProductID }))
	}
	if len(productIDs) == 0 {
		return nil, errs.Validation("nothing to check out")
	}

	var sales []models.Sale
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := s.productRepo.GetByIDs(ctx, tx, productIDs)
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		byID := lo.KeyBy(products, func(p models.Product) string { return p.ID })

		var failed []errs.LineError
		for _, id := range productIDs {
			product, ok := byID[id]
			switch {
			case !ok:
				failed = append(failed, errs.LineError{ProductID: id, Err: errs.ErrNotFound})
			case product.Status != models.ProductStatusActive:
				failed = append(failed, errs.LineError{ProductID: id, Err: errs.Validation("product is %s", product.Status)})
			case product.AuthorID == buyerID:
				failed = append(failed, errs.LineError{ProductID: id, Err: errs.Validation("sellers cannot buy their own product")})
			}
		}
		if len(failed) > 0 {
			return &errs.CheckoutError{Lines: failed}
		}

		for _, id := range productIDs {
			product := byID[id]
			sale := models.Sale{
				ProductID:     id,
				BuyerID:       buyerID,
				SellerID:      product.AuthorID,
				Amount:        product.Price,
				Status:        models.SaleStatusCompleted,
				PaymentMethod: strings.TrimSpace(in.PaymentMethod),
				Notes:         in.Notes,
			}
			if err := s.saleRepo.Create(ctx, tx, &sale); err != nil {
				return &errs.CheckoutError{Lines: []errs.LineError{{ProductID: id, Err: err}}}
			}
			if err := s.productRepo.IncrementDownloadCount(ctx, tx, id); err != nil {
				return &errs.CheckoutError{Lines: []errs.LineError{{ProductID: id, Err: err}}}
			}
			sales = append(sales, sale)
		}

		sellers := lo.Uniq(lo.Map(sales, func(sale models.Sale, _ int) string { return sale.SellerID }))
		for _, sellerID := range sellers {
			if err := s.userRepo.RefreshSellerStats(ctx, tx, sellerID); err != nil {
				return fmt.Errorf("failed to refresh stats of seller %s: %w", sellerID, err)
			}
		}

		if err := s.cartItemRepo.DeleteProducts(ctx, tx, buyerID, productIDs); err != nil {
			return fmt.Errorf("failed to remove purchased products from cart: %w", err)
		}
		return nil
	})

	if txErr != nil {
		log.Printf("ERROR: CheckoutService.Checkout: buyer %s, rolled back: %v", buyerID, txErr)
		var checkoutErr *errs.CheckoutError
		if errors.As(txErr, &checkoutErr) {
			return nil, checkoutErr
		}
		return nil, &errs.CheckoutError{Lines: lo.Map(productIDs, func(id string, _ int) errs.LineError {
			return errs.LineError{ProductID: id, Err: txErr}
		})}
	}

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Amount)
	}

	log.Printf("SUCCESS: CheckoutService.Checkout: buyer %s bought %d products for %s", buyerID, len(sales), total.StringFixed(2))
	return &Receipt{
		Sales:        sales,
		Total:        total,
		TotalDisplay: calc.FormatBRL(total),
	}, nil
}

// TransitionSale moves a sale through pending -> completed | cancelled and
// completed -> refunded. The seller drives every transition; the buyer may only cancel a
// pending sale. Completing a sale counts a download; refunds leave download counts alone.
func (s *CheckoutService) TransitionSale(ctx context.Context, actorID, saleID, status string) (*models.Sale, error) {
	var updated *models.Sale
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.GetByID(ctx, tx, saleID)
		if err != nil {
			return fmt.Errorf("failed to get sale %s: %w", saleID, err)
		}

		isSeller := sale.SellerID == actorID
		isBuyerCancel := sale.BuyerID == actorID && sale.Status == models.SaleStatusPending && status == models.SaleStatusCancelled
		if !isSeller && !isBuyerCancel {
			return fmt.Errorf("sale %s: %w", saleID, errs.ErrForbidden)
		}
		if !models.CanTransition(sale.Status, status) {
			return fmt.Errorf("sale %s from %s to %s: %w", saleID, sale.Status, status, errs.ErrInvalidTransition)
		}

		if err := s.saleRepo.UpdateStatus(ctx, tx, saleID, sale.Status, status); err != nil {
			return fmt.Errorf("failed to update sale %s: %w", saleID, err)
		}
		if status == models.SaleStatusCompleted {
			if err := s.productRepo.IncrementDownloadCount(ctx, tx, sale.ProductID); err != nil {
				return fmt.Errorf("failed to count download of %s: %w", sale.ProductID, err)
			}
		}
		if err := s.userRepo.RefreshSellerStats(ctx, tx, sale.SellerID); err != nil {
			return fmt.Errorf("failed to refresh stats of seller %s: %w", sale.SellerID, err)
		}

		sale.Status = status
		updated = sale
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Printf("INFO: CheckoutService.TransitionSale: sale %s is now %s", saleID, status)
	return updated, nil
}

func (s *CheckoutService) Purchases(ctx context.Context, buyerID string) ([]models.Sale, error) {
	sales, err := s.saleRepo.ListByBuyer(ctx, buyerID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return sales, nil
}

func (s *CheckoutService) Sales(ctx context.Context, sellerID string) ([]models.Sale, error) {
	sales, err := s.saleRepo.ListBySeller(ctx, sellerID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
