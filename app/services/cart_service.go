package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/Rakhulsr/go-edumarket/app/repositories"
	"github.com/Rakhulsr/go-edumarket/app/utils/calc"
)

type CartView struct {
	Items           []models.CartItem `json:"items"`
	Totals          calc.Totals       `json:"totals"`
	SubtotalDisplay string            `json:"subtotal_display"`
}

type CartService struct {
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	maxQty       int
}

func NewCartService(cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl, maxQty int) *CartService {
	if maxQty < 1 {
		maxQty = models.MaxCartQty
	}
	return &CartService{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		maxQty:       maxQty,
	}
}

// Add puts one unit of a product in the cart. Adding a product that is already there fails
// with errs.ErrDuplicateItem and leaves the existing line untouched.
func (s *CartService) Add(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	if product.Status != models.ProductStatusActive {
		return nil, errs.Validation("product %s is not available", productID)
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}
	if err := s.cartItemRepo.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add product %s to cart: %w", productID, err)
	}
	item.Product = product

	log.Printf("INFO: CartService.Add: user %s added product %s", userID, productID)
	return item, nil
}

func (s *CartService) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	if qty < 1 || qty > s.maxQty {
		return fmt.Errorf("%w: %d is outside 1..%d", errs.ErrInvalidQuantity, qty, s.maxQty)
	}
	if err := s.cartItemRepo.UpdateQuantity(ctx, userID, productID, qty); err != nil {
		return fmt.Errorf("failed to update quantity of %s: %w", productID, err)
	}
	return nil
}

func (s *CartService) Item(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	item, err := s.cartItemRepo.Get(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart line %s: %w", productID, err)
	}
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	if err := s.cartItemRepo.Delete(ctx, userID, productID); err != nil {
		return fmt.Errorf("failed to remove %s from cart: %w", productID, err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.cartItemRepo.Clear(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartService) List(ctx context.Context, userID string) (*CartView, error) {
	items, err := s.cartItemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	totals := calc.ComputeTotals(items)
	return &CartView{
		Items:           items,
		Totals:          totals,
		SubtotalDisplay: calc.FormatBRL(totals.Subtotal),
	}, nil
}

func (s *CartService) Count(ctx context.Context, userID string) (int, error) {
	n, err := s.cartItemRepo.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return n, nil
}
