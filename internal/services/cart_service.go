package services

import (
	"context"
	"errors"
	"fmt"

	"petshop/internal/models"
	"petshop/internal/repositories"
)

// CartService manages the shopper's cart. Quantities are checked against the
// current stock but nothing is reserved until the order is placed.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart with products, creating it on first access.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.cartRepo.GetWithItems(ctx, cart.ID)
}

func (s *CartService) activeProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != models.ProductStatusActive {
		return nil, fmt.Errorf("product %s is archived: %w", productID, repositories.ErrNotFound)
	}
	return product, nil
}

// AddItem adds qty units of a product, merging with an existing line.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int) (*models.CartItem, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	inCart := 0
	if item, err := s.cartRepo.FindItem(ctx, cart.ID, productID); err == nil {
		inCart = item.Quantity
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if product.Stock < inCart+qty {
		return nil, &StockError{ProductID: product.ID, Product: product.Name, Requested: inCart + qty, Available: product.Stock}
	}

	return s.cartRepo.AddQuantity(ctx, cart.ID, productID, qty)
}

// UpdateItem sets the quantity of a line. A quantity of zero or less removes
// the line and returns a nil item.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID string, qty int) (*models.CartItem, error) {
	if qty <= 0 {
		return nil, s.RemoveItem(ctx, userID, productID)
	}
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	if _, err := s.cartRepo.FindItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < qty {
		return nil, &StockError{ProductID: product.ID, Product: product.Name, Requested: qty, Available: product.Stock}
	}
	return s.cartRepo.SetQuantity(ctx, cart.ID, productID, qty)
}

// RemoveItem deletes one product line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCartNotFound
		}
		return err
	}
	n, err := s.cartRepo.DeleteItems(ctx, cart.ID, []string{productID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("product %s is not in the cart: %w", productID, repositories.ErrNotFound)
	}
	return nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCartNotFound
		}
		return err
	}
	return s.cartRepo.Clear(ctx, cart.ID)
}
