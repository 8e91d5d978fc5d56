package repositories

import (
	"context"

	"petshop/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	GetWithItems(ctx context.Context, cartID string) (*models.Cart, error)
	FindItem(ctx context.Context, cartID, productID string) (*models.CartItem, error)
	AddQuantity(ctx context.Context, cartID, productID string, qty int) (*models.CartItem, error)
	SetQuantity(ctx context.Context, cartID, productID string, qty int) (*models.CartItem, error)
	DeleteItems(ctx context.Context, cartID string, productIDs []string) (int64, error)
	DeleteItemsByProduct(ctx context.Context, productID string) error
	Clear(ctx context.Context, cartID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
