package repositories

import (
	"context"
	"errors"
	"fmt"

	"petshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByUserID returns the user's cart without creating it.
func (r *GORMCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err, "cart of user %s", userID)
	}
	return &cart, nil
}

// GetOrCreate returns the user's cart, creating an empty one on first access.
func (r *GORMCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	cart = &models.Cart{ID: uuid.New().String(), UserID: userID}
	// A concurrent request may have created it in between; fall back to reading it.
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(cart)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to create cart: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.GetByUserID(ctx, userID)
	}
	return cart, nil
}

// GetWithItems loads a cart with its items and their products.
func (r *GORMCartRepository) GetWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id asc") }).
		Preload("Items.Product.Category").
		Preload("Items.Product.Brand").
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		return nil, translate(err, "cart %s", cartID)
	}
	return &cart, nil
}

func (r *GORMCartRepository) FindItem(ctx context.Context, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error; err != nil {
		return nil, translate(err, "cart item for product %s", productID)
	}
	return &item, nil
}

// AddQuantity inserts the line or increments the existing one.
func (r *GORMCartRepository) AddQuantity(ctx context.Context, cartID, productID string, qty int) (*models.CartItem, error) {
	item := &models.CartItem{CartID: cartID, ProductID: productID, Quantity: qty}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{"quantity": gorm.Expr("cart_items.quantity + ?", qty)}),
	}).Create(item).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return r.FindItem(ctx, cartID, productID)
}

func (r *GORMCartRepository) SetQuantity(ctx context.Context, cartID, productID string, qty int) (*models.CartItem, error) {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", qty)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("cart item for product %s: %w", productID, ErrNotFound)
	}
	return r.FindItem(ctx, cartID, productID)
}

// DeleteItems removes only the given products' lines from the cart.
func (r *GORMCartRepository) DeleteItems(ctx context.Context, cartID string, productIDs []string) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id IN ?", cartID, productIDs).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete cart items: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteItemsByProduct removes a product from every cart.
func (r *GORMCartRepository) DeleteItemsByProduct(ctx context.Context, productID string) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart items of product %s: %w", productID, err)
	}
	return nil
}

func (r *GORMCartRepository) Clear(ctx context.Context, cartID string) error {
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}

// DeleteByUser removes the user's cart and its lines.
func (r *GORMCartRepository) DeleteByUser(ctx context.Context, userID string) error {
	db := r.db.WithContext(ctx)
	sub := db.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)
	if err := db.Where("cart_id IN (?)", sub).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart items of user %s: %w", userID, err)
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.Cart{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart of user %s: %w", userID, err)
	}
	return nil
}
