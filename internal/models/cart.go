package models

import "time"

// Cart belongs to exactly one user and is created on first access.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Items     []CartItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is a single line of a cart. A cart holds at most one line per product.
type CartItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	CartID    string   `json:"cart_id" gorm:"uniqueIndex:idx_cart_product;type:varchar(36);not null"`
	ProductID string   `json:"product_id" gorm:"uniqueIndex:idx_cart_product;type:varchar(36);not null"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity" gorm:"not null"`
}
