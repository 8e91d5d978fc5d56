package models

import "time"

// Product statuses. Archived products stay referenced by past orders.
const (
	ProductStatusActive   = "ACTIVE"
	ProductStatusArchived = "ARCHIVED"
)

// Category groups products (food, toys, accessories, hygiene).
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
}

// Brand is the manufacturer of a product.
type Brand struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
}

// Product represents a product in the store. Prices are whole pesos.
type Product struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Code          string    `json:"code" gorm:"uniqueIndex;type:varchar(64);not null"` // SKU
	Name          string    `json:"name" gorm:"type:varchar(150);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         int64     `json:"price" gorm:"not null"`
	SalePrice     *int64    `json:"sale_price"`
	Stock         int       `json:"stock" gorm:"not null;default:0"`
	CriticalStock int       `json:"critical_stock" gorm:"not null;default:0"`
	Images        []string  `json:"images" gorm:"serializer:json;type:text"`
	Status        string    `json:"status" gorm:"type:varchar(20);not null;default:ACTIVE;index"`
	CategoryID    *uint     `json:"category_id"`
	Category      *Category `json:"category,omitempty"`
	BrandID       *uint     `json:"brand_id"`
	Brand         *Brand    `json:"brand,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EffectivePrice returns the sale price when it is a real discount, otherwise the list price.
func (p Product) EffectivePrice() int64 {
	if p.SalePrice != nil && *p.SalePrice > 0 && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}
