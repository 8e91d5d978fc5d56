package models

import "time"

// Order statuses persisted by the store front.
const (
	OrderStatusProcessing = "Procesando"
	OrderStatusCompleted  = "Completado"
	OrderStatusCancelled  = "Cancelado"
)

// OrderItem represents a single item within an order.
type OrderItem struct {
	ID              uint     `json:"id" gorm:"primaryKey"`
	OrderID         string   `json:"order_id" gorm:"type:varchar(36);not null;index"`
	ProductID       string   `json:"product_id" gorm:"type:varchar(36);not null;index"`
	Product         *Product `json:"product,omitempty"`
	Quantity        int      `json:"quantity" gorm:"not null"`
	PriceAtPurchase int64    `json:"price_at_purchase" gorm:"not null"` // Price at the time of order
}

// Order represents a customer order. Items are a historical snapshot.
type Order struct {
	ID           string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderRef     *string        `json:"order_ref,omitempty" gorm:"uniqueIndex;type:varchar(64)"`
	UserID       string         `json:"user_id" gorm:"type:varchar(36);not null;index"`
	User         *User          `json:"user,omitempty"`
	Items        []OrderItem    `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	Total        int64          `json:"total" gorm:"not null"`
	ShippingCost int64          `json:"shipping_cost" gorm:"not null;default:0"`
	ShippingInfo map[string]any `json:"shipping_info" gorm:"serializer:json;type:text"`
	Status       string         `json:"status" gorm:"type:varchar(30);not null"`
	OrderDate    time.Time      `json:"order_date" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
