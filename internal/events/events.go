package events

import "time"

// OrderItem is the line snapshot carried by order events.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// OrderCreated is published once an order transaction has committed.
type OrderCreated struct {
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id"`
	Status    string      `json:"status"`
	Total     int64       `json:"total"`
	Items     []OrderItem `json:"items"`
	Timestamp time.Time   `json:"timestamp"`
}

// ContactReply asks the mail worker to deliver a staff reply.
type ContactReply struct {
	RequestID string    `json:"request_id"`
	To        string    `json:"to"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	RepliedBy string    `json:"replied_by"`
	Timestamp time.Time `json:"timestamp"`
}
