package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petshop/internal/events"
	"petshop/internal/models"
	"petshop/internal/repositories"
	"petshop/pkg/rabbitmq"

	"go.uber.org/zap"
)

// LineRequest is one requested line of an order.
type LineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// PlaceOrderRequest carries everything the checkout sends. Total and
// ShippingCost are taken as given.
type PlaceOrderRequest struct {
	Lines        []LineRequest  `json:"items" validate:"required,min=1,dive"`
	ShippingInfo map[string]any `json:"shipping_info"`
	ShippingCost int64          `json:"shipping_cost" validate:"gte=0"`
	Total        int64          `json:"total" validate:"gte=0"`
	OrderRef     *string        `json:"order_ref,omitempty" validate:"omitempty,max=64"`
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusProcessing: true,
	models.OrderStatusCompleted:  true,
	models.OrderStatusCancelled:  true,
}

// OrderService handles business logic related to orders.
type OrderService struct {
	tx        repositories.Transactor
	orderRepo repositories.OrderRepository
	audit     AuditRecorder
	publisher EventPublisher
	logger    *zap.SugaredLogger
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(tx repositories.Transactor, orderRepo repositories.OrderRepository, audit AuditRecorder, publisher EventPublisher, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{
		tx:        tx,
		orderRepo: orderRepo,
		audit:     audit,
		publisher: publisher,
		logger:    logger,
	}
}

func validateOrderRequest(req PlaceOrderRequest) error {
	if len(req.Lines) == 0 {
		return fmt.Errorf("order has no items: %w", ErrInvalidOrder)
	}
	for i, line := range req.Lines {
		if line.ProductID == "" {
			return fmt.Errorf("item %d has no product: %w", i, ErrInvalidOrder)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("item %d has quantity %d: %w", i, line.Quantity, ErrInvalidOrder)
		}
	}
	if req.ShippingCost < 0 || req.Total < 0 {
		return fmt.Errorf("negative amounts: %w", ErrInvalidOrder)
	}
	return nil
}

// PlaceOrder turns the requested lines into an order in one transaction: stock
// is checked and decremented, prices are frozen from the current catalog and
// the purchased lines leave the user's cart. Any failure rolls everything back.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*models.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderRef:     req.OrderRef,
		UserID:       userID,
		Total:        req.Total,
		ShippingCost: req.ShippingCost,
		ShippingInfo: req.ShippingInfo,
		Status:       models.OrderStatusProcessing,
	}

	err := s.tx.Transaction(ctx, func(repos repositories.TxRepositories) error {
		cart, err := repos.Carts.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("user %s: %w", userID, ErrCartNotFound)
			}
			return err
		}

		items := make([]models.OrderItem, 0, len(req.Lines))
		for _, line := range req.Lines {
			product, err := repos.Products.GetByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return &StockError{ProductID: line.ProductID, Product: line.ProductID, Requested: line.Quantity}
				}
				return err
			}
			if product.Stock < line.Quantity {
				return &StockError{ProductID: product.ID, Product: product.Name, Requested: line.Quantity, Available: product.Stock}
			}
			items = append(items, models.OrderItem{
				ProductID:       product.ID,
				Quantity:        line.Quantity,
				PriceAtPurchase: product.EffectivePrice(),
			})
		}
		order.Items = items

		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}

		purchased := make([]string, 0, len(items))
		for _, item := range items {
			// The conditional decrement also catches a concurrent order or a
			// product repeated across lines.
			if err := repos.Products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repositories.ErrStockConflict) {
					available := 0
					name := item.ProductID
					if p, gerr := repos.Products.GetByID(ctx, item.ProductID); gerr == nil {
						available, name = p.Stock, p.Name
					}
					return &StockError{ProductID: item.ProductID, Product: name, Requested: item.Quantity, Available: available}
				}
				return err
			}
			purchased = append(purchased, item.ProductID)
		}

		if _, err := repos.Carts.DeleteItems(ctx, cart.ID, purchased); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Infow("order rejected", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Infow("order placed", "order_id", order.ID, "user_id", userID, "items", len(order.Items), "total", order.Total)
	s.publishCreated(order)
	return order, nil
}

func (s *OrderService) publishCreated(order *models.Order) {
	items := make([]events.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, events.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.PriceAtPurchase})
	}
	publishEvent(s.publisher, s.logger, rabbitmq.QueueOrderEvents, events.OrderCreated{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		Total:     order.Total,
		Items:     items,
		Timestamp: time.Now(),
	})
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// ListAll returns every order with its buyer, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

// GetOrder retrieves a single order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// UpdateStatus overwrites the order status. Any of Procesando, Completado or
// Cancelado is accepted from any current status; there is no transition
// table. Other values fail with ErrInvalidStatus and leave the order as is.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, id, status string) (*models.Order, error) {
	if !validOrderStatuses[status] {
		return nil, fmt.Errorf("order status %q: %w", status, ErrInvalidStatus)
	}

	before, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	after, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, ActionOrderStatusUpdate, EntityOrder, id, &models.AuditChanges{
		Old: map[string]string{"status": before.Status},
		New: map[string]string{"status": after.Status},
	})
	return after, nil
}
