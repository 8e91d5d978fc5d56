package repositories

import (
	"context"
	"fmt"

	"petshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userSummary limits the preloaded actor/customer columns.
func userSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "email", "run", "first_name", "last_name", "role")
}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	// Items are inserted by the association save; the user row is never touched.
	if err := r.db.WithContext(ctx).Omit("User").Create(order).Error; err != nil {
		return translate(err, "failed to create order")
	}
	return nil
}

func (r *GORMOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of user %s: %w", userID, err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("User", userSummary).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("User", userSummary).
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "order with ID %s", id)
	}
	return &order, nil
}

// UpdateStatus overwrites the status of an order.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for status update: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByUser removes every order of the user with its items.
func (r *GORMOrderRepository) DeleteByUser(ctx context.Context, userID string) error {
	db := r.db.WithContext(ctx)
	sub := db.Model(&models.Order{}).Select("id").Where("user_id = ?", userID)
	if err := db.Where("order_id IN (?)", sub).Delete(&models.OrderItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete order items of user %s: %w", userID, err)
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.Order{}).Error; err != nil {
		return fmt.Errorf("failed to delete orders of user %s: %w", userID, err)
	}
	return nil
}
