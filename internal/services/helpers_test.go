package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"petshop/internal/models"
	"petshop/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockAuditRecorder is a mock implementation of services.AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, actorID, action, entity, entityID string, changes *models.AuditChanges) {
	m.Called(actorID, action, entity, entityID, changes)
}

// MockPublisher is a mock implementation of services.EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

// recordingAudit keeps recorded actions in memory.
type recordingAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (r *recordingAudit) Record(_ context.Context, actorID, action, entity, entityID string, changes *models.AuditChanges) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, models.AuditLog{Action: action, Entity: entity, EntityID: entityID, Changes: changes})
}

func (r *recordingAudit) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	id := uuid.New().String()
	user := &models.User{
		ID:        id,
		Email:     id[:8] + "@petshop.cl",
		RUN:       id[:9],
		FirstName: "Test",
		LastName:  role,
		Password:  "x",
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, sale *int64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:        uuid.New().String(),
		Code:      "SKU-" + uuid.New().String()[:8],
		Name:      name,
		Price:     price,
		SalePrice: sale,
		Stock:     stock,
		Images:    []string{},
		Status:    models.ProductStatusActive,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedCart(t *testing.T, db *gorm.DB, userID string, lines map[*models.Product]int) *models.Cart {
	t.Helper()
	cart := &models.Cart{ID: uuid.New().String(), UserID: userID}
	require.NoError(t, db.Create(cart).Error)
	for p, qty := range lines {
		require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: qty}).Error)
	}
	return cart
}

func stockOf(t *testing.T, db *gorm.DB, productID string) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", productID).Error)
	return p.Stock
}

func cartProductIDs(t *testing.T, db *gorm.DB, cartID string) []string {
	t.Helper()
	var ids []string
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Order("product_id").Pluck("product_id", &ids).Error)
	return ids
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

var _ repositories.Transactor = (*repositories.GORMTransactor)(nil)

var anyAuditLog = mock.AnythingOfType("*models.AuditLog")

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
