package services_test

import (
	"context"
	"testing"

	"petshop/internal/database/dbtest"
	"petshop/internal/models"
	"petshop/internal/repositories"
	"petshop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB, audit services.AuditRecorder) *services.UserService {
	return services.NewUserService(
		repositories.NewGORMTransactor(db),
		repositories.NewGORMUserRepository(db),
		audit,
		zap.NewNop().Sugar(),
	)
}

func TestUserService_CreateUpdate(t *testing.T) {
	db := dbtest.New(t)
	audit := &recordingAudit{}
	svc := newUserService(db, audit)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "admin-1", services.UserInput{
		Email: "vendedor@petshop.cl", Password: "secreto1", RUN: "11.111.111-1", FirstName: "Pedro", Role: "seller",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, user.Role)
	assert.Equal(t, "111111111", user.RUN)

	_, err = svc.CreateUser(ctx, "admin-1", services.UserInput{
		Email: "otro@petshop.cl", Password: "secreto1", RUN: "111111111", FirstName: "Otro", Role: models.RoleClient,
	})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = svc.CreateUser(ctx, "admin-1", services.UserInput{
		Email: "x@petshop.cl", Password: "secreto1", RUN: "22222222-2", FirstName: "X", Role: "ROOT",
	})
	assert.ErrorIs(t, err, services.ErrInvalidRole)

	name, role := "Pedro Pablo", "admin"
	updated, err := svc.UpdateUser(ctx, "admin-1", user.ID, services.UserUpdate{FirstName: &name, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "Pedro Pablo", updated.FirstName)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Equal(t, user.Email, updated.Email)

	bad := "GOD"
	_, err = svc.UpdateUser(ctx, "admin-1", user.ID, services.UserUpdate{Role: &bad})
	assert.ErrorIs(t, err, services.ErrInvalidRole)

	assert.Equal(t, []string{services.ActionUserCreate, services.ActionUserUpdate}, audit.actions())

	// Audit snapshots never carry the password hash.
	require.NotNil(t, audit.entries[0].Changes)
	assert.NotContains(t, mustJSON(t, audit.entries[0].Changes), "secreto1")
}

func TestUserService_DeleteCascades(t *testing.T) {
	db := dbtest.New(t)
	user := seedUser(t, db, models.RoleClient)
	p := seedProduct(t, db, "Comedero", 4500, nil, 5)
	seedCart(t, db, user.ID, map[*models.Product]int{p: 2})

	orders := newOrderService(db, new(MockAuditRecorder), nil)
	_, err := orders.PlaceOrder(context.Background(), user.ID, services.PlaceOrderRequest{
		Lines: []services.LineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	audit := &recordingAudit{}
	svc := newUserService(db, audit)
	require.NoError(t, svc.DeleteUser(context.Background(), "admin-1", user.ID))

	assert.Zero(t, countRows(t, db, &models.Order{}))
	assert.Zero(t, countRows(t, db, &models.OrderItem{}))
	assert.Zero(t, countRows(t, db, &models.Cart{}))
	assert.Zero(t, countRows(t, db, &models.CartItem{}))
	_, err = svc.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Equal(t, []string{services.ActionUserDelete}, audit.actions())

	err = svc.DeleteUser(context.Background(), "admin-1", user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
