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

func newProductService(db *gorm.DB, audit services.AuditRecorder) *services.ProductService {
	return services.NewProductService(
		repositories.NewGORMTransactor(db),
		repositories.NewGORMProductRepository(db),
		audit,
		zap.NewNop().Sugar(),
	)
}

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		name string
		sale *int64
		want int64
	}{
		{"discount", int64Ptr(800), 800},
		{"zero sale", int64Ptr(0), 1000},
		{"no sale", nil, 1000},
		{"sale equal to price", int64Ptr(1000), 1000},
		{"sale above price", int64Ptr(1200), 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := models.Product{Price: 1000, SalePrice: tc.sale}
			assert.Equal(t, tc.want, p.EffectivePrice())
		})
	}
}

func TestProductService_CreateAndUpdate(t *testing.T) {
	db := dbtest.New(t)
	cat := &models.Category{Name: "Juguetes"}
	require.NoError(t, db.Create(cat).Error)
	audit := &recordingAudit{}
	svc := newProductService(db, audit)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, "admin-1", services.ProductInput{
		Code:       " TOY-01 ",
		Name:       "Hueso de goma",
		Price:      2990,
		SalePrice:  int64Ptr(2490),
		Stock:      10,
		CategoryID: &cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "TOY-01", created.Code)
	assert.Equal(t, models.ProductStatusActive, created.Status)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Juguetes", created.Category.Name)

	_, err = svc.CreateProduct(ctx, "admin-1", services.ProductInput{Code: "TOY-01", Name: "Otro", Price: 100})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	updated, err := svc.UpdateProduct(ctx, "admin-1", created.ID, services.ProductInput{
		Code:  "TOY-01",
		Name:  "Hueso de goma XL",
		Price: 3490,
		Stock: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hueso de goma XL", updated.Name)
	assert.Nil(t, updated.SalePrice)
	assert.Equal(t, 0, updated.Stock)
	assert.Nil(t, updated.Category)

	_, err = svc.UpdateProduct(ctx, "admin-1", "missing", services.ProductInput{Code: "X", Name: "X", Price: 1})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.Equal(t, []string{services.ActionProductCreate, services.ActionProductUpdate}, audit.actions())
}

func TestProductService_ArchiveIsIdempotentAndClearsCarts(t *testing.T) {
	db := dbtest.New(t)
	user := seedUser(t, db, models.RoleClient)
	p := seedProduct(t, db, "Shampoo", 5990, nil, 8)
	other := seedProduct(t, db, "Toalla", 3990, nil, 8)
	cart := seedCart(t, db, user.ID, map[*models.Product]int{p: 1, other: 2})

	audit := &recordingAudit{}
	svc := newProductService(db, audit)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		archived, err := svc.ArchiveProduct(ctx, "admin-1", p.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ProductStatusArchived, archived.Status)
	}
	assert.Equal(t, []string{services.ActionProductArchive, services.ActionProductArchive}, audit.actions())
	assert.Equal(t, []string{other.ID}, cartProductIDs(t, db, cart.ID))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, other.ID, active[0].ID)

	_, err = svc.GetActiveByCode(ctx, p.Code)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	restored, err := svc.RestoreProduct(ctx, "admin-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusActive, restored.Status)
	byCode, err := svc.GetActiveByCode(ctx, p.Code)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byCode.ID)

	_, err = svc.ArchiveProduct(ctx, "admin-1", "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_AuditFailureKeepsMutation(t *testing.T) {
	db := dbtest.New(t)
	// An audit recorder backed by a failing repository must not affect the caller.
	failing := new(MockAuditLogRepository)
	failing.On("Create", anyAuditLog).Return(assert.AnError)
	audit := services.NewAuditService(failing, zap.NewNop().Sugar())

	svc := newProductService(db, audit)
	created, err := svc.CreateProduct(context.Background(), "admin-1", services.ProductInput{Code: "A-1", Name: "Plato", Price: 1990, Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "Plato", created.Name)

	stored, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)
	failing.AssertNumberOfCalls(t, "Create", 1)
}
