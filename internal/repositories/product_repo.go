package repositories

import (
	"context"

	"petshop/internal/models"
)

// ProductFilter narrows product listings. Empty fields impose no constraint.
type ProductFilter struct {
	Status  string
	OrderBy string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByCode(ctx context.Context, code, status string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SetStatus(ctx context.Context, id, status string) error
	// DecrementStock subtracts qty only if at least qty units remain.
	DecrementStock(ctx context.Context, id string, qty int) error
}

// CatalogRepository reads the static catalog lookups.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
}
