package repositories

import (
	"context"
	"fmt"

	"petshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func (r *GORMProductRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Preload("Brand")
}

// List retrieves products, optionally restricted to one status.
func (r *GORMProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := r.withRelations(ctx)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OrderBy != "" {
		q = q.Order(filter.OrderBy)
	}
	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID regardless of status.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.withRelations(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err, "product with ID %s", id)
	}
	return &product, nil
}

// GetByCode retrieves a product by SKU. An empty status matches any status.
func (r *GORMProductRepository) GetByCode(ctx context.Context, code, status string) (*models.Product, error) {
	q := r.withRelations(ctx).Where("code = ?", code)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var product models.Product
	if err := q.First(&product).Error; err != nil {
		return nil, translate(err, "product with code %s", code)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit("Category", "Brand").Create(product).Error; err != nil {
		return translate(err, "failed to create product")
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	// Select("*") writes zero values too (sale price cleared, stock 0).
	res := r.db.WithContext(ctx).Model(product).
		Select("*").Omit("ID", "CreatedAt", "Category", "Brand").
		Updates(product)
	if res.Error != nil {
		return translate(res.Error, "failed to update product")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// SetStatus flips the product status (soft delete / restore).
func (r *GORMProductRepository) SetStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to set product status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found: %w", id, ErrNotFound)
	}
	return nil
}

// DecrementStock runs a conditional update so concurrent orders can never oversell.
func (r *GORMProductRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrStockConflict)
	}
	return nil
}

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{db: db}
}

func (r *GORMCatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *GORMCatalogRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("name asc").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}
