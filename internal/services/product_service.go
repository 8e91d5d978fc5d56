package services

import (
	"context"
	"fmt"
	"strings"

	"petshop/internal/models"
	"petshop/internal/repositories"

	"go.uber.org/zap"
)

// ProductInput is the admin product form.
type ProductInput struct {
	Code          string   `json:"code" validate:"required,max=64"`
	Name          string   `json:"name" validate:"required,max=150"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" validate:"gt=0"`
	SalePrice     *int64   `json:"sale_price" validate:"omitempty,gte=0"`
	Stock         int      `json:"stock" validate:"gte=0"`
	CriticalStock int      `json:"critical_stock" validate:"gte=0"`
	Images        []string `json:"images"`
	CategoryID    *uint    `json:"category_id"`
	BrandID       *uint    `json:"brand_id"`
}

func (in ProductInput) apply(p *models.Product) {
	p.Code = strings.TrimSpace(in.Code)
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.SalePrice = in.SalePrice
	p.Stock = in.Stock
	p.CriticalStock = in.CriticalStock
	p.Images = in.Images
	if p.Images == nil {
		p.Images = []string{}
	}
	p.CategoryID = in.CategoryID
	p.BrandID = in.BrandID
}

// ProductService handles business logic related to products.
type ProductService struct {
	tx          repositories.Transactor
	productRepo repositories.ProductRepository
	audit       AuditRecorder
	logger      *zap.SugaredLogger
}

// NewProductService creates a new ProductService.
func NewProductService(tx repositories.Transactor, productRepo repositories.ProductRepository, audit AuditRecorder, logger *zap.SugaredLogger) *ProductService {
	return &ProductService{
		tx:          tx,
		productRepo: productRepo,
		audit:       audit,
		logger:      logger,
	}
}

// ListActive returns the catalog shown to shoppers.
func (s *ProductService) ListActive(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List(ctx, repositories.ProductFilter{Status: models.ProductStatusActive, OrderBy: "name asc"})
}

// GetActiveByCode returns an active product by SKU.
func (s *ProductService) GetActiveByCode(ctx context.Context, code string) (*models.Product, error) {
	return s.productRepo.GetByCode(ctx, code, models.ProductStatusActive)
}

// ListAll returns every product including archived ones.
func (s *ProductService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List(ctx, repositories.ProductFilter{OrderBy: "name asc"})
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// CreateProduct adds an active product. A duplicate code fails with ErrDuplicate.
func (s *ProductService) CreateProduct(ctx context.Context, actorID string, in ProductInput) (*models.Product, error) {
	product := &models.Product{Status: models.ProductStatusActive}
	in.apply(product)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product %s: %w", product.Code, err)
	}
	created, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, ActionProductCreate, EntityProduct, created.ID, &models.AuditChanges{New: created})
	return created, nil
}

// UpdateProduct replaces the editable fields of a product.
func (s *ProductService) UpdateProduct(ctx context.Context, actorID, id string, in ProductInput) (*models.Product, error) {
	before, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *before
	updated.Category, updated.Brand = nil, nil
	in.apply(&updated)
	if err := s.productRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	after, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID, ActionProductUpdate, EntityProduct, id, &models.AuditChanges{Old: before, New: after})
	return after, nil
}

// ArchiveProduct soft-deletes a product and drops it from every cart. Archiving
// an archived product is not an error.
func (s *ProductService) ArchiveProduct(ctx context.Context, actorID, id string) (*models.Product, error) {
	var before, after *models.Product
	err := s.tx.Transaction(ctx, func(repos repositories.TxRepositories) error {
		var err error
		if before, err = repos.Products.GetByID(ctx, id); err != nil {
			return err
		}
		if err := repos.Carts.DeleteItemsByProduct(ctx, id); err != nil {
			return err
		}
		if err := repos.Products.SetStatus(ctx, id, models.ProductStatusArchived); err != nil {
			return err
		}
		after, err = repos.Products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, ActionProductArchive, EntityProduct, id, &models.AuditChanges{Old: before, New: after})
	return after, nil
}

// RestoreProduct makes an archived product active again.
func (s *ProductService) RestoreProduct(ctx context.Context, actorID, id string) (*models.Product, error) {
	before, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.SetStatus(ctx, id, models.ProductStatusActive); err != nil {
		return nil, err
	}
	after, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, ActionProductRestore, EntityProduct, id, &models.AuditChanges{Old: before, New: after})
	return after, nil
}
