package services

import (
	"context"

	"petshop/internal/models"
	"petshop/internal/repositories"
)

// CatalogService serves the product taxonomy.
type CatalogService struct {
	repo repositories.CatalogRepository
}

func NewCatalogService(repo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) Brands(ctx context.Context) ([]models.Brand, error) {
	return s.repo.ListBrands(ctx)
}
