package repositories

import (
	"context"

	"petshop/internal/models"
)

// BlogPostRepository defines the interface for blog post data access.
type BlogPostRepository interface {
	List(ctx context.Context) ([]models.BlogPost, error)
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id string) error
}

// ContactRequestRepository defines the interface for contact form data access.
type ContactRequestRepository interface {
	List(ctx context.Context) ([]models.ContactRequest, error)
	GetByID(ctx context.Context, id string) (*models.ContactRequest, error)
	Create(ctx context.Context, req *models.ContactRequest) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// MediaQuery pages and filters the media library.
type MediaQuery struct {
	Page     int
	Limit    int
	SortBy   string // column name, already whitelisted by the caller
	SortDesc bool
	FileType string
	Search   string
}

// MediaFileRepository defines the interface for media library data access.
type MediaFileRepository interface {
	List(ctx context.Context, q MediaQuery) ([]models.MediaFile, error)
	Count(ctx context.Context, q MediaQuery) (int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
	GetByID(ctx context.Context, id string) (*models.MediaFile, error)
	Create(ctx context.Context, file *models.MediaFile) error
	Delete(ctx context.Context, id string) error
}
