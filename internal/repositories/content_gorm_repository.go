package repositories

import (
	"context"
	"fmt"
	"strings"

	"petshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMBlogPostRepository is a GORM implementation of BlogPostRepository.
type GORMBlogPostRepository struct {
	db *gorm.DB
}

func NewGORMBlogPostRepository(db *gorm.DB) *GORMBlogPostRepository {
	return &GORMBlogPostRepository{db: db}
}

func (r *GORMBlogPostRepository) List(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.db.WithContext(ctx).Order("date desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}

func (r *GORMBlogPostRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err, "blog post with ID %s", id)
	}
	return &post, nil
}

func (r *GORMBlogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return translate(err, "failed to create blog post")
	}
	return nil
}

func (r *GORMBlogPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	res := r.db.WithContext(ctx).Model(post).Select("*").Omit("ID", "Date").Updates(post)
	if res.Error != nil {
		return fmt.Errorf("failed to update blog post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("blog post with ID %s not found for update: %w", post.ID, ErrNotFound)
	}
	return nil
}

func (r *GORMBlogPostRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.BlogPost{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete blog post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("blog post with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// GORMContactRequestRepository is a GORM implementation of ContactRequestRepository.
type GORMContactRequestRepository struct {
	db *gorm.DB
}

func NewGORMContactRequestRepository(db *gorm.DB) *GORMContactRequestRepository {
	return &GORMContactRequestRepository{db: db}
}

func (r *GORMContactRequestRepository) List(ctx context.Context) ([]models.ContactRequest, error) {
	var reqs []models.ContactRequest
	if err := r.db.WithContext(ctx).Order("date desc").Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact requests: %w", err)
	}
	return reqs, nil
}

func (r *GORMContactRequestRepository) GetByID(ctx context.Context, id string) (*models.ContactRequest, error) {
	var req models.ContactRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err, "contact request with ID %s", id)
	}
	return &req, nil
}

func (r *GORMContactRequestRepository) Create(ctx context.Context, req *models.ContactRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return translate(err, "failed to create contact request")
	}
	return nil
}

func (r *GORMContactRequestRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&models.ContactRequest{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update contact request status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact request with ID %s not found for status update: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMContactRequestRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.ContactRequest{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact request with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// GORMMediaFileRepository is a GORM implementation of MediaFileRepository.
type GORMMediaFileRepository struct {
	db *gorm.DB
}

func NewGORMMediaFileRepository(db *gorm.DB) *GORMMediaFileRepository {
	return &GORMMediaFileRepository{db: db}
}

func (r *GORMMediaFileRepository) filtered(ctx context.Context, q MediaQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.MediaFile{})
	if q.FileType != "" {
		db = db.Where("file_type = ?", q.FileType)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		db = db.Where("LOWER(file_name) LIKE ?"+likeEscape, containsPattern(strings.ToLower(s)))
	}
	return db
}

func (r *GORMMediaFileRepository) List(ctx context.Context, q MediaQuery) ([]models.MediaFile, error) {
	db := r.filtered(ctx, q)
	if q.SortBy != "" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: q.SortBy}, Desc: q.SortDesc})
	}
	if q.Limit > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * q.Limit).Limit(q.Limit)
	}
	var files []models.MediaFile
	if err := db.Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to list media files: %w", err)
	}
	return files, nil
}

func (r *GORMMediaFileRepository) Count(ctx context.Context, q MediaQuery) (int64, error) {
	var n int64
	if err := r.filtered(ctx, q).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count media files: %w", err)
	}
	return n, nil
}

func (r *GORMMediaFileRepository) CountByType(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		FileType string
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&models.MediaFile{}).
		Select("file_type, COUNT(*) AS total").
		Group("file_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group media files: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.FileType] = row.Total
	}
	return counts, nil
}

func (r *GORMMediaFileRepository) GetByID(ctx context.Context, id string) (*models.MediaFile, error) {
	var file models.MediaFile
	if err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, translate(err, "media file with ID %s", id)
	}
	return &file, nil
}

func (r *GORMMediaFileRepository) Create(ctx context.Context, file *models.MediaFile) error {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return translate(err, "failed to create media file")
	}
	return nil
}

func (r *GORMMediaFileRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.MediaFile{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete media file: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("media file with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
