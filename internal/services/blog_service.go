package services

import (
	"context"

	"petshop/internal/models"
	"petshop/internal/repositories"
)

// BlogPostInput is the admin blog form.
type BlogPostInput struct {
	Title            string `json:"title" validate:"required,max=200"`
	ShortDescription string `json:"short_description" validate:"max=500"`
	LongDescription  string `json:"long_description"`
	ImageURL         string `json:"image_url" validate:"omitempty,max=500"`
	Author           string `json:"author" validate:"max=100"`
}

// BlogService manages blog posts.
type BlogService struct {
	repo  repositories.BlogPostRepository
	audit AuditRecorder
}

func NewBlogService(repo repositories.BlogPostRepository, audit AuditRecorder) *BlogService {
	return &BlogService{repo: repo, audit: audit}
}

func (s *BlogService) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	return s.repo.List(ctx)
}

func (s *BlogService) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BlogService) CreatePost(ctx context.Context, actorID string, in BlogPostInput) (*models.BlogPost, error) {
	post := &models.BlogPost{
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		ImageURL:         in.ImageURL,
		Author:           in.Author,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID, ActionBlogCreate, EntityBlog, post.ID, &models.AuditChanges{New: post})
	return post, nil
}

func (s *BlogService) UpdatePost(ctx context.Context, actorID, id string, in BlogPostInput) (*models.BlogPost, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *before
	updated.Title = in.Title
	updated.ShortDescription = in.ShortDescription
	updated.LongDescription = in.LongDescription
	updated.ImageURL = in.ImageURL
	updated.Author = in.Author
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID, ActionBlogUpdate, EntityBlog, id, &models.AuditChanges{Old: before, New: updated})
	return &updated, nil
}

func (s *BlogService) DeletePost(ctx context.Context, actorID, id string) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID, ActionBlogDelete, EntityBlog, id, &models.AuditChanges{Old: before})
	return nil
}
