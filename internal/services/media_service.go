package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"petshop/internal/models"
	"petshop/internal/repositories"
	"petshop/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMediaPageSize = 20
	maxMediaPageSize     = 100
	maxParallelUploads   = 4
	mediaRootFolder      = "petshop"
)

var mediaSortColumns = map[string]string{
	"createdAt": "created_at",
	"fileName":  "file_name",
	"fileType":  "file_type",
	"size":      "size",
}

// UploadFile is one file of a multipart upload.
type UploadFile struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// MediaListOptions are the query parameters of the media library.
type MediaListOptions struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder"`
	FilterType string `query:"filterType"`
	Search     string `query:"search"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int64 `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	ItemsPerPage int   `json:"items_per_page"`
}

// MediaPage is a page of the media library.
type MediaPage struct {
	Data       []models.MediaFile `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// MediaStats counts stored files per type.
type MediaStats struct {
	TotalFiles int64            `json:"total_files"`
	ByType     map[string]int64 `json:"by_type"`
}

// MediaType classifies a MIME type.
func MediaType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaTypeVideo
	default:
		return models.MediaTypeFile
	}
}

// MediaService manages the media library.
type MediaService struct {
	repo   repositories.MediaFileRepository
	store  storage.BlobStore
	audit  AuditRecorder
	logger *zap.SugaredLogger
}

// NewMediaService creates a new MediaService.
func NewMediaService(repo repositories.MediaFileRepository, store storage.BlobStore, audit AuditRecorder, logger *zap.SugaredLogger) *MediaService {
	return &MediaService{
		repo:   repo,
		store:  store,
		audit:  audit,
		logger: logger,
	}
}

func (s *MediaService) upload(ctx context.Context, actorID string, f UploadFile) (*models.MediaFile, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.FileName, err)
	}
	defer r.Close()

	fileType := MediaType(f.ContentType)
	obj, err := s.store.Put(ctx, mediaRootFolder+"/"+fileType+"s", f.FileName, r)
	if err != nil {
		return nil, err
	}

	file := &models.MediaFile{
		FileName: f.FileName,
		URL:      obj.URL,
		PublicID: obj.Key,
		FileType: fileType,
		Size:     obj.Size,
	}
	if err := s.repo.Create(ctx, file); err != nil {
		if derr := s.store.Delete(context.WithoutCancel(ctx), obj.Key); derr != nil {
			s.logger.Warnw("failed to remove orphaned blob", "key", obj.Key, "error", derr)
		}
		return nil, err
	}

	s.audit.Record(ctx, actorID, ActionMediaUpload, EntityMedia, file.ID, &models.AuditChanges{New: file})
	return file, nil
}

// Upload stores the files concurrently. On failure the files that did upload
// are kept and the first error is returned.
func (s *MediaService) Upload(ctx context.Context, actorID string, files []UploadFile) ([]models.MediaFile, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	uploaded := make([]*models.MediaFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			file, err := s.upload(gctx, actorID, f)
			if err != nil {
				return err
			}
			uploaded[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.MediaFile, 0, len(uploaded))
	for _, file := range uploaded {
		out = append(out, *file)
	}
	s.logger.Infow("media uploaded", "count", len(out), "actor_id", actorID)
	return out, nil
}

// List returns one page of the media library.
func (s *MediaService) List(ctx context.Context, opts MediaListOptions) (*MediaPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = defaultMediaPageSize
	}
	if opts.Limit > maxMediaPageSize {
		opts.Limit = maxMediaPageSize
	}
	column, ok := mediaSortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	q := repositories.MediaQuery{
		Page:     opts.Page,
		Limit:    opts.Limit,
		SortBy:   column,
		SortDesc: !strings.EqualFold(opts.SortOrder, "asc"),
		Search:   opts.Search,
	}
	switch opts.FilterType {
	case models.MediaTypeImage, models.MediaTypeVideo, models.MediaTypeFile:
		q.FileType = opts.FilterType
	}

	var (
		files []models.MediaFile
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		files, err = s.repo.List(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.repo.Count(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MediaPage{
		Data: files,
		Pagination: Pagination{
			TotalItems:   total,
			TotalPages:   (total + int64(opts.Limit) - 1) / int64(opts.Limit),
			CurrentPage:  opts.Page,
			ItemsPerPage: opts.Limit,
		},
	}, nil
}

func (s *MediaService) Stats(ctx context.Context) (*MediaStats, error) {
	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	stats := &MediaStats{ByType: byType}
	for _, n := range byType {
		stats.TotalFiles += n
	}
	return stats, nil
}

// Delete removes the blob first, then its record.
func (s *MediaService) Delete(ctx context.Context, actorID, id string) error {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, file.PublicID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID, ActionMediaDelete, EntityMedia, id, &models.AuditChanges{Old: file})
	return nil
}
