package services

import (
	"context"
	"strings"

	"petshop/internal/models"
	"petshop/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Audit action tags, formatted <ENTITY>_<VERB>.
const (
	ActionProductCreate       = "PRODUCT_CREATE"
	ActionProductUpdate       = "PRODUCT_UPDATE"
	ActionProductArchive      = "PRODUCT_ARCHIVE"
	ActionProductRestore      = "PRODUCT_RESTORE"
	ActionUserCreate          = "USER_CREATE"
	ActionUserUpdate          = "USER_UPDATE"
	ActionUserDelete          = "USER_DELETE"
	ActionBlogCreate          = "BLOG_CREATE"
	ActionBlogUpdate          = "BLOG_UPDATE"
	ActionBlogDelete          = "BLOG_DELETE"
	ActionContactStatusUpdate = "CONTACT_STATUS_UPDATE"
	ActionContactDelete       = "CONTACT_DELETE"
	ActionContactReply        = "CONTACT_REPLY"
	ActionOrderStatusUpdate   = "ORDER_STATUS_UPDATE"
	ActionMediaUpload         = "MEDIA_UPLOAD"
	ActionMediaDelete         = "MEDIA_DELETE"
)

// Audited entity kinds.
const (
	EntityProduct = "Product"
	EntityUser    = "User"
	EntityBlog    = "BlogPost"
	EntityContact = "ContactRequest"
	EntityOrder   = "Order"
	EntityMedia   = "MediaFile"
)

// AuditPageSize caps ListLogs results.
const AuditPageSize = 200

// AuditRecorder appends audit entries. Implementations never fail the caller.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, action, entity, entityID string, changes *models.AuditChanges)
}

// AuditFilter holds the optional filters of the audit log screen.
type AuditFilter struct {
	Search     string `query:"searchTerm"`
	Role       string `query:"roleFilter"`
	ActionType string `query:"actionType"`
	EntityType string `query:"entityType"`
}

// AuditStats buckets the audit trail by action family.
type AuditStats struct {
	Total   int64 `json:"total"`
	Creates int64 `json:"creates"`
	Updates int64 `json:"updates"`
	Deletes int64 `json:"deletes"`
}

// AuditService records and queries the admin audit trail.
type AuditService struct {
	repo   repositories.AuditLogRepository
	logger *zap.SugaredLogger
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo repositories.AuditLogRepository, logger *zap.SugaredLogger) *AuditService {
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

// Record persists one audit entry. Errors and panics are logged and swallowed,
// and the write is detached from the request's cancellation.
func (s *AuditService) Record(ctx context.Context, actorID, action, entity, entityID string, changes *models.AuditChanges) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("audit log write panicked", "action", action, "entity_id", entityID, "panic", r)
		}
	}()

	entry := &models.AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Changes:  changes,
	}
	if actorID != "" {
		entry.UserID = &actorID
	}

	if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Errorw("failed to create audit log", "action", action, "entity", entity, "entity_id", entityID, "error", err)
		return
	}
	s.logger.Debugw("audit log recorded", "action", action, "entity", entity, "entity_id", entityID)
}

// actionFamily expands an action-type filter. Archiving is the soft delete, so
// DELETE also matches ARCHIVE tags.
func actionFamily(actionType string) []string {
	actionType = strings.ToUpper(strings.TrimSpace(actionType))
	switch actionType {
	case "":
		return nil
	case "DELETE":
		return []string{"DELETE", "ARCHIVE"}
	default:
		return []string{actionType}
	}
}

// ListLogs returns the newest audit entries matching every supplied filter.
func (s *AuditService) ListLogs(ctx context.Context, filter AuditFilter) ([]models.AuditLog, error) {
	return s.repo.List(ctx, repositories.AuditLogFilter{
		Search:    filter.Search,
		Role:      strings.TrimSpace(filter.Role),
		ActionAny: actionFamily(filter.ActionType),
		Entity:    strings.TrimSpace(filter.EntityType),
		Limit:     AuditPageSize,
	})
}

// Stats counts the audit trail per action family with independent queries.
func (s *AuditService) Stats(ctx context.Context) (*AuditStats, error) {
	var stats AuditStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Total, err = s.repo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Creates, err = s.repo.Count(gctx, "CREATE")
		return err
	})
	g.Go(func() (err error) {
		stats.Updates, err = s.repo.Count(gctx, "UPDATE")
		return err
	})
	g.Go(func() (err error) {
		stats.Deletes, err = s.repo.Count(gctx, actionFamily("DELETE")...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
