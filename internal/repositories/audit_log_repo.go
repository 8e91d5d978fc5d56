package repositories

import (
	"context"
	"fmt"
	"strings"

	"petshop/internal/models"

	"gorm.io/gorm"
)

// AuditLogFilter selects audit entries. Every non-empty field is ANDed.
type AuditLogFilter struct {
	Search string
	Role   string
	// ActionAny matches when the action contains any of the given fragments.
	ActionAny []string
	Entity    string
	Limit     int
}

// AuditLogRepository defines the interface for the append-only audit trail.
type AuditLogRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error)
	// Count returns the number of entries whose action contains any fragment; none counts all.
	Count(ctx context.Context, actionAny ...string) (int64, error)
}

// GORMAuditLogRepository is a GORM implementation of AuditLogRepository.
type GORMAuditLogRepository struct {
	db *gorm.DB
}

// NewGORMAuditLogRepository creates a new instance of GORMAuditLogRepository.
func NewGORMAuditLogRepository(db *gorm.DB) *GORMAuditLogRepository {
	return &GORMAuditLogRepository{db: db}
}

func (r *GORMAuditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(log).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func actionMatches(db *gorm.DB, fragments []string) *gorm.DB {
	cond := db.Session(&gorm.Session{NewDB: true})
	for i, f := range fragments {
		like := containsPattern(strings.ToUpper(f))
		if i == 0 {
			cond = cond.Where("UPPER(audit_logs.action) LIKE ?"+likeEscape, like)
		} else {
			cond = cond.Or("UPPER(audit_logs.action) LIKE ?"+likeEscape, like)
		}
	}
	return cond
}

func (r *GORMAuditLogRepository) List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error) {
	db := r.db.WithContext(ctx)
	q := db.Model(&models.AuditLog{}).
		Select("audit_logs.*").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Preload("User", userSummary)

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := containsPattern(strings.ToLower(s))
		q = q.Where(
			"(LOWER(audit_logs.action) LIKE ?"+likeEscape+" OR LOWER(audit_logs.entity) LIKE ?"+likeEscape+
				" OR LOWER(audit_logs.entity_id) LIKE ?"+likeEscape+" OR LOWER(users.first_name) LIKE ?"+likeEscape+
				" OR LOWER(users.last_name) LIKE ?"+likeEscape+" OR LOWER(users.email) LIKE ?"+likeEscape+")",
			like, like, like, like, like, like,
		)
	}
	if filter.Role != "" {
		q = q.Where("UPPER(users.role) = ?", strings.ToUpper(filter.Role))
	}
	if len(filter.ActionAny) > 0 {
		q = q.Where(actionMatches(db, filter.ActionAny))
	}
	if filter.Entity != "" {
		q = q.Where("LOWER(audit_logs.entity) = ?", strings.ToLower(filter.Entity))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var logs []models.AuditLog
	if err := q.Order("audit_logs.timestamp desc").Order("audit_logs.id desc").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

func (r *GORMAuditLogRepository) Count(ctx context.Context, actionAny ...string) (int64, error) {
	db := r.db.WithContext(ctx)
	q := db.Model(&models.AuditLog{})
	if len(actionAny) > 0 {
		q = q.Where(actionMatches(db, actionAny))
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}
	return n, nil
}
