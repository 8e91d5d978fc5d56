package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petshop/internal/events"
	"petshop/internal/models"
	"petshop/internal/repositories"
	"petshop/pkg/rabbitmq"

	"go.uber.org/zap"
)

var validContactStatuses = map[string]bool{
	models.ContactStatusPending:  true,
	models.ContactStatusAnswered: true,
	models.ContactStatusClosed:   true,
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required"`
}

// ContactService handles contact requests and staff replies.
type ContactService struct {
	repo      repositories.ContactRequestRepository
	audit     AuditRecorder
	publisher EventPublisher
	logger    *zap.SugaredLogger
}

// NewContactService creates a new ContactService. publisher may be nil.
func NewContactService(repo repositories.ContactRequestRepository, audit AuditRecorder, publisher EventPublisher, logger *zap.SugaredLogger) *ContactService {
	return &ContactService{
		repo:      repo,
		audit:     audit,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit stores a new pending request.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.ContactRequest, error) {
	req := &models.ContactRequest{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: in.Message,
		Status:  models.ContactStatusPending,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *ContactService) ListRequests(ctx context.Context) ([]models.ContactRequest, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) GetRequest(ctx context.Context, id string) (*models.ContactRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ContactService) UpdateStatus(ctx context.Context, actorID, id, status string) (*models.ContactRequest, error) {
	if !validContactStatuses[status] {
		return nil, fmt.Errorf("contact status %q: %w", status, ErrInvalidStatus)
	}
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	after := *before
	after.Status = status

	s.audit.Record(ctx, actorID, ActionContactStatusUpdate, EntityContact, id, &models.AuditChanges{
		Old: map[string]string{"status": before.Status},
		New: map[string]string{"status": status},
	})
	return &after, nil
}

func (s *ContactService) DeleteRequest(ctx context.Context, actorID, id string) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID, ActionContactDelete, EntityContact, id, &models.AuditChanges{Old: before})
	return nil
}

// Reply queues an email to the requester and marks the request answered.
func (s *ContactService) Reply(ctx context.Context, actorID, id, message string) (*models.ContactRequest, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyReply
	}
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subject := "Re: " + before.Subject
	if before.Subject == "" {
		subject = "Re: your message"
	}
	publishEvent(s.publisher, s.logger, rabbitmq.QueueContactReplies, events.ContactReply{
		RequestID: before.ID,
		To:        before.Email,
		Name:      before.Name,
		Subject:   subject,
		Body:      message,
		RepliedBy: actorID,
		Timestamp: time.Now(),
	})

	if err := s.repo.UpdateStatus(ctx, id, models.ContactStatusAnswered); err != nil {
		return nil, err
	}
	after := *before
	after.Status = models.ContactStatusAnswered

	s.audit.Record(ctx, actorID, ActionContactReply, EntityContact, id, &models.AuditChanges{
		Old:   map[string]string{"status": before.Status},
		New:   map[string]string{"status": after.Status},
		Reply: message,
	})
	return &after, nil
}
