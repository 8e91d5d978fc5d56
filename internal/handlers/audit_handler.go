package handlers

import (
	"petshop/internal/middleware"
	"petshop/internal/models"
	"petshop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	service *services.AuditService
	logger  *zap.SugaredLogger
}

func NewAuditHandler(service *services.AuditService, logger *zap.SugaredLogger) *AuditHandler {
	return &AuditHandler{service: service, logger: logger}
}

func (h *AuditHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	auditRoutes := router.Group("/audit", auth, middleware.RoleRequired(models.RoleAdmin))
	auditRoutes.Get("/", h.HandleListLogs)
	auditRoutes.Get("/stats", h.HandleStats)
}

// HandleListLogs returns the newest entries matching the query filters.
func (h *AuditHandler) HandleListLogs(c *fiber.Ctx) error {
	var filter services.AuditFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}
	logs, err := h.service.ListLogs(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve audit logs", err)
	}
	return c.JSON(logs)
}

func (h *AuditHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve audit stats", err)
	}
	return c.JSON(stats)
}
