package handlers

import (
	"io"
	"mime/multipart"

	"petshop/internal/middleware"
	"petshop/internal/models"
	"petshop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MediaHandler serves the media library.
type MediaHandler struct {
	service *services.MediaService
	logger  *zap.SugaredLogger
}

func NewMediaHandler(service *services.MediaService, logger *zap.SugaredLogger) *MediaHandler {
	return &MediaHandler{service: service, logger: logger}
}

// RegisterRoutes registers the media routes for staff accounts.
func (h *MediaHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	mediaRoutes := router.Group("/media", auth, middleware.RoleRequired(models.RoleAdmin, models.RoleSeller))
	mediaRoutes.Get("/", h.HandleListMedia)
	mediaRoutes.Get("/stats", h.HandleMediaStats)
	mediaRoutes.Post("/upload", h.HandleUpload)
	mediaRoutes.Delete("/:id", h.HandleDeleteMedia)
}

func (h *MediaHandler) HandleListMedia(c *fiber.Ctx) error {
	var opts services.MediaListOptions
	if err := c.QueryParser(&opts); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}
	page, err := h.service.List(c.UserContext(), opts)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve media", err)
	}
	return c.JSON(page)
}

func (h *MediaHandler) HandleMediaStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve media stats", err)
	}
	return c.JSON(stats)
}

// HandleUpload stores every file sent under the "files" form field.
func (h *MediaHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid multipart form",
			"error":   err.Error(),
		})
	}

	headers := form.File["files"]
	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFromHeader(fh))
	}

	uploaded, err := h.service.Upload(c.UserContext(), middleware.UserID(c), files)
	if err != nil {
		return respondError(c, h.logger, "Upload failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Files uploaded successfully",
		"files":   uploaded,
	})
}

func uploadFromHeader(fh *multipart.FileHeader) services.UploadFile {
	return services.UploadFile{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func (h *MediaHandler) HandleDeleteMedia(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, "Could not delete file", err)
	}
	return c.JSON(fiber.Map{"message": "File deleted successfully"})
}
