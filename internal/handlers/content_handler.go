package handlers

import (
	"petshop/internal/middleware"
	"petshop/internal/models"
	"petshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ContentHandler serves the blog and the contact inbox.
type ContentHandler struct {
	blog     *services.BlogService
	contact  *services.ContactService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(blog *services.BlogService, contact *services.ContactService, logger *zap.SugaredLogger) *ContentHandler {
	return &ContentHandler{
		blog:     blog,
		contact:  contact,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the blog and contact routes.
func (h *ContentHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	admin := middleware.RoleRequired(models.RoleAdmin)
	staff := middleware.RoleRequired(models.RoleAdmin, models.RoleSeller)

	blogRoutes := router.Group("/blog")
	blogRoutes.Get("/", h.HandleListPosts)
	blogRoutes.Get("/:id", h.HandleGetPost)
	blogRoutes.Post("/", auth, admin, h.HandleCreatePost)
	blogRoutes.Patch("/:id", auth, admin, h.HandleUpdatePost)
	blogRoutes.Delete("/:id", auth, admin, h.HandleDeletePost)

	contactRoutes := router.Group("/contact")
	contactRoutes.Post("/", h.HandleSubmitContact)
	contactRoutes.Get("/", auth, staff, h.HandleListContacts)
	contactRoutes.Get("/:id", auth, staff, h.HandleGetContact)
	contactRoutes.Patch("/:id", auth, staff, h.HandleUpdateContactStatus)
	contactRoutes.Post("/:id/reply", auth, staff, h.HandleReplyContact)
	contactRoutes.Delete("/:id", auth, admin, h.HandleDeleteContact)
}

func (h *ContentHandler) HandleListPosts(c *fiber.Ctx) error {
	posts, err := h.blog.ListPosts(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve posts", err)
	}
	return c.JSON(posts)
}

func (h *ContentHandler) HandleGetPost(c *fiber.Ctx) error {
	post, err := h.blog.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Post not found", err)
	}
	return c.JSON(post)
}

func (h *ContentHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req services.BlogPostInput
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	post, err := h.blog.CreatePost(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.logger, "Could not create post", err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *ContentHandler) HandleUpdatePost(c *fiber.Ctx) error {
	var req services.BlogPostInput
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	post, err := h.blog.UpdatePost(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, "Could not update post", err)
	}
	return c.JSON(post)
}

func (h *ContentHandler) HandleDeletePost(c *fiber.Ctx) error {
	if err := h.blog.DeletePost(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, "Could not delete post", err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

// HandleSubmitContact stores a message from the public contact form.
func (h *ContentHandler) HandleSubmitContact(c *fiber.Ctx) error {
	var req services.ContactInput
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	request, err := h.contact.Submit(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, "Could not send message", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message received",
		"request": request,
	})
}

func (h *ContentHandler) HandleListContacts(c *fiber.Ctx) error {
	requests, err := h.contact.ListRequests(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve contact requests", err)
	}
	return c.JSON(requests)
}

func (h *ContentHandler) HandleGetContact(c *fiber.Ctx) error {
	request, err := h.contact.GetRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Contact request not found", err)
	}
	return c.JSON(request)
}

func (h *ContentHandler) HandleUpdateContactStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	request, err := h.contact.UpdateStatus(c.UserContext(), middleware.UserID(c), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, h.logger, "Could not update contact request", err)
	}
	return c.JSON(request)
}

// ReplyRequest is the body of POST /contact/:id/reply.
type ReplyRequest struct {
	Message string `json:"message" validate:"required"`
}

func (h *ContentHandler) HandleReplyContact(c *fiber.Ctx) error {
	var req ReplyRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	request, err := h.contact.Reply(c.UserContext(), middleware.UserID(c), c.Params("id"), req.Message)
	if err != nil {
		return respondError(c, h.logger, "Could not reply to contact request", err)
	}
	return c.JSON(fiber.Map{
		"message": "Reply sent",
		"request": request,
	})
}

func (h *ContentHandler) HandleDeleteContact(c *fiber.Ctx) error {
	if err := h.contact.DeleteRequest(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, "Could not delete contact request", err)
	}
	return c.JSON(fiber.Map{"message": "Contact request deleted"})
}
