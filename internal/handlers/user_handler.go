package handlers

import (
	"petshop/internal/middleware"
	"petshop/internal/models"
	"petshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler is the admin user management API.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewUserHandler(service *services.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the user routes. All of them are admin only.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users", auth, middleware.RoleRequired(models.RoleAdmin))
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Patch("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "User not found", err)
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req services.UserInput
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	user, err := h.service.CreateUser(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.logger, "Could not create user", err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req services.UserUpdate
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	user, err := h.service.UpdateUser(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, "Could not update user", err)
	}
	return c.JSON(user)
}

// HandleDeleteUser removes a user together with their orders and cart.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, "Could not delete user", err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
