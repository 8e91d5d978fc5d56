package handlers

import (
	"petshop/internal/middleware"
	"petshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for the caller's shopping cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, logger *zap.SugaredLogger) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the cart routes. Every route needs a token.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	cartRoutes := router.Group("/cart", auth)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Patch("/:productId", h.HandleUpdateItem)
	cartRoutes.Delete("/:productId", h.HandleRemoveItem)
}

// AddItemRequest is the body of POST /cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// UpdateItemRequest is the body of PATCH /cart/:productId. A quantity of
// zero or less removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve cart", err)
	}
	return c.JSON(cart)
}

func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	item, err := h.service.AddItem(c.UserContext(), middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, h.logger, "Could not add item to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	item, err := h.service.UpdateItem(c.UserContext(), middleware.UserID(c), c.Params("productId"), req.Quantity)
	if err != nil {
		return respondError(c, h.logger, "Could not update cart item", err)
	}
	if item == nil {
		return c.JSON(fiber.Map{"message": "Item removed from cart"})
	}
	return c.JSON(item)
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.UserContext(), middleware.UserID(c), c.Params("productId")); err != nil {
		return respondError(c, h.logger, "Could not remove cart item", err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext(), middleware.UserID(c)); err != nil {
		return respondError(c, h.logger, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
