package handlers

import (
	"petshop/internal/middleware"
	"petshop/internal/models"
	"petshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
	logger       *zap.SugaredLogger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, logger *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
		logger:       logger,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	client := middleware.RoleRequired(models.RoleClient)
	staff := middleware.RoleRequired(models.RoleAdmin, models.RoleSeller)

	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Post("/", client, h.HandleCreateOrder)
	orderRoutes.Get("/my-orders", client, h.HandleGetMyOrders)
	orderRoutes.Get("/", staff, h.HandleGetAllOrders)
	orderRoutes.Get("/:id", staff, h.HandleGetOrderByID)
	orderRoutes.Patch("/:id", staff, h.HandleUpdateOrderStatus)
}

// HandleCreateOrder turns the caller's cart into an order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.PlaceOrderRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	order, err := h.orderService.PlaceOrder(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.logger, "Failed to create order", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListByUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Order not found", err)
	}
	return c.JSON(order)
}

// UpdateStatusRequest is the body of the status PATCH routes.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	order, err := h.orderService.UpdateStatus(c.UserContext(), middleware.UserID(c), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, h.logger, "Could not update order status", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"order":   order,
	})
}
