package handlers

import (
	"petshop/internal/middleware"
	"petshop/internal/models"
	"petshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products and the catalog taxonomy.
type ProductHandler struct {
	service  *services.ProductService
	catalog  *services.CatalogService
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, catalog *services.CatalogService, logger *zap.SugaredLogger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		catalog:  catalog,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	staff := middleware.RoleRequired(models.RoleAdmin, models.RoleSeller)
	admin := middleware.RoleRequired(models.RoleAdmin)

	router.Get("/categories", h.HandleGetCategories)
	router.Get("/brands", h.HandleGetBrands)

	productRoutes := router.Group("/products")
	// Admin listings go first so "admin" is never taken for a product code.
	productRoutes.Get("/admin", auth, staff, h.HandleGetAllProducts)
	productRoutes.Get("/admin/:id", auth, staff, h.HandleGetProductByID)
	productRoutes.Get("/", h.HandleGetActiveProducts)
	productRoutes.Get("/:code", h.HandleGetProductByCode)
	productRoutes.Post("/", auth, staff, h.HandleCreateProduct)
	productRoutes.Patch("/:id/restore", auth, admin, h.HandleRestoreProduct)
	productRoutes.Patch("/:id", auth, staff, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, admin, h.HandleArchiveProduct)
}

func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.Categories(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

func (h *ProductHandler) HandleGetBrands(c *fiber.Ctx) error {
	brands, err := h.catalog.Brands(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve brands", err)
	}
	return c.JSON(brands)
}

// HandleGetActiveProducts lists the public catalog.
func (h *ProductHandler) HandleGetActiveProducts(c *fiber.Ctx) error {
	products, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductByCode(c *fiber.Ctx) error {
	product, err := h.service.GetActiveByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, h.logger, "Product not found", err)
	}
	return c.JSON(product)
}

// HandleGetAllProducts lists every product, archived ones included.
func (h *ProductHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	products, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Product not found", err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req services.ProductInput
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	product, err := h.service.CreateProduct(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.logger, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req services.ProductInput
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	product, err := h.service.UpdateProduct(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleArchiveProduct soft-deletes a product.
func (h *ProductHandler) HandleArchiveProduct(c *fiber.Ctx) error {
	product, err := h.service.ArchiveProduct(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Could not archive product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product archived successfully",
		"product": product,
	})
}

func (h *ProductHandler) HandleRestoreProduct(c *fiber.Ctx) error {
	product, err := h.service.RestoreProduct(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Could not restore product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product restored successfully",
		"product": product,
	})
}
