package handlers

import (
	"errors"
	"fmt"

	"petshop/internal/repositories"
	"petshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// parseAndValidate binds the JSON body into req and runs its validate tags.
// On failure it writes the 400 response and returns false.
func parseAndValidate(c *fiber.Ctx, validate *validator.Validate, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		errorMessages := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}

// statusFor maps service and repository errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, services.ErrCartNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidOrder),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrEmptyReply),
		errors.Is(err, services.ErrNoFiles):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the error response. Unexpected errors are logged.
func respondError(c *fiber.Ctx, logger *zap.SugaredLogger, message string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Errorw(message, "path", c.Path(), "method", c.Method(), "error", err)
	}

	body := fiber.Map{
		"message": message,
		"error":   err.Error(),
	}
	var stockErr *services.StockError
	if errors.As(err, &stockErr) {
		body["product"] = stockErr.Product
		body["requested"] = stockErr.Requested
		body["available"] = stockErr.Available
	}
	return c.Status(status).JSON(body)
}
