package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"kiyim/internal/repositories"
	"kiyim/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError writes a uniform JSON error body.
func respondError(c *fiber.Ctx, status int, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// respondValidationErrors turns validator failures into a per-field map.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// respondServiceError maps service sentinels to HTTP statuses. Anything
// unclassified is a 500.
func respondServiceError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return respondError(c, fiber.StatusBadRequest, message, err)
	case errors.Is(err, services.ErrEmptyCart):
		return respondError(c, fiber.StatusBadRequest, "Cart is empty", err)
	case errors.Is(err, services.ErrInvalidTransition):
		return respondError(c, fiber.StatusBadRequest, message, err)
	case errors.Is(err, repositories.ErrInsufficientStock):
		return respondError(c, fiber.StatusBadRequest, "Insufficient stock", err)
	case errors.Is(err, repositories.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, message, err)
	case errors.Is(err, services.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, message, err)
	default:
		return respondError(c, fiber.StatusInternalServerError, message, err)
	}
}
