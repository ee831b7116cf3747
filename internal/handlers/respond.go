package handlers

import (
	"errors"
	"log"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

func respondSuccess(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(models.Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func respondError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(models.Envelope{
		Status:  "error",
		Message: message,
	})
}

func respondValidation(c *fiber.Ctx, errs map[string][]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(models.Envelope{
		Status:  "error",
		Message: "Validation failed",
		Errors:  errs,
	})
}

// respondServiceError maps domain errors onto the HTTP envelope in exactly
// one place. Anything unrecognized is logged and reduced to a generic 500;
// the underlying cause never reaches the client.
func respondServiceError(c *fiber.Ctx, err error, notFoundMessage, genericMessage string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return respondValidation(c, verr.Fields)
	case errors.Is(err, repositories.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, notFoundMessage)
	case errors.Is(err, services.ErrInvalidCredentials):
		return respondError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrInvalidToken):
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	default:
		log.Printf("Unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		return respondError(c, fiber.StatusInternalServerError, genericMessage)
	}
}
