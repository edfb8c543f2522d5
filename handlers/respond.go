package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vocab-learn-system/shared"
)

// statusForError maps service-layer sentinel errors to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrInvalidCategory),
		errors.Is(err, shared.ErrPasswordTooShort),
		errors.Is(err, shared.ErrInvalidResetCode):
		return fiber.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthorized),
		errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, shared.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, shared.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, shared.ErrConflict),
		errors.Is(err, shared.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}
