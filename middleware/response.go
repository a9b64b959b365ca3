package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error kinds carried in the "error" field of every error body.
const (
	KindValidation   = "validation"
	KindNotFound     = "not_found"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindConflict     = "conflict"
	KindInternal     = "internal"
)

func ErrorResponse(c *fiber.Ctx, statusCode int, kind, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"message": message,
		"error":   kind,
	})
}

func MessageResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"message": message,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, message string, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   KindValidation,
		"fields":  fields,
	})
}

// ErrorHandler is the fiber error handler. It keeps the status of a
// *fiber.Error and reports everything else as an internal error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	kind := KindInternal
	message := "Internal server error."
	switch code {
	case fiber.StatusNotFound:
		kind, message = KindNotFound, fe.Message
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
		kind, message = KindValidation, fe.Message
	case fiber.StatusUnauthorized:
		kind, message = KindUnauthorized, fe.Message
	case fiber.StatusForbidden:
		kind, message = KindForbidden, fe.Message
	case fiber.StatusMethodNotAllowed:
		kind, message = KindNotFound, fe.Message
	}
	return ErrorResponse(c, code, kind, message)
}
