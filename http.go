package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// statusFromError resolves the HTTP status for a typed failure. Unknown
// errors collapse to 500.
func statusFromError(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return http.StatusInternalServerError
	}

	if richErr.Code > 0 {
		return richErr.Code
	}

	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps a typed failure onto the response envelope. Expected
// failures keep their message; anything unanticipated becomes a generic
// 500 with the detail kept server side.
func WriteError(c *fiber.Ctx, logger Logger, err error) error {
	if logger == nil {
		logger = defLogger{}
	}

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error("unexpected error handling request", "path", c.Path(), "error", err)
		return respond(c, status, "unexpected server error")
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return respond(c, status, richErr.Message)
	}

	return respond(c, status, err.Error())
}

func respond(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
