package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/internal/pkg/logger"
)

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindConflict:
		return fiber.StatusBadRequest
	case apperrors.KindAuth:
		return fiber.StatusUnauthorized
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware converts errors bubbling out of handlers into
// the uniform {"error": "..."} payload. Internal errors are logged with
// their cause and masked before they reach the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		kind := apperrors.KindOf(err)
		status := statusForKind(kind)
		message := err.Error()

		if kind == apperrors.KindInternal {
			log.Error("http", "request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
			message = "Internal server error"
		}

		return ctx.Status(status).JSON(ErrorResponse(message))
	}
}
