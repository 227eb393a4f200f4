package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-companion-be/internal/pkg/apperrors"
)

// SessionValidator resolves a raw session cookie to the user it belongs
// to. uuid.Nil with a nil error means the cookie is missing, malformed,
// expired or revoked.
type SessionValidator interface {
	Validate(ctx context.Context, cookieValue string) (uuid.UUID, error)
}

// SessionMiddleware guards a route group with cookie-based sessions.
// On success the user id is stored in Locals("user_id") as a string.
func SessionMiddleware(cookieName string, sessions SessionValidator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		cookie := ctx.Cookies(cookieName)
		if cookie == "" {
			return apperrors.NewAuth("Unauthorized")
		}

		userId, err := sessions.Validate(ctx.UserContext(), cookie)
		if err != nil {
			return err
		}
		if userId == uuid.Nil {
			return apperrors.NewAuth("Unauthorized")
		}

		ctx.Locals("user_id", userId.String())
		return ctx.Next()
	}
}
