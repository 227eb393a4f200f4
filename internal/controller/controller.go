package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-companion-be/internal/pkg/apperrors"
)

// currentUserId reads the user id the session middleware stored in
// request locals.
func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewAuth("Unauthorized")
	}
	return userId, nil
}
