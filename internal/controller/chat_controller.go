package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/internal/pkg/serverutils"
	"ai-companion-be/internal/service"
)

type ChatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

func (c *ChatController) RegisterRoutes(router fiber.Router, sessionGuard fiber.Handler) {
	chat := router.Group("/chat", sessionGuard)
	chat.Get("/:companionId", c.GetConversation)
	chat.Post("/:companionId", c.SendMessage)
}

func companionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	companionId, err := uuid.Parse(ctx.Params("companionId"))
	if err != nil {
		return uuid.Nil, apperrors.NewNotFound("Companion not found")
	}
	return companionId, nil
}

func (c *ChatController) GetConversation(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	companionId, err := companionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.GetConversation(ctx.UserContext(), userId, companionId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *ChatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	companionId, err := companionIdParam(ctx)
	if err != nil {
		return err
	}

	req := new(dto.SendMessageRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.NewValidation("Message is required")
	}
	if err := serverutils.ValidateRequest(req, "Message is required"); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.UserContext(), userId, companionId, req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
