package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/internal/pkg/serverutils"
	"ai-companion-be/internal/service"
)

type CompanionController struct {
	companionService service.ICompanionService
}

func NewCompanionController(companionService service.ICompanionService) *CompanionController {
	return &CompanionController{companionService: companionService}
}

func (c *CompanionController) RegisterRoutes(router fiber.Router, sessionGuard fiber.Handler) {
	companion := router.Group("/companion", sessionGuard)
	companion.Post("/", c.Create)
	companion.Get("/", c.List)

	category := router.Group("/category", sessionGuard)
	category.Get("/", c.ListCategories)
}

func (c *CompanionController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	req := new(dto.CreateCompanionRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.NewValidation("Missing required fields")
	}
	if err := serverutils.ValidateRequest(req, "Missing required fields"); err != nil {
		return err
	}

	res, err := c.companionService.Create(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *CompanionController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.companionService.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *CompanionController) ListCategories(ctx *fiber.Ctx) error {
	res, err := c.companionService.ListCategories(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
