package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ai-companion-be/internal/config"
	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/internal/pkg/serverutils"
	"ai-companion-be/internal/service"
)

type AuthController struct {
	authService service.IAuthService
	config      *config.Config
}

func NewAuthController(authService service.IAuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		authService: authService,
		config:      cfg,
	}
}

func (c *AuthController) RegisterRoutes(router fiber.Router, sessionGuard fiber.Handler) {
	auth := router.Group("/auth")
	auth.Post("/register", c.Register)
	auth.Post("/login", c.Login)
	auth.Post("/logout", c.Logout)
	auth.Get("/me", sessionGuard, c.Me)
}

func (c *AuthController) setSessionCookie(ctx *fiber.Ctx, value string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.config.Session.CookieName,
		Value:    value,
		Path:     constant.SessionCookiePath,
		MaxAge:   int(constant.SessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   c.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (c *AuthController) clearSessionCookie(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.config.Session.CookieName,
		Value:    "",
		Path:     constant.SessionCookiePath,
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   c.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (c *AuthController) Register(ctx *fiber.Ctx) error {
	req := new(dto.RegisterRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.NewValidation("Email and password are required")
	}
	if err := serverutils.ValidateRequest(req, "Email and password are required"); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.UserContext(), req)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, res.CookieValue)
	return ctx.JSON(dto.AuthResponse{Success: true, UserId: res.UserId})
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	req := new(dto.LoginRequest)
	if err := ctx.BodyParser(req); err != nil {
		return apperrors.NewValidation("Email and password are required")
	}
	if err := serverutils.ValidateRequest(req, "Email and password are required"); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.UserContext(), req)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, res.CookieValue)
	return ctx.JSON(dto.AuthResponse{Success: true, UserId: res.UserId})
}

// Logout destroys the session even when the cookie is stale, then
// always clears it and sends the browser back to the login page.
func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	cookie := ctx.Cookies(c.config.Session.CookieName)

	if err := c.authService.Logout(ctx.UserContext(), cookie); err != nil {
		return err
	}

	c.clearSessionCookie(ctx)
	return ctx.Redirect("/login")
}

func (c *AuthController) Me(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.authService.CurrentUser(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
