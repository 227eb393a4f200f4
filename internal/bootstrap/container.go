package bootstrap

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ai-companion-be/internal/config"
	"ai-companion-be/internal/controller"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/pkg/serverutils"
	"ai-companion-be/internal/repository/memory"
	"ai-companion-be/internal/repository/unitofwork"
	"ai-companion-be/internal/service"
	"ai-companion-be/pkg/ai/gateway"
	"ai-companion-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	AuthController      *controller.AuthController
	CompanionController *controller.CompanionController
	ChatController      *controller.ChatController

	// SessionGuard protects the authenticated route groups.
	SessionGuard fiber.Handler

	// Background services (exposed for main.go to run)
	AuditService service.IAuditService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Completion stack
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.GeminiAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)
	completions := gateway.New(llmProvider)

	// 3. Session storage
	sessionCache := memory.NewSessionCache()

	// 4. Services
	auditService := service.NewAuditService(sysLogger, auditLogger)
	sessionService := service.NewSessionService(uowFactory, sessionCache)
	authService := service.NewAuthService(uowFactory, sessionService, auditService, sysLogger)
	companionService := service.NewCompanionService(uowFactory, sysLogger)
	chatService := service.NewChatService(uowFactory, completions, sysLogger)

	sessionGuard := serverutils.SessionMiddleware(cfg.Session.CookieName, sessionService)

	// 5. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService, cfg),
		CompanionController: controller.NewCompanionController(companionService),
		ChatController:      controller.NewChatController(chatService),
		SessionGuard:        sessionGuard,
		AuditService:        auditService,
		Logger:              sysLogger,
	}
}
