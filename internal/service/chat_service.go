package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
	"ai-companion-be/pkg/ai/gateway"
	"ai-companion-be/pkg/llm"
)

// CompletionGateway is the slice of the ai gateway the chat service
// needs. Kept as an interface so tests can script replies.
type CompletionGateway interface {
	Complete(ctx context.Context, persona gateway.Persona, history []llm.Message, userMessage string) (string, error)
}

type IChatService interface {
	GetConversation(ctx context.Context, userId, companionId uuid.UUID) (*dto.ConversationResponse, error)
	SendMessage(ctx context.Context, userId, companionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	gateway    CompletionGateway
	log        logger.ILogger
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, completions CompletionGateway, log logger.ILogger) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		gateway:    completions,
		log:        log,
	}
}

func messageToResponse(message *entity.Message) dto.MessageResponse {
	return dto.MessageResponse{
		Id:          message.Id,
		CompanionId: message.CompanionId,
		UserId:      message.UserId,
		Role:        message.Role,
		Content:     message.Content,
		CreatedAt:   message.CreatedAt,
	}
}

func (s *chatService) GetConversation(ctx context.Context, userId, companionId uuid.UUID) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	companion, err := uow.CompanionRepository().FindOne(ctx, specification.ByID{ID: companionId})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if companion == nil {
		return nil, apperrors.NewNotFound("Companion not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversation{CompanionID: companionId, UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	res := &dto.ConversationResponse{
		Companion: companionToResponse(companion),
		Messages:  make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, message := range messages {
		res.Messages = append(res.Messages, messageToResponse(message))
	}
	return res, nil
}

// SendMessage runs one chat turn. The user message is persisted before
// the completion is attempted and is kept even when the completion
// degrades, so the conversation always reflects what the user said.
func (s *chatService) SendMessage(ctx context.Context, userId, companionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewValidation("Message is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	companion, err := uow.CompanionRepository().FindOne(ctx, specification.ByID{ID: companionId})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if companion == nil {
		return nil, apperrors.NewNotFound("Companion not found")
	}

	history, err := uow.MessageRepository().FindRecent(ctx, companionId, userId, constant.ContextWindowSize)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	userMessage := &entity.Message{
		Id:          uuid.New(),
		CompanionId: companionId,
		UserId:      userId,
		Role:        constant.MessageRoleUser,
		Content:     req.Message,
		CreatedAt:   time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		return nil, apperrors.NewInternal(err)
	}

	llmHistory := make([]llm.Message, 0, len(history))
	for _, message := range history {
		llmHistory = append(llmHistory, llm.Message{Role: message.Role, Content: message.Content})
	}

	persona := gateway.Persona{
		Name:         companion.Name,
		Description:  companion.Description,
		Instructions: companion.Instructions,
	}

	reply, err := s.gateway.Complete(ctx, persona, llmHistory, req.Message)
	if err != nil {
		if errors.Is(err, gateway.ErrDegraded) {
			// The fallback goes back to the user but is not part of
			// the conversation record.
			s.log.Warn("chat", "completion degraded", map[string]interface{}{
				"companion_id": companionId.String(),
				"user_id":      userId.String(),
			})
			return &dto.SendMessageResponse{Response: reply}, nil
		}
		return nil, apperrors.NewInternal(err)
	}

	assistantMessage := &entity.Message{
		Id:          uuid.New(),
		CompanionId: companionId,
		UserId:      userId,
		Role:        constant.MessageRoleAssistant,
		Content:     reply,
		CreatedAt:   time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, apperrors.NewInternal(err)
	}

	return &dto.SendMessageResponse{Response: reply}, nil
}
