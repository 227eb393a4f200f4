package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
	"ai-companion-be/pkg/events"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error)
	Logout(ctx context.Context, cookieValue string) error
	CurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   ISessionService
	audit      IAuditService
	log        logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, sessions ISessionService, audit IAuditService, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		sessions:   sessions,
		audit:      audit,
		log:        log,
	}
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidation("Email and password are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if existing != nil {
		return nil, apperrors.NewConflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = emailLocalPart(req.Email)
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperrors.NewInternal(err)
	}

	cookie, err := s.sessions.Issue(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	s.audit.Publish(ctx, events.BaseEvent{
		Type: events.TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": user.Id.String(),
			"email":   user.Email,
		},
		OccurredAt: time.Now(),
	})

	return &dto.AuthResult{UserId: user.Id, CookieValue: cookie}, nil
}

// Login answers "Invalid credentials" for both an unknown email and a
// wrong password, so responses do not reveal which emails exist.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidation("Email and password are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if user == nil {
		return nil, apperrors.NewAuth("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewAuth("Invalid credentials")
	}

	cookie, err := s.sessions.Issue(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	s.audit.Publish(ctx, events.BaseEvent{
		Type: events.TypeUserLogin,
		Data: map[string]interface{}{
			"user_id": user.Id.String(),
		},
		OccurredAt: time.Now(),
	})

	return &dto.AuthResult{UserId: user.Id, CookieValue: cookie}, nil
}

func (s *authService) Logout(ctx context.Context, cookieValue string) error {
	userId, err := s.sessions.Validate(ctx, cookieValue)
	if err != nil {
		s.log.Warn("auth", "session lookup failed during logout", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := s.sessions.Destroy(ctx, cookieValue); err != nil {
		return err
	}

	if userId != uuid.Nil {
		s.audit.Publish(ctx, events.BaseEvent{
			Type: events.TypeUserLogout,
			Data: map[string]interface{}{
				"user_id": userId.String(),
			},
			OccurredAt: time.Now(),
		})
	}

	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if user == nil {
		return nil, apperrors.NewAuth("Unauthorized")
	}

	return &dto.UserProfileResponse{
		Id:    user.Id,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}
