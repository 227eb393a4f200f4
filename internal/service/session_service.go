package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/internal/repository/memory"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
)

// ISessionService manages browser sessions. The cookie value is
// "userId:token"; only the SHA-256 hash of the token half ever touches
// the database, so a leaked sessions table cannot be replayed.
type ISessionService interface {
	Issue(ctx context.Context, userId uuid.UUID) (string, error)
	// Validate resolves a cookie value to its user. uuid.Nil with a nil
	// error means the session is missing, expired or revoked.
	Validate(ctx context.Context, cookieValue string) (uuid.UUID, error)
	Destroy(ctx context.Context, cookieValue string) error
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.SessionCache
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, cache *memory.SessionCache) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func splitCookie(cookieValue string) (uuid.UUID, string, bool) {
	idPart, token, found := strings.Cut(cookieValue, ":")
	if !found || token == "" {
		return uuid.Nil, "", false
	}
	userId, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, "", false
	}
	return userId, token, true
}

func (s *sessionService) Issue(ctx context.Context, userId uuid.UUID) (string, error) {
	token := uuid.NewString()
	now := time.Now()

	session := &entity.Session{
		Id:        uuid.New(),
		UserId:    userId,
		TokenHash: hashToken(token),
		IssuedAt:  now,
		ExpiresAt: now.Add(constant.SessionTTL),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return "", apperrors.NewInternal(err)
	}

	cookieValue := fmt.Sprintf("%s:%s", userId, token)
	s.cache.Save(cookieValue, userId)

	return cookieValue, nil
}

func (s *sessionService) Validate(ctx context.Context, cookieValue string) (uuid.UUID, error) {
	if userId, found := s.cache.Get(cookieValue); found {
		return userId, nil
	}

	userId, token, ok := splitCookie(cookieValue)
	if !ok {
		return uuid.Nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByTokenHash{Hash: hashToken(token)})
	if err != nil {
		return uuid.Nil, apperrors.NewInternal(err)
	}
	if session == nil || session.UserId != userId || session.Revoked || time.Now().After(session.ExpiresAt) {
		return uuid.Nil, nil
	}

	// The user row may be gone even though the session survives.
	exists, err := uow.UserRepository().Exists(ctx, userId)
	if err != nil {
		return uuid.Nil, apperrors.NewInternal(err)
	}
	if !exists {
		return uuid.Nil, nil
	}

	s.cache.Save(cookieValue, userId)
	return userId, nil
}

// Destroy is idempotent: revoking an unknown or already revoked token
// is not an error.
func (s *sessionService) Destroy(ctx context.Context, cookieValue string) error {
	if cookieValue == "" {
		return nil
	}

	s.cache.Delete(cookieValue)

	_, token, ok := splitCookie(cookieValue)
	if !ok {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Revoke(ctx, hashToken(token)); err != nil {
		return apperrors.NewInternal(err)
	}
	return nil
}
