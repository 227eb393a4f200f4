package contract

import (
	"context"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	// FindRecent returns the newest `limit` messages of a conversation,
	// reordered oldest-first.
	FindRecent(ctx context.Context, companionId, userId uuid.UUID, limit int) ([]*entity.Message, error)
	CountByCompanion(ctx context.Context, companionId uuid.UUID) (int64, error)
}
