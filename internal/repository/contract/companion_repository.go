package contract

import (
	"context"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"
)

type CompanionRepository interface {
	Create(ctx context.Context, companion *entity.Companion) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Companion, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Companion, error)
}
