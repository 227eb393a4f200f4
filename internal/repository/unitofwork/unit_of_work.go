package unitofwork

import (
	"context"

	"ai-companion-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	CompanionRepository() contract.CompanionRepository
	CategoryRepository() contract.CategoryRepository
	MessageRepository() contract.MessageRepository
}
