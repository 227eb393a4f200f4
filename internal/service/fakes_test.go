package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/contract"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
	"ai-companion-be/pkg/ai/gateway"
	"ai-companion-be/pkg/events"
	"ai-companion-be/pkg/llm"
)

// In-memory repositories interpreting the same specifications the GORM
// implementations translate to SQL.

type fakeUserRepo struct {
	users []*entity.User
}

func userMatches(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByEmail:
			if user.Email != sp.Email {
				return false
			}
		case specification.ByID:
			if user.Id != sp.ID {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, user := range r.users {
		if userMatches(user, specs) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	for _, user := range r.users {
		if user.Id == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeSessionRepo struct {
	sessions []*entity.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	copied := *session
	r.sessions = append(r.sessions, &copied)
	return nil
}

func (r *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Session, error) {
	for _, session := range r.sessions {
		matches := true
		for _, spec := range specs {
			if sp, ok := spec.(specification.ByTokenHash); ok && session.TokenHash != sp.Hash {
				matches = false
			}
		}
		if matches {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, tokenHash string) error {
	for _, session := range r.sessions {
		if session.TokenHash == tokenHash {
			session.Revoked = true
		}
	}
	return nil
}

type fakeCompanionRepo struct {
	companions []*entity.Companion
}

func companionMatches(companion *entity.Companion, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if companion.Id != sp.ID {
				return false
			}
		case specification.ByName:
			if companion.Name != sp.Name {
				return false
			}
		case specification.UserOwnedBy:
			if companion.UserId != sp.UserID {
				return false
			}
		case specification.ByCategoryID:
			if companion.CategoryId != sp.CategoryID {
				return false
			}
		}
	}
	return true
}

func (r *fakeCompanionRepo) Create(_ context.Context, companion *entity.Companion) error {
	copied := *companion
	r.companions = append(r.companions, &copied)
	return nil
}

func (r *fakeCompanionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Companion, error) {
	for _, companion := range r.companions {
		if companionMatches(companion, specs) {
			copied := *companion
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Companion, error) {
	var res []*entity.Companion
	for _, companion := range r.companions {
		if companionMatches(companion, specs) {
			copied := *companion
			res = append(res, &copied)
		}
	}
	for _, spec := range specs {
		if sp, ok := spec.(specification.OrderBy); ok && sp.Field == "created_at" {
			sort.SliceStable(res, func(i, j int) bool {
				if sp.Desc {
					return res[i].CreatedAt.After(res[j].CreatedAt)
				}
				return res[i].CreatedAt.Before(res[j].CreatedAt)
			})
		}
	}
	return res, nil
}

type fakeCategoryRepo struct {
	categories []*entity.Category
}

func categoryMatches(category *entity.Category, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if category.Id != sp.ID {
				return false
			}
		case specification.ByName:
			if category.Name != sp.Name {
				return false
			}
		}
	}
	return true
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	copied := *category
	r.categories = append(r.categories, &copied)
	return nil
}

func (r *fakeCategoryRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Category, error) {
	for _, category := range r.categories {
		if categoryMatches(category, specs) {
			copied := *category
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	var res []*entity.Category
	for _, category := range r.categories {
		if categoryMatches(category, specs) {
			copied := *category
			res = append(res, &copied)
		}
	}
	return res, nil
}

type fakeMessageRepo struct {
	messages []*entity.Message
}

func messageMatches(message *entity.Message, specs []specification.Specification) bool {
	for _, spec := range specs {
		if sp, ok := spec.(specification.ByConversation); ok {
			if message.CompanionId != sp.CompanionID || message.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeMessageRepo) Create(_ context.Context, message *entity.Message) error {
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var res []*entity.Message
	for _, message := range r.messages {
		if messageMatches(message, specs) {
			copied := *message
			res = append(res, &copied)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (r *fakeMessageRepo) FindRecent(ctx context.Context, companionId, userId uuid.UUID, limit int) ([]*entity.Message, error) {
	all, _ := r.FindAll(ctx, specification.ByConversation{CompanionID: companionId, UserID: userId})
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *fakeMessageRepo) CountByCompanion(_ context.Context, companionId uuid.UUID) (int64, error) {
	var count int64
	for _, message := range r.messages {
		if message.CompanionId == companionId {
			count++
		}
	}
	return count, nil
}

type fakeUnitOfWork struct {
	users      *fakeUserRepo
	sessions   *fakeSessionRepo
	companions *fakeCompanionRepo
	categories *fakeCategoryRepo
	messages   *fakeMessageRepo
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository           { return u.users }
func (u *fakeUnitOfWork) SessionRepository() contract.SessionRepository     { return u.sessions }
func (u *fakeUnitOfWork) CompanionRepository() contract.CompanionRepository { return u.companions }
func (u *fakeUnitOfWork) CategoryRepository() contract.CategoryRepository   { return u.categories }
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository     { return u.messages }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		uow: &fakeUnitOfWork{
			users:      &fakeUserRepo{},
			sessions:   &fakeSessionRepo{},
			companions: &fakeCompanionRepo{},
			categories: &fakeCategoryRepo{},
			messages:   &fakeMessageRepo{},
		},
	}
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork { return f.uow }

// scriptedGateway returns a canned reply and records what it was asked.
type scriptedGateway struct {
	reply string
	err   error

	gotPersona gateway.Persona
	gotHistory []llm.Message
	gotMessage string
}

func (g *scriptedGateway) Complete(_ context.Context, persona gateway.Persona, history []llm.Message, userMessage string) (string, error) {
	g.gotPersona = persona
	g.gotHistory = history
	g.gotMessage = userMessage
	return g.reply, g.err
}

// recordingAudit captures published events without a broker.
type recordingAudit struct {
	published []events.Event
}

func (a *recordingAudit) Publish(_ context.Context, event events.Event) {
	a.published = append(a.published, event)
}
func (a *recordingAudit) Start(_ context.Context) error { return nil }
func (a *recordingAudit) Close() error                  { return nil }

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var _ logger.ILogger = nopLogger{}
