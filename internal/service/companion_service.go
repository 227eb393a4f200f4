package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
)

type ICompanionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCompanionRequest) (*dto.CompanionResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]dto.CompanionListItem, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	EnsureDefaultCategory(ctx context.Context) (*entity.Category, error)
}

type companionService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewCompanionService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ICompanionService {
	return &companionService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func companionToResponse(companion *entity.Companion) *dto.CompanionResponse {
	return &dto.CompanionResponse{
		Id:           companion.Id,
		Name:         companion.Name,
		Description:  companion.Description,
		Instructions: companion.Instructions,
		Seed:         companion.Seed,
		Src:          companion.Src,
		UserId:       companion.UserId,
		CategoryId:   companion.CategoryId,
		CreatedAt:    companion.CreatedAt,
		UpdatedAt:    companion.UpdatedAt,
	}
}

func (s *companionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCompanionRequest) (*dto.CompanionResponse, error) {
	if req.Name == "" || req.Description == "" || req.Instructions == "" || req.Seed == "" {
		return nil, apperrors.NewValidation("Missing required fields")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var categoryId uuid.UUID
	if req.CategoryId != nil {
		category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: *req.CategoryId})
		if err != nil {
			return nil, apperrors.NewInternal(err)
		}
		if category == nil {
			return nil, apperrors.NewValidation("Unknown category")
		}
		categoryId = category.Id
	} else {
		category, err := s.EnsureDefaultCategory(ctx)
		if err != nil {
			return nil, err
		}
		categoryId = category.Id
	}

	src := req.Src
	if src == "" {
		src = constant.DefaultCompanionIcon
	}

	now := time.Now()
	companion := &entity.Companion{
		Id:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		Seed:         req.Seed,
		Src:          src,
		UserId:       userId,
		CategoryId:   categoryId,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.CompanionRepository().Create(ctx, companion); err != nil {
		return nil, apperrors.NewInternal(err)
	}

	return companionToResponse(companion), nil
}

// EnsureDefaultCategory lazily creates the "General" category. Safe to
// call from concurrent requests: the unique index on name resolves the
// race and the loser re-reads the winner's row.
func (s *companionService) EnsureDefaultCategory(ctx context.Context) (*entity.Category, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByName{Name: constant.DefaultCategoryName})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if category != nil {
		return category, nil
	}

	category = &entity.Category{
		Id:   uuid.New(),
		Name: constant.DefaultCategoryName,
	}
	if createErr := uow.CategoryRepository().Create(ctx, category); createErr != nil {
		category, err = uow.CategoryRepository().FindOne(ctx, specification.ByName{Name: constant.DefaultCategoryName})
		if err != nil {
			return nil, apperrors.NewInternal(err)
		}
		if category == nil {
			return nil, apperrors.NewInternal(createErr)
		}
	}

	return category, nil
}

func (s *companionService) List(ctx context.Context, userId uuid.UUID) ([]dto.CompanionListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	companions, err := uow.CompanionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	categories, err := uow.CategoryRepository().FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	categoryById := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, category := range categories {
		categoryById[category.Id] = category
	}

	items := make([]dto.CompanionListItem, 0, len(companions))
	for _, companion := range companions {
		count, err := uow.MessageRepository().CountByCompanion(ctx, companion.Id)
		if err != nil {
			return nil, apperrors.NewInternal(err)
		}

		item := dto.CompanionListItem{
			CompanionResponse: *companionToResponse(companion),
			MessageCount:      count,
		}
		if category, ok := categoryById[companion.CategoryId]; ok {
			item.Category = &dto.CategoryResponse{Id: category.Id, Name: category.Name}
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *companionService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	categories, err := uow.CategoryRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	res := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		res = append(res, dto.CategoryResponse{Id: category.Id, Name: category.Name})
	}
	return res, nil
}
