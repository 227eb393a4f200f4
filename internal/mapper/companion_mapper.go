package mapper

import (
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
)

type CompanionMapper struct{}

func NewCompanionMapper() *CompanionMapper {
	return &CompanionMapper{}
}

func (m *CompanionMapper) ToEntity(c *model.Companion) *entity.Companion {
	if c == nil {
		return nil
	}
	return &entity.Companion{
		Id:           c.Id,
		Name:         c.Name,
		Description:  c.Description,
		Instructions: c.Instructions,
		Seed:         c.Seed,
		Src:          c.Src,
		UserId:       c.UserId,
		CategoryId:   c.CategoryId,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *CompanionMapper) ToModel(c *entity.Companion) *model.Companion {
	if c == nil {
		return nil
	}
	return &model.Companion{
		Id:           c.Id,
		Name:         c.Name,
		Description:  c.Description,
		Instructions: c.Instructions,
		Seed:         c.Seed,
		Src:          c.Src,
		UserId:       c.UserId,
		CategoryId:   c.CategoryId,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *CompanionMapper) ToEntities(companions []*model.Companion) []*entity.Companion {
	entities := make([]*entity.Companion, len(companions))
	for i, c := range companions {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CompanionMapper) CategoryToEntity(c *model.Category) *entity.Category {
	if c == nil {
		return nil
	}
	return &entity.Category{
		Id:   c.Id,
		Name: c.Name,
	}
}

func (m *CompanionMapper) CategoryToModel(c *entity.Category) *model.Category {
	if c == nil {
		return nil
	}
	return &model.Category{
		Id:   c.Id,
		Name: c.Name,
	}
}

func (m *CompanionMapper) CategoriesToEntities(categories []*model.Category) []*entity.Category {
	entities := make([]*entity.Category, len(categories))
	for i, c := range categories {
		entities[i] = m.CategoryToEntity(c)
	}
	return entities
}
