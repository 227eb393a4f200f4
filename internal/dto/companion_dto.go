package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCompanionRequest struct {
	Name         string     `json:"name" validate:"required"`
	Description  string     `json:"description" validate:"required"`
	Instructions string     `json:"instructions" validate:"required"`
	Seed         string     `json:"seed" validate:"required"`
	Src          string     `json:"src"`
	CategoryId   *uuid.UUID `json:"categoryId"`
}

type CompanionResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Instructions string    `json:"instructions"`
	Seed         string    `json:"seed"`
	Src          string    `json:"src"`
	UserId       uuid.UUID `json:"userId"`
	CategoryId   uuid.UUID `json:"categoryId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CategoryResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CompanionListItem struct {
	CompanionResponse
	Category     *CategoryResponse `json:"category,omitempty"`
	MessageCount int64             `json:"messageCount"`
}
