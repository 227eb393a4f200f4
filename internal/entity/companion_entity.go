package entity

import (
	"time"

	"github.com/google/uuid"
)

type Companion struct {
	Id           uuid.UUID
	Name         string
	Description  string
	Instructions string
	Seed         string
	Src          string
	UserId       uuid.UUID
	CategoryId   uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Category struct {
	Id   uuid.UUID
	Name string
}
