package model

import (
	"time"

	"github.com/google/uuid"
)

type Companion struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text;not null"`
	Instructions string    `gorm:"type:text;not null"`
	Seed         string    `gorm:"type:text;not null"`
	Src          string    `gorm:"type:text;not null"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	CategoryId   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Companion) TableName() string {
	return "companions"
}

type Category struct {
	Id   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(255);not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}
