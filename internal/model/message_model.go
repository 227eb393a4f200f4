package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanionId uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_conversation"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_conversation"`
	Role        string    `gorm:"type:varchar(20);not null"`
	Content     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
