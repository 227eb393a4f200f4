package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is one line of a conversation. The (CompanionId, UserId) pair
// scopes a conversation; creation time is the sole ordering.
type Message struct {
	Id          uuid.UUID
	CompanionId uuid.UUID
	UserId      uuid.UUID
	Role        string // "user" | "assistant"
	Content     string
	CreatedAt   time.Time
}
