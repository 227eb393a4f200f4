package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type MessageResponse struct {
	Id          uuid.UUID `json:"id"`
	CompanionId uuid.UUID `json:"companionId"`
	UserId      uuid.UUID `json:"userId"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ConversationResponse struct {
	Companion *CompanionResponse `json:"companion"`
	Messages  []MessageResponse  `json:"messages"`
}

type SendMessageResponse struct {
	Response string `json:"response"`
}
