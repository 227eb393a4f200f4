package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the server-side half of a browser session. The cookie carries
// "userId:token"; only the SHA-256 hash of the token half is stored.
type Session struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Revoked   bool
}
