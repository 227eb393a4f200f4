package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is what the auth service hands back to the controller: the
// authenticated user plus the cookie value to set on the response.
type AuthResult struct {
	UserId      uuid.UUID
	CookieValue string
}

type AuthResponse struct {
	Success bool      `json:"success"`
	UserId  uuid.UUID `json:"userId"`
}

type UserProfileResponse struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}
