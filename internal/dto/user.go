package dto

import (
	"github.com/google/uuid"
	"github.com/skyventures/tasks-api/internal/models"
)

// RegisterRequest is the body of POST /api/user/register. Field-level rules
// are enforced in the auth service so violations carry specific messages.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/user/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both register and login
type AuthResponse struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
}

// ToAuthResponse builds the auth payload for a user and issued token
func ToAuthResponse(user models.User, token string) AuthResponse {
	return AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}
}
