package dto

import (
	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// RegisterRequest defines the data needed to create a dashboard account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the access token; the refresh token travels in an
// http-only cookie.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// GoogleCallbackRequest carries a Google ID token for token-based sign-in.
type GoogleCallbackRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// AuthCheckResponse is the payload of GET /auth/check.
type AuthCheckResponse struct {
	User UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID: u.UserID,
		Name:   u.Name,
		Email:  u.Email,
	}
}
