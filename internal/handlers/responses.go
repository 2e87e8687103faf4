package handlers

import (
	"github.com/nfrund/profiledash/internal/domain"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UserResponse is the public JSON shape of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// NewUserResponse creates a UserResponse DTO from a domain.User model.
func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.IDString(),
		Name:  u.DisplayName(),
		Email: u.Email,
		Image: u.AvatarURL(),
	}
}

// StatusResponse acknowledges operations that have no resource to return.
type StatusResponse struct {
	Status string `json:"status"`
}
