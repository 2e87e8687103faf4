package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// UpdateProfileRequest is the body of PATCH /api/user/:id. The profile fields
// are stored exactly as sent; only the path id is required.
type UpdateProfileRequest struct {
	ID    string `param:"id" json:"-" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}
