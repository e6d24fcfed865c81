package dto

import "portfolio-tracker/internal/models"

// CreateUserRequest represents the request payload for creating a user
type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"max=255"`
}

// UpdateEmailRequest carries the new email. The value is stored as given.
type UpdateEmailRequest struct {
	Email string `json:"email" validate:"max=255"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	*models.User
	FullName string `json:"full_name"`
}

// NewUserResponse builds the response view of a user
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{User: user, FullName: user.FullName()}
}
