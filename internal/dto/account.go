package dto

import (
	"portfolio-tracker/internal/models"
)

// Account Request DTOs

// CreateAccountRequest represents the request payload for creating a new account
type CreateAccountRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	AccountName string `json:"account_name" validate:"required,max=100"`
	AccountType string `json:"account_type" validate:"required,max=50"`
}

// Account Response DTOs

// AccountListResponse represents the accounts owned by one user
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
	Total    int              `json:"total"`
}
