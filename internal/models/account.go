package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Common account types. The column is free text; these are the values the
// dashboard offers by default.
const (
	AccountTypeBrokerage  = "brokerage"
	AccountTypeRetirement = "retirement"
	AccountTypeTaxable    = "taxable"
	AccountTypeSavings    = "savings"
)

var (
	ErrAccountOwnerRequired = errors.New("user ID is required")
	ErrAccountNameRequired  = errors.New("account name is required")
	ErrAccountTypeRequired  = errors.New("account type is required")
)

// Account is a financial account belonging to exactly one user.
type Account struct {
	ID          int64  `gorm:"column:account_id;primaryKey;autoIncrement" json:"account_id"`
	UserID      int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	AccountName string `gorm:"column:account_name;type:varchar(100);not null" json:"account_name"`
	AccountType string `gorm:"column:account_type;type:varchar(50);not null" json:"account_type"`

	Assets []Asset `gorm:"foreignKey:AccountID;references:ID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	a.AccountName = strings.TrimSpace(a.AccountName)
	a.AccountType = strings.TrimSpace(a.AccountType)
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.UserID <= 0 {
		return ErrAccountOwnerRequired
	}
	if a.AccountName == "" {
		return ErrAccountNameRequired
	}
	if a.AccountType == "" {
		return ErrAccountTypeRequired
	}
	return nil
}

func (a *Account) TableName() string {
	return "accounts"
}
