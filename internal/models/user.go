package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrFirstNameRequired = errors.New("first name is required")
	ErrLastNameRequired  = errors.New("last name is required")
)

// User is a portfolio owner. The email is stored as given: no format
// validation is performed on create or update.
type User struct {
	ID        int64  `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	FirstName string `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"column:email;type:varchar(255)" json:"email"`

	Accounts []Account `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	return u.Validate()
}

func (u *User) Validate() error {
	if u.FirstName == "" {
		return ErrFirstNameRequired
	}
	if u.LastName == "" {
		return ErrLastNameRequired
	}
	return nil
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

func (u *User) TableName() string {
	return "users"
}
