package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is a registered account. Email is unique regardless of case.
type User struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// EmailLower backs case-insensitive lookups on every driver.
	EmailLower string `gorm:"size:255;index" json:"-"`
}

// BeforeSave refreshes EmailLower.
func (u *User) BeforeSave(*gorm.DB) error {
	u.EmailLower = strings.ToLower(u.Email)
	return nil
}
