package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Item is something a user offers for rent.
type Item struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	Available   bool   `gorm:"not null;index"`
	OwnerID     int64  `gorm:"not null;index"`
	RequestID   *int64 `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Lower-cased copies for search. SQLite's LOWER folds ASCII only.
	NameLower        string `gorm:"size:200" json:"-"`
	DescriptionLower string `gorm:"type:text" json:"-"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID"`
}

// BeforeSave keeps the search columns in step with Name and Description.
func (i *Item) BeforeSave(*gorm.DB) error {
	i.NameLower = strings.ToLower(i.Name)
	i.DescriptionLower = strings.ToLower(i.Description)
	return nil
}
