package model

import "time"

// Comment is a review left by a past booker.
type Comment struct {
	ID       int64     `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	ItemID   int64     `gorm:"not null;index"`
	AuthorID int64     `gorm:"not null;index"`
	Created  time.Time `gorm:"not null"`

	// Relations
	Item   Item `gorm:"foreignKey:ItemID"`
	Author User `gorm:"foreignKey:AuthorID"`
}
