package model

import "time"

// ItemRequest is a wish for an item nobody has listed yet.
type ItemRequest struct {
	ID          int64     `gorm:"primaryKey"`
	Description string    `gorm:"type:text;not null"`
	RequesterID int64     `gorm:"not null;index"`
	Created     time.Time `gorm:"not null;index"`

	// Relations
	Requester User   `gorm:"foreignKey:RequesterID"`
	Items     []Item `gorm:"foreignKey:RequestID"`
}
