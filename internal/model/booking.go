package model

import (
	"fmt"
	"strings"
	"time"

	"shareit/internal/errors"
)

// BookingStatus represents the lifecycle status of a booking.
type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

// Booking is a request to rent an item for [Start, End).
// END is reserved in MySQL, hence the column names.
type Booking struct {
	ID        int64         `gorm:"primaryKey"`
	Start     time.Time     `gorm:"column:start_date;not null;index"`
	End       time.Time     `gorm:"column:end_date;not null;index"`
	ItemID    int64         `gorm:"not null;index"`
	BookerID  int64         `gorm:"not null;index"`
	Status    BookingStatus `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Item   Item `gorm:"foreignKey:ItemID"`
	Booker User `gorm:"foreignKey:BookerID"`
}

// BookingState selects bookings relative to an evaluation time.
type BookingState string

const (
	BookingStateAll      BookingState = "ALL"
	BookingStateCurrent  BookingState = "CURRENT"
	BookingStatePast     BookingState = "PAST"
	BookingStateFuture   BookingState = "FUTURE"
	BookingStateWaiting  BookingState = "WAITING"
	BookingStateRejected BookingState = "REJECTED"
)

// ParseBookingState accepts any letter case; an empty string means ALL.
func ParseBookingState(s string) (BookingState, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return BookingStateAll, nil
	}
	switch st := BookingState(strings.ToUpper(trimmed)); st {
	case BookingStateAll, BookingStateCurrent, BookingStatePast,
		BookingStateFuture, BookingStateWaiting, BookingStateRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: %s", errors.ErrUnknownState, s)
}

// Matches reports whether b belongs to state s at time now. The repository
// filters with the same rules in SQL.
func (s BookingState) Matches(b *Booking, now time.Time) bool {
	switch s {
	case BookingStateAll:
		return true
	case BookingStateCurrent:
		return !b.Start.After(now) && b.End.After(now)
	case BookingStatePast:
		return b.End.Before(now)
	case BookingStateFuture:
		return b.Start.After(now)
	case BookingStateWaiting:
		return b.Status == BookingStatusWaiting
	case BookingStateRejected:
		return b.Status == BookingStatusRejected
	}
	return false
}
