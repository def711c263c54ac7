package repository

import (
	"time"

	"gorm.io/gorm"

	"shareit/internal/model"
)

func paginate(page model.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.IsUnpaged() {
			return db
		}
		return db.Offset(page.Offset()).Limit(page.Size)
	}
}

// bookingState mirrors model.BookingState.Matches in SQL.
func bookingState(state model.BookingState, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch state {
		case model.BookingStateCurrent:
			return db.Where("bookings.start_date <= ? AND bookings.end_date > ?", now, now)
		case model.BookingStatePast:
			return db.Where("bookings.end_date < ?", now)
		case model.BookingStateFuture:
			return db.Where("bookings.start_date > ?", now)
		case model.BookingStateWaiting:
			return db.Where("bookings.status = ?", model.BookingStatusWaiting)
		case model.BookingStateRejected:
			return db.Where("bookings.status = ?", model.BookingStatusRejected)
		}
		return db
	}
}
