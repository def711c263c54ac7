package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shareit/internal/model"
)

// BookingRepository defines booking persistence operations.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page model.Page) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page model.Page) ([]model.Booking, error)
	// UpdateStatusIfWaiting reports false when the booking had already left WAITING.
	UpdateStatusIfWaiting(ctx context.Context, id int64, status model.BookingStatus) (bool, error)
	FindFirstWaitingByOwner(ctx context.Context, ownerID int64) (*model.Booking, error)
	ListApprovedByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Omit("Item", "Booker").Create(booking).Error
}

// FindByID loads the booking with its item and booker.
func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page model.Page) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Where("bookings.booker_id = ?", bookerID).
		Scopes(bookingState(state, now), paginate(page)).
		Order("bookings.start_date DESC, bookings.id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page model.Page) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Scopes(bookingState(state, now), paginate(page)).
		Order("bookings.start_date DESC, bookings.id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatusIfWaiting moves a booking out of WAITING exactly once. Two
// concurrent decisions race on the WHERE clause; the loser sees zero rows.
func (r *bookingRepository) UpdateStatusIfWaiting(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, model.BookingStatusWaiting).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindFirstWaitingByOwner returns the earliest-starting WAITING booking on any
// of the owner's items.
func (r *bookingRepository) FindFirstWaitingByOwner(ctx context.Context, ownerID int64) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ? AND bookings.status = ?", ownerID, model.BookingStatusWaiting).
		Order("bookings.start_date, bookings.id").
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListApprovedByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("item_id IN ? AND status = ?", itemIDs, model.BookingStatusApproved).
		Order("start_date").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// HasFinishedBooking reports whether the booker has a booking of the item
// that ended before now.
func (r *bookingRepository) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("booker_id = ? AND item_id = ? AND end_date < ?", bookerID, itemID, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
