package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"shareit/internal/dto"
	"shareit/internal/errors"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/model"
	"shareit/internal/repository"
)

// BookingService runs the booking lifecycle WAITING -> APPROVED | REJECTED.
type BookingService interface {
	CreateBooking(ctx context.Context, bookerID int64, req dto.CreateBookingRequest) (*model.Booking, error)
	DecideBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.Booking, error)
	DecideFirstWaiting(ctx context.Context, ownerID int64, approved bool) (*model.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID int64) (*model.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, page model.Page) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, page model.Page) ([]model.Booking, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	items    repository.ItemRepository
	users    UserService
	now      Clock
	logger   *zerolog.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookings repository.BookingRepository,
	items repository.ItemRepository,
	users UserService,
	now Clock,
	logger *zerolog.Logger,
) BookingService {
	return &bookingService{bookings: bookings, items: items, users: users, now: now, logger: logging.Component(logger, "bookings")}
}

func (s *bookingService) CreateBooking(ctx context.Context, bookerID int64, req dto.CreateBookingRequest) (*model.Booking, error) {
	booker, err := s.users.GetUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, notFound(err, errors.ErrItemNotFound, req.ItemID)
	}
	if item.OwnerID == bookerID {
		return nil, errors.ErrOwnItemBooking
	}
	if !item.Available {
		return nil, errors.ErrItemUnavailable
	}
	if req.Start == nil || req.End == nil || !req.End.After(req.Start.Time) ||
		req.Start.Before(s.now().Truncate(time.Second)) {
		return nil, errors.ErrInvalidBookingDates
	}

	booking := &model.Booking{
		Start:    req.Start.UTC(),
		End:      req.End.UTC(),
		ItemID:   item.ID,
		BookerID: bookerID,
		Status:   model.BookingStatusWaiting,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	booking.Item = *item
	booking.Booker = *booker

	metrics.IncBookingTransition(string(model.BookingStatusWaiting))
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", bookerID).
		Msg("booking created")
	return booking, nil
}

func (s *bookingService) DecideBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, errors.ErrBookingNotFound, bookingID)
	}
	return s.decide(ctx, ownerID, booking, approved)
}

func (s *bookingService) DecideFirstWaiting(ctx context.Context, ownerID int64, approved bool) (*model.Booking, error) {
	booking, err := s.bookings.FindFirstWaitingByOwner(ctx, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrNoWaitingBookings
	}
	if err != nil {
		return nil, err
	}
	return s.decide(ctx, ownerID, booking, approved)
}

func (s *bookingService) decide(ctx context.Context, ownerID int64, booking *model.Booking, approved bool) (*model.Booking, error) {
	if booking.Item.OwnerID != ownerID {
		return nil, errors.ErrNotItemOwner
	}
	if booking.Status != model.BookingStatusWaiting {
		return nil, errors.ErrBookingNotWaiting
	}

	status := model.BookingStatusRejected
	if approved {
		status = model.BookingStatusApproved
	}
	changed, err := s.bookings.UpdateStatusIfWaiting(ctx, booking.ID, status)
	if err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("failed to update booking status")
		return nil, err
	}
	if !changed {
		return nil, errors.ErrBookingNotWaiting
	}
	booking.Status = status

	metrics.IncBookingTransition(string(status))
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("owner_id", ownerID).
		Str("status", string(status)).
		Msg("booking decided")
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, errors.ErrBookingNotFound, bookingID)
	}
	if booking.BookerID != userID && booking.Item.OwnerID != userID {
		return nil, errors.ErrBookingAccessDenied
	}
	return booking, nil
}

func (s *bookingService) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, page model.Page) ([]model.Booking, error) {
	if _, err := s.users.GetUser(ctx, bookerID); err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, bookerID, state, s.now(), page)
}

func (s *bookingService) ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, page model.Page) ([]model.Booking, error) {
	if _, err := s.users.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, ownerID, state, s.now(), page)
}
