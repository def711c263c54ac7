package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/internal/dto"
	"shareit/internal/model"
	"shareit/internal/service"
)

// BookingHandler serves booking endpoints.
type BookingHandler struct {
	svc service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// CreateBooking godoc
// @Summary Request a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param booking body dto.CreateBookingRequest true "Item and period"
// @Success 201 {object} dto.BookingDto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateBookingRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	booking, err := h.svc.CreateBooking(c.Request().Context(), userID, req)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingDto(*booking))
}

// DecideBooking godoc
// @Summary Approve or reject a waiting booking
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner id"
// @Param id path int true "Booking ID"
// @Param approved query bool true "Decision"
// @Success 200 {object} dto.BookingDto
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /bookings/{id} [patch]
func (h *BookingHandler) DecideBooking(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	bookingID, err := PathID(c, "id")
	if err != nil {
		return err
	}
	approved, err := ApprovedParam(c)
	if err != nil {
		return err
	}
	booking, err := h.svc.DecideBooking(c.Request().Context(), userID, bookingID, approved)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingDto(*booking))
}

// DecideFirstWaiting godoc
// @Summary Approve or reject the owner's earliest waiting booking
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner id"
// @Param approved query bool true "Decision"
// @Success 200 {object} dto.BookingDto
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /bookings [patch]
func (h *BookingHandler) DecideFirstWaiting(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	approved, err := ApprovedParam(c)
	if err != nil {
		return err
	}
	booking, err := h.svc.DecideFirstWaiting(c.Request().Context(), userID, approved)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingDto(*booking))
}

// GetBooking godoc
// @Summary Get a booking as its booker or the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Booking ID"
// @Success 200 {object} dto.BookingDto
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	bookingID, err := PathID(c, "id")
	if err != nil {
		return err
	}
	booking, err := h.svc.GetBooking(c.Request().Context(), userID, bookingID)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingDto(*booking))
}

// ListByBooker godoc
// @Summary List the caller's bookings
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "First row" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} dto.BookingDto
// @Failure 400 {object} errors.ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) ListByBooker(c echo.Context) error {
	return h.list(c, h.svc.ListByBooker)
}

// ListByOwner godoc
// @Summary List bookings of the caller's items
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "First row" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} dto.BookingDto
// @Failure 400 {object} errors.ErrorResponse
// @Router /bookings/owner [get]
func (h *BookingHandler) ListByOwner(c echo.Context) error {
	return h.list(c, h.svc.ListByOwner)
}

type listFunc func(ctx context.Context, userID int64, state model.BookingState, page model.Page) ([]model.Booking, error)

func (h *BookingHandler) list(c echo.Context, fetch listFunc) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	state, err := StateParam(c)
	if err != nil {
		return err
	}
	page, err := PageParams(c)
	if err != nil {
		return err
	}
	bookings, err := fetch(c.Request().Context(), userID, state, page)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingDtos(bookings))
}
