package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrItemNotFound is returned when an item does not exist.
	ErrItemNotFound = errors.New("item not found")
	// ErrBookingNotFound is returned when a booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrRequestNotFound is returned when an item request does not exist.
	ErrRequestNotFound = errors.New("item request not found")
	// ErrNoWaitingBookings is returned when an owner has nothing to approve.
	ErrNoWaitingBookings = errors.New("no waiting bookings")

	// ErrEmailTaken is returned when the email already belongs to another user.
	ErrEmailTaken = errors.New("email already in use")
	// ErrBookingNotWaiting is returned when the booking status was already decided.
	ErrBookingNotWaiting = errors.New("booking status can not be changed again")

	// ErrNotItemOwner is returned when someone other than the owner changes an item or its bookings.
	ErrNotItemOwner = errors.New("only the item owner can do this")
	// ErrOwnItemBooking is returned when an owner tries to book their own item.
	ErrOwnItemBooking = errors.New("owner can not book own item")
	// ErrBookingAccessDenied is returned when the caller is neither booker nor owner.
	ErrBookingAccessDenied = errors.New("access to booking denied")

	// ErrItemUnavailable is returned when booking an item that is not available.
	ErrItemUnavailable = errors.New("item is not available for booking")
	// ErrCommentNotAllowed is returned when the author has no finished booking of the item.
	ErrCommentNotAllowed = errors.New("user has not rented this item or the rental has not ended yet")
	// ErrInvalidBookingDates is returned when start/end do not form a future range.
	ErrInvalidBookingDates = errors.New("invalid booking dates")
	// ErrUnknownState is returned for booking states outside the known set.
	ErrUnknownState = errors.New("Unknown state")

	// ErrServerUnavailable is returned by the gateway when the server tier can not be reached.
	ErrServerUnavailable = errors.New("shareit server unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

type mapping struct {
	target error
	status int
	code   string
}

var mappings = []mapping{
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrItemNotFound, http.StatusNotFound, "ITEM_NOT_FOUND"},
	{ErrBookingNotFound, http.StatusNotFound, "BOOKING_NOT_FOUND"},
	{ErrRequestNotFound, http.StatusNotFound, "REQUEST_NOT_FOUND"},
	{ErrNoWaitingBookings, http.StatusNotFound, "NO_WAITING_BOOKINGS"},
	{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
	{ErrBookingNotWaiting, http.StatusConflict, "BOOKING_NOT_WAITING"},
	{ErrNotItemOwner, http.StatusForbidden, "NOT_ITEM_OWNER"},
	{ErrOwnItemBooking, http.StatusForbidden, "OWN_ITEM_BOOKING"},
	{ErrBookingAccessDenied, http.StatusForbidden, "BOOKING_ACCESS_DENIED"},
	{ErrItemUnavailable, http.StatusBadRequest, "ITEM_UNAVAILABLE"},
	{ErrCommentNotAllowed, http.StatusBadRequest, "COMMENT_NOT_ALLOWED"},
	{ErrInvalidBookingDates, http.StatusBadRequest, "INVALID_BOOKING_DATES"},
	{ErrUnknownState, http.StatusBadRequest, "UNKNOWN_STATE"},
	{ErrServerUnavailable, http.StatusBadGateway, "SERVER_UNAVAILABLE"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors keep their
// full message so the caller sees which id was missing.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return NewHTTPError(m.status, err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
