package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"shareit/internal/dto"
	"shareit/internal/errors"
	"shareit/internal/model"
	"shareit/internal/validation"
)

// HeaderUserID carries the numeric id of the calling user.
const HeaderUserID = "X-Sharer-User-Id"

func badRequest(msg, code string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: msg, Code: code})
}

// Fail converts a domain error into an echo.HTTPError.
func Fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// CallerID reads the identity header.
func CallerID(c echo.Context) (int64, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
	if raw == "" {
		return 0, badRequest("missing "+HeaderUserID+" header", "MISSING_USER_HEADER")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badRequest("invalid "+HeaderUserID+" header", "INVALID_USER_HEADER")
	}
	return id, nil
}

// PathID parses a numeric path parameter.
func PathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("invalid %s", name), "INVALID_ID")
	}
	return id, nil
}

// BindAndValidate decodes the JSON body into req and runs the validator.
func BindAndValidate(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(validation.Message(err), "VALIDATION_ERROR")
	}
	return nil
}

// PageParams reads from/size with defaults 0 and 10.
func PageParams(c echo.Context) (model.Page, error) {
	q := dto.PageQuery{From: dto.DefaultFrom, Size: dto.DefaultSize}
	err := echo.QueryParamsBinder(c).
		Int("from", &q.From).
		Int("size", &q.Size).
		BindError()
	if err != nil {
		return model.Page{}, badRequest("from and size must be integers", "INVALID_PAGE")
	}
	if err := c.Validate(&q); err != nil {
		return model.Page{}, badRequest(validation.Message(err), "INVALID_PAGE")
	}
	return q.Page(), nil
}

// StateParam parses the booking state query parameter.
func StateParam(c echo.Context) (model.BookingState, error) {
	state, err := model.ParseBookingState(c.QueryParam("state"))
	if err != nil {
		return "", Fail(err)
	}
	return state, nil
}

// ApprovedParam parses the mandatory approved=true|false query parameter.
func ApprovedParam(c echo.Context) (bool, error) {
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return false, badRequest("approved must be true or false", "INVALID_APPROVED")
	}
	return approved, nil
}
