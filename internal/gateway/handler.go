package gateway

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/internal/dto"
	"shareit/internal/errors"
	"shareit/internal/handler"
	"shareit/internal/model"
)

// Handler validates request shape and forwards to the server tier.
type Handler struct {
	client *Client
}

// NewHandler creates a gateway handler on top of client.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// forward sends req upstream and writes the server's answer back verbatim.
func (h *Handler) forward(c echo.Context, req Request) error {
	req.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)
	resp, err := h.client.Forward(c.Request().Context(), req)
	if err != nil {
		return handler.Fail(err)
	}
	if len(resp.Body) == 0 {
		return c.NoContent(resp.Status)
	}
	contentType := resp.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSONCharsetUTF8
	}
	return c.Blob(resp.Status, contentType, resp.Body)
}

func pageQuery(page model.Page) url.Values {
	q := url.Values{}
	q.Set("from", strconv.Itoa(page.From))
	q.Set("size", strconv.Itoa(page.Size))
	return q
}

// Users

func (h *Handler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := handler.BindAndValidate(c, &req); err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodPost, Path: "/users", Body: req})
}

func (h *Handler) ReplaceUser(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := handler.BindAndValidate(c, &req); err != nil {
		return err
	}
	if req.ID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "id is required", Code: "VALIDATION_ERROR"})
	}
	return h.forward(c, Request{Method: http.MethodPut, Path: "/users", Body: req})
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := handler.PathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := handler.BindAndValidate(c, &req); err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/users/%d", id), Body: req})
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := handler.PathID(c, "id")
	if err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodGet, Path: fmt.Sprintf("/users/%d", id)})
}

func (h *Handler) ListUsers(c echo.Context) error {
	return h.forward(c, Request{Method: http.MethodGet, Path: "/users"})
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := handler.PathID(c, "id")
	if err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/users/%d", id)})
}

// Items

func (h *Handler) CreateItem(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateItemRequest
	if err := handler.BindAndValidate(c, &req); err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodPost, Path: "/items", UserID: userID, Body: req})
}

// UpdateItem serves both PUT and PATCH; the server treats them alike.
func (h *Handler) UpdateItem(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	itemID, err := handler.PathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateItemRequest
	if err := handler.BindAndValidate(c, &req); err != nil {
		return err
	}
	return h.forward(c, Request{
		Method: c.Request().Method,
		Path:   fmt.Sprintf("/items/%d", itemID),
		UserID: userID,
		Body:   req,
	})
}

func (h *Handler) GetItem(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	itemID, err := handler.PathID(c, "id")
	if err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodGet, Path: fmt.Sprintf("/items/%d", itemID), UserID: userID})
}

func (h *Handler) ListOwnItems(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	page, err := handler.PageParams(c)
	if err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodGet, Path: "/items", UserID: userID, Query: pageQuery(page)})
}

// SearchItems answers a blank query locally with an empty list.
func (h *Handler) SearchItems(c echo.Context) error {
	page, err := handler.PageParams(c)
	if err != nil {
		return err
	}
	text := c.QueryParam("text")
	if text == "" {
		return c.JSON(http.StatusOK, []dto.ItemDto{})
	}
	q := pageQuery(page)
	q.Set("text", text)
	// The header is optional here; pass it on when it parses.
	userID, _ := handler.CallerID(c)
	return h.forward(c, Request{Method: http.MethodGet, Path: "/items/search", UserID: userID, Query: q})
}

func (h *Handler) AddComment(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	itemID, err := handler.PathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := handler.BindAndValidate(c, &req); err != nil {
		return err
	}
	return h.forward(c, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/items/%d/comment", itemID),
		UserID: userID,
		Body:   req,
	})
}

// Bookings

func (h *Handler) CreateBooking(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateBookingRequest
	if err := handler.BindAndValidate(c, &req); err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodPost, Path: "/bookings", UserID: userID, Body: req})
}

func (h *Handler) DecideBooking(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	bookingID, err := handler.PathID(c, "id")
	if err != nil {
		return err
	}
	approved, err := handler.ApprovedParam(c)
	if err != nil {
		return err
	}
	return h.forward(c, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/bookings/%d", bookingID),
		UserID: userID,
		Query:  url.Values{"approved": {strconv.FormatBool(approved)}},
	})
}

func (h *Handler) DecideFirstWaiting(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	approved, err := handler.ApprovedParam(c)
	if err != nil {
		return err
	}
	return h.forward(c, Request{
		Method: http.MethodPatch,
		Path:   "/bookings",
		UserID: userID,
		Query:  url.Values{"approved": {strconv.FormatBool(approved)}},
	})
}

func (h *Handler) GetBooking(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	bookingID, err := handler.PathID(c, "id")
	if err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodGet, Path: fmt.Sprintf("/bookings/%d", bookingID), UserID: userID})
}

func (h *Handler) ListByBooker(c echo.Context) error {
	return h.listBookings(c, "/bookings")
}

func (h *Handler) ListByOwner(c echo.Context) error {
	return h.listBookings(c, "/bookings/owner")
}

func (h *Handler) listBookings(c echo.Context, path string) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	state, err := handler.StateParam(c)
	if err != nil {
		return err
	}
	page, err := handler.PageParams(c)
	if err != nil {
		return err
	}
	q := pageQuery(page)
	q.Set("state", string(state))
	return h.forward(c, Request{Method: http.MethodGet, Path: path, UserID: userID, Query: q})
}

// Requests

func (h *Handler) CreateRequest(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateItemRequestRequest
	if err := handler.BindAndValidate(c, &req); err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodPost, Path: "/requests", UserID: userID, Body: req})
}

func (h *Handler) ListOwnRequests(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodGet, Path: "/requests", UserID: userID})
}

func (h *Handler) ListOtherRequests(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	page, err := handler.PageParams(c)
	if err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodGet, Path: "/requests/all", UserID: userID, Query: pageQuery(page)})
}

func (h *Handler) GetRequest(c echo.Context) error {
	userID, err := handler.CallerID(c)
	if err != nil {
		return err
	}
	requestID, err := handler.PathID(c, "id")
	if err != nil {
		return err
	}
	return h.forward(c, Request{Method: http.MethodGet, Path: fmt.Sprintf("/requests/%d", requestID), UserID: userID})
}
