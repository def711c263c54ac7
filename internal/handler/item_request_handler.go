package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/internal/dto"
	"shareit/internal/service"
)

// ItemRequestHandler serves the item request board.
type ItemRequestHandler struct {
	svc service.ItemRequestService
}

// NewItemRequestHandler creates a new item request handler.
func NewItemRequestHandler(svc service.ItemRequestService) *ItemRequestHandler {
	return &ItemRequestHandler{svc: svc}
}

// CreateRequest godoc
// @Summary Ask for an item nobody lists yet
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param request body dto.CreateItemRequestRequest true "Description"
// @Success 201 {object} dto.ItemRequestDto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /requests [post]
func (h *ItemRequestHandler) CreateRequest(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateItemRequestRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	request, err := h.svc.CreateRequest(c.Request().Context(), userID, req)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusCreated, dto.ToItemRequestDto(*request))
}

// ListOwn godoc
// @Summary List the caller's requests with the items offered for them
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Success 200 {array} dto.ItemRequestDto
// @Router /requests [get]
func (h *ItemRequestHandler) ListOwn(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	requests, err := h.svc.ListOwn(c.Request().Context(), userID)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestDtos(requests))
}

// ListOthers godoc
// @Summary List requests of other users, newest first
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param from query int false "First row" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} dto.ItemRequestDto
// @Router /requests/all [get]
func (h *ItemRequestHandler) ListOthers(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	page, err := PageParams(c)
	if err != nil {
		return err
	}
	requests, err := h.svc.ListOthers(c.Request().Context(), userID, page)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestDtos(requests))
}

// GetRequest godoc
// @Summary Get one request
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Request ID"
// @Success 200 {object} dto.ItemRequestDto
// @Failure 404 {object} errors.ErrorResponse
// @Router /requests/{id} [get]
func (h *ItemRequestHandler) GetRequest(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	requestID, err := PathID(c, "id")
	if err != nil {
		return err
	}
	request, err := h.svc.GetRequest(c.Request().Context(), userID, requestID)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestDto(*request))
}
