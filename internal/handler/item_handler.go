package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/internal/dto"
	"shareit/internal/service"
)

// ItemHandler serves the item catalog.
type ItemHandler struct {
	svc service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// CreateItem godoc
// @Summary List an item for rent
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param item body dto.CreateItemRequest true "Item payload"
// @Success 201 {object} dto.ItemDto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) CreateItem(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateItemRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.svc.CreateItem(c.Request().Context(), userID, req)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusCreated, dto.ToItemDto(*item))
}

// UpdateItem godoc
// @Summary Update an item (PUT and PATCH behave the same)
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Item ID"
// @Param item body dto.UpdateItemRequest true "Fields to change"
// @Success 200 {object} dto.ItemDto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [patch]
// @Router /items/{id} [put]
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	itemID, err := PathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateItemRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.svc.UpdateItem(c.Request().Context(), userID, itemID, req)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemDto(*item))
}

// GetItem godoc
// @Summary Get item with last/next approved booking and comments
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Item ID"
// @Success 200 {object} dto.ItemDto
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	itemID, err := PathID(c, "id")
	if err != nil {
		return err
	}
	details, err := h.svc.GetItem(c.Request().Context(), userID, itemID)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemDetailsDto(*details))
}

// ListOwnItems godoc
// @Summary List the caller's items
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param from query int false "First row" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} dto.ItemDto
// @Router /items [get]
func (h *ItemHandler) ListOwnItems(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	page, err := PageParams(c)
	if err != nil {
		return err
	}
	details, err := h.svc.ListOwnItems(c.Request().Context(), userID, page)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemDetailsDtos(details))
}

// SearchItems godoc
// @Summary Search available items by name or description
// @Tags items
// @Produce json
// @Param text query string false "Substring, case-insensitive"
// @Param from query int false "First row" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {array} dto.ItemDto
// @Router /items/search [get]
func (h *ItemHandler) SearchItems(c echo.Context) error {
	page, err := PageParams(c)
	if err != nil {
		return err
	}
	items, err := h.svc.SearchItems(c.Request().Context(), c.QueryParam("text"), page)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemDtos(items))
}

// AddComment godoc
// @Summary Review an item after a finished booking
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Item ID"
// @Param comment body dto.CreateCommentRequest true "Comment"
// @Success 200 {object} dto.CommentDto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id}/comment [post]
func (h *ItemHandler) AddComment(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}
	itemID, err := PathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.AddComment(c.Request().Context(), userID, itemID, req)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToCommentDto(*comment))
}
