package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/internal/dto"
	"shareit/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User payload"
// @Success 201 {object} dto.UserDto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusCreated, dto.ToUserDto(*user))
}

// ReplaceUser godoc
// @Summary Update user, id taken from the body
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateUserRequest true "User payload with id"
// @Success 200 {object} dto.UserDto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [put]
func (h *UserHandler) ReplaceUser(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	if req.ID <= 0 {
		return badRequest("id is required", "VALIDATION_ERROR")
	}
	return h.update(c, req.ID, req)
}

// UpdateUser godoc
// @Summary Partially update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserDto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := PathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	return h.update(c, id, req)
}

func (h *UserHandler) update(c echo.Context, id int64, req dto.UpdateUserRequest) error {
	user, err := h.svc.UpdateUser(c.Request().Context(), id, req)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserDto(*user))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserDto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := PathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserDto(*user))
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} dto.UserDto
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserDtos(users))
}

// DeleteUser godoc
// @Summary Delete user with everything they own
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := PathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return Fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
