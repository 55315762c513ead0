package handler

import (
	"errors"
	"net/http"

	"clubsphere-server/internal/dto"
	"clubsphere-server/internal/model"
	"clubsphere-server/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.Users(ctx)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	u, err := h.userService.UserByEmail(ctx, c.Param("email"))
	if err != nil {
		return mapServiceError(err)
	}
	if u == nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var u model.User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.userService.CreateUser(ctx, &u)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return c.JSON(http.StatusConflict, &dto.ErrorResponse{
				Code:    "user_exists",
				Message: "user already exists",
			})
		}
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"insertedId": id.Hex()})
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.userService.UpdateUser(ctx, c.Param("email"), fields)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, result)
}
