package handler

import (
	"net/http"

	"clubsphere-server/internal/service"

	"github.com/labstack/echo/v4"
)

type ClubHandler struct {
	clubService service.ClubService
}

func NewClubHandler(clubService service.ClubService) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

func (h *ClubHandler) ListClubs(c echo.Context) error {
	ctx := c.Request().Context()

	clubs, err := h.clubService.Clubs(ctx)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) GetClub(c echo.Context) error {
	ctx := c.Request().Context()

	club, err := h.clubService.ClubByID(ctx, c.Param("id"))
	if err != nil {
		return mapServiceError(err)
	}
	if club == nil {
		return echo.NewHTTPError(http.StatusNotFound, "club not found")
	}
	return c.JSON(http.StatusOK, club)
}
