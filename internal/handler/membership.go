package handler

import (
	"errors"
	"net/http"

	"clubsphere-server/internal/dto"
	"clubsphere-server/internal/service"

	"github.com/labstack/echo/v4"
)

type MembershipHandler struct {
	membershipService service.MembershipService
}

func NewMembershipHandler(membershipService service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

func (h *MembershipHandler) AddMembership(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddMembershipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.membershipService.AddMembership(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateMembership) {
			return c.JSON(http.StatusConflict, &dto.ErrorResponse{
				Code:    "duplicate_membership",
				Message: "member already belongs to this club",
			})
		}
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, &dto.AddMembershipResponse{MembershipID: id.Hex()})
}

func (h *MembershipHandler) MembershipsByMember(c echo.Context) error {
	ctx := c.Request().Context()

	memberships, err := h.membershipService.MembershipsByMember(ctx, c.QueryParam("email"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, memberships)
}

func (h *MembershipHandler) MembershipByClubAndMember(c echo.Context) error {
	ctx := c.Request().Context()

	m, err := h.membershipService.MembershipByClubAndMember(ctx, c.Param("clubId"), c.Param("email"))
	if err != nil {
		return mapServiceError(err)
	}
	if m == nil {
		return echo.NewHTTPError(http.StatusNotFound, "membership not found")
	}
	return c.JSON(http.StatusOK, m)
}
