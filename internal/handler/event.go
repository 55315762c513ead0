package handler

import (
	"errors"
	"net/http"

	"clubsphere-server/internal/dto"
	"clubsphere-server/internal/service"

	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	ctx := c.Request().Context()

	events, err := h.eventService.Events(ctx)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	ctx := c.Request().Context()

	event, err := h.eventService.EventByID(ctx, c.Param("id"))
	if err != nil {
		return mapServiceError(err)
	}
	if event == nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.eventService.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateRegistration) {
			return c.JSON(http.StatusConflict, &dto.ErrorResponse{
				Code:    "duplicate_registration",
				Message: "member is already registered for this event",
			})
		}
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"registrationId": id.Hex()})
}

func (h *EventHandler) CheckRegistration(c echo.Context) error {
	ctx := c.Request().Context()

	registered, err := h.eventService.IsRegistered(ctx, c.QueryParam("eventId"), c.QueryParam("email"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, &dto.RegistrationCheckResponse{Registered: registered})
}
