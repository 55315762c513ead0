package handler

import (
	"errors"
	"net/http"

	"clubsphere-server/internal/service"

	"github.com/labstack/echo/v4"
)

// mapServiceError translates domain errors into HTTP faults. Idempotent
// duplicate outcomes that need a structured body are handled in the specific
// handlers; everything else goes through here.
func mapServiceError(err error) error {
	var upstream *service.UpstreamError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrMissingSessionReference):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPaymentIncomplete):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrDuplicateMembership),
		errors.Is(err, service.ErrDuplicateRegistration):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &upstream):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return err
}
