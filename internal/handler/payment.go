package handler

import (
	"errors"
	"net/http"

	"clubsphere-server/internal/dto"
	"clubsphere-server/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) InitiateCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var intent dto.MembershipIntent
	if err := c.Bind(&intent); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.paymentService.InitiateCheckout(ctx, &intent)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ConfirmPayment is where Stripe redirects the member after checkout, and
// also the endpoint clients poll on a reload. A repeated confirmation for the
// same transaction returns 409 with the existing transaction id.
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.QueryParam("session_id")
	resp, err := h.paymentService.ReconcilePayment(ctx, sessionID)
	if err != nil {
		var ap *service.AlreadyProcessedError
		if errors.As(err, &ap) {
			return c.JSON(http.StatusConflict, &dto.ErrorResponse{
				Code:          "already_processed",
				Message:       "payment was already recorded",
				TransactionID: ap.TransactionID,
			})
		}
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) PaymentsByMember(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.paymentService.PaymentsByMember(ctx, c.QueryParam("email"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, records)
}
