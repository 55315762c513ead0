package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubsphere-server/internal/dto"
	"clubsphere-server/internal/model"
	"clubsphere-server/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPaymentService struct {
	initiateResp  *dto.CheckoutResponse
	initiateErr   error
	reconcileResp *dto.ReconcileResponse
	reconcileErr  error
}

func (s *stubPaymentService) InitiateCheckout(context.Context, *dto.MembershipIntent) (*dto.CheckoutResponse, error) {
	return s.initiateResp, s.initiateErr
}

func (s *stubPaymentService) ReconcilePayment(context.Context, string) (*dto.ReconcileResponse, error) {
	return s.reconcileResp, s.reconcileErr
}

func (s *stubPaymentService) PaymentsByMember(context.Context, string) ([]*model.PaymentRecord, error) {
	return nil, nil
}

func confirmRequest(t *testing.T, svc service.PaymentService, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	target := "/api/payments/confirm"
	if sessionID != "" {
		target += "?session_id=" + sessionID
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(svc)
	err := h.ConfirmPayment(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestConfirmPayment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubPaymentService{reconcileResp: &dto.ReconcileResponse{
			Success:       true,
			ClubID:        "C1",
			ClubName:      "Chess Club",
			TransactionID: "pi_1",
			Amount:        decimal.NewFromInt(20),
		}}

		rec := confirmRequest(t, svc, "cs_1")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp dto.ReconcileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "pi_1", resp.TransactionID)
	})

	t.Run("missing session reference is a client fault", func(t *testing.T) {
		svc := &stubPaymentService{reconcileErr: service.ErrMissingSessionReference}
		rec := confirmRequest(t, svc, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("incomplete payment", func(t *testing.T) {
		svc := &stubPaymentService{reconcileErr: service.ErrPaymentIncomplete}
		rec := confirmRequest(t, svc, "cs_1")
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	})

	t.Run("already processed returns the existing transaction id", func(t *testing.T) {
		svc := &stubPaymentService{reconcileErr: &service.AlreadyProcessedError{TransactionID: "pi_1"}}
		rec := confirmRequest(t, svc, "cs_1")
		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "already_processed", resp.Code)
		assert.Equal(t, "pi_1", resp.TransactionID)
	})

	t.Run("provider failure is a server fault", func(t *testing.T) {
		svc := &stubPaymentService{reconcileErr: &service.UpstreamError{Op: "retrieve checkout session"}}
		rec := confirmRequest(t, svc, "cs_1")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestInitiateCheckoutHandler(t *testing.T) {
	body := `{"clubId":"C1","clubName":"Chess Club","memberEmail":"a@x.com","feeAmount":20}`

	t.Run("success", func(t *testing.T) {
		svc := &stubPaymentService{initiateResp: &dto.CheckoutResponse{
			URL:       "https://checkout.example.com/c/pay/cs_1",
			SessionID: "cs_1",
		}}

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/checkout", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, NewPaymentHandler(svc).InitiateCheckout(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "cs_1")
	})

	t.Run("upstream failure", func(t *testing.T) {
		svc := &stubPaymentService{initiateErr: &service.UpstreamError{Op: "create checkout session"}}

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/checkout", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := NewPaymentHandler(svc).InitiateCheckout(c)
		if err != nil {
			e.HTTPErrorHandler(err, c)
		}
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
