package client

import (
	"context"
	"fmt"

	"clubsphere-server/internal/config"
	"clubsphere-server/internal/model"

	"github.com/stripe/stripe-go/v74"
	stripeclient "github.com/stripe/stripe-go/v74/client"
)

// CheckoutSession is the slice of the provider's session the reconciler needs.
// TransactionID is the payment intent id, stable once the session is paid.
type CheckoutSession struct {
	SessionID     string
	URL           string
	PaymentStatus model.PaymentStatus
	AmountTotal   int64 // minor currency units
	Currency      string
	CustomerEmail string
	TransactionID string
	Metadata      map[string]string
}

type CreateSessionRequest struct {
	ProductName       string
	UnitAmountCents   int64
	Currency          string
	CustomerEmail     string
	ClientReferenceID string
	Metadata          map[string]string
	SuccessURL        string
	CancelURL         string
}

type CheckoutProvider interface {
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

type stripeClientImpl struct {
	api *stripeclient.API
}

func NewStripeClient(cfg *config.Stripe) CheckoutProvider {
	api := &stripeclient.API{}
	api.Init(cfg.SecretKey, nil)
	return &stripeClientImpl{api: api}
}

func (c *stripeClientImpl) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.UnitAmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail:     stripe.String(req.CustomerEmail),
		ClientReferenceID: stripe.String(req.ClientReferenceID),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}
	return fromStripeSession(sess), nil
}

func (c *stripeClientImpl) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe retrieve checkout session %s: %w", sessionID, err)
	}
	return fromStripeSession(sess), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	cs := &CheckoutSession{
		SessionID:     s.ID,
		URL:           s.URL,
		PaymentStatus: paymentStatusFromStripe(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		cs.CustomerEmail = s.CustomerDetails.Email
	}
	if s.PaymentIntent != nil {
		cs.TransactionID = s.PaymentIntent.ID
	}
	return cs
}

func paymentStatusFromStripe(ps stripe.CheckoutSessionPaymentStatus) model.PaymentStatus {
	switch ps {
	case stripe.CheckoutSessionPaymentStatusPaid,
		stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return model.PaymentStatusPaid
	default:
		return model.PaymentStatusPending
	}
}
