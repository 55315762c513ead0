package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubsphere-server/internal/client"
	"clubsphere-server/internal/dto"
	"clubsphere-server/internal/metrics"
	"clubsphere-server/internal/model"
	"clubsphere-server/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session metadata keys. The full membership intent rides on the provider's
// session so reconciliation needs no local lookup.
const (
	metaClubID           = "clubId"
	metaClubName         = "clubName"
	metaMemberEmail      = "memberEmail"
	metaMemberName       = "memberName"
	metaMemberPhoto      = "memberPhoto"
	metaClubManagerEmail = "clubManagerEmail"
)

type PaymentService interface {
	InitiateCheckout(ctx context.Context, intent *dto.MembershipIntent) (*dto.CheckoutResponse, error)
	ReconcilePayment(ctx context.Context, sessionRef string) (*dto.ReconcileResponse, error)
	PaymentsByMember(ctx context.Context, email string) ([]*model.PaymentRecord, error)
}

type paymentServiceImpl struct {
	provider       client.CheckoutProvider
	txn            client.TxnRunner
	baseURL        string
	currency       string
	paymentRepo    repository.PaymentRepository
	membershipRepo repository.MembershipRepository
	clubRepo       repository.ClubRepository
}

func NewPaymentService(
	provider client.CheckoutProvider,
	txn client.TxnRunner,
	baseURL string,
	currency string,
	paymentRepo repository.PaymentRepository,
	membershipRepo repository.MembershipRepository,
	clubRepo repository.ClubRepository,
) PaymentService {
	return &paymentServiceImpl{
		provider:       provider,
		txn:            txn,
		baseURL:        baseURL,
		currency:       currency,
		paymentRepo:    paymentRepo,
		membershipRepo: membershipRepo,
		clubRepo:       clubRepo,
	}
}

// InitiateCheckout builds a one-line-item checkout session from the intent
// and returns the provider's redirect URL. No persisted state is touched;
// everything the reconciler needs travels as session metadata.
func (s *paymentServiceImpl) InitiateCheckout(ctx context.Context, intent *dto.MembershipIntent) (*dto.CheckoutResponse, error) {
	if intent.ClubID == "" {
		return nil, fmt.Errorf("clubId is required: %w", ErrInvalidInput)
	}
	if intent.MemberEmail == "" {
		return nil, fmt.Errorf("memberEmail is required: %w", ErrInvalidInput)
	}
	if !intent.FeeAmount.IsPositive() {
		return nil, fmt.Errorf("feeAmount must be positive: %w", ErrInvalidInput)
	}

	sess, err := s.provider.CreateSession(ctx, &client.CreateSessionRequest{
		ProductName:       fmt.Sprintf("%s membership", intent.ClubName),
		UnitAmountCents:   intent.FeeAmount.Shift(2).IntPart(),
		Currency:          s.currency,
		CustomerEmail:     intent.MemberEmail,
		ClientReferenceID: uuid.NewString(),
		Metadata: map[string]string{
			metaClubID:           intent.ClubID,
			metaClubName:         intent.ClubName,
			metaMemberEmail:      intent.MemberEmail,
			metaMemberName:       intent.MemberName,
			metaMemberPhoto:      intent.MemberPhoto,
			metaClubManagerEmail: intent.ClubManagerEmail,
		},
		SuccessURL: s.baseURL + "/api/payments/confirm?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.baseURL,
	})
	if err != nil {
		return nil, &UpstreamError{Op: "create checkout session", Err: err}
	}

	metrics.CheckoutSessionsCreated.Inc()
	slog.Info("checkout session created",
		"sessionId", sess.SessionID, "clubId", intent.ClubID, "memberEmail", intent.MemberEmail)

	return &dto.CheckoutResponse{URL: sess.URL, SessionID: sess.SessionID}, nil
}

// ReconcilePayment verifies a returned session with the provider and records
// the outcome exactly once: payment record insert, membership upsert and club
// counter increment run as one logical unit keyed by the provider transaction
// id. Repeated calls for the same transaction return AlreadyProcessedError.
func (s *paymentServiceImpl) ReconcilePayment(ctx context.Context, sessionRef string) (*dto.ReconcileResponse, error) {
	if sessionRef == "" {
		return nil, ErrMissingSessionReference
	}

	sess, err := s.provider.RetrieveSession(ctx, sessionRef)
	if err != nil {
		metrics.PaymentsReconciled.WithLabelValues(metrics.OutcomeUpstreamError).Inc()
		return nil, &UpstreamError{Op: "retrieve checkout session", Err: err}
	}

	if sess.PaymentStatus != model.PaymentStatusPaid {
		metrics.PaymentsReconciled.WithLabelValues(metrics.OutcomeIncomplete).Inc()
		return nil, ErrPaymentIncomplete
	}

	existing, err := s.paymentRepo.FindByTransactionID(ctx, sess.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("look up payment %s: %w", sess.TransactionID, err)
	}
	if existing != nil {
		metrics.PaymentsReconciled.WithLabelValues(metrics.OutcomeAlreadyProcessed).Inc()
		return nil, &AlreadyProcessedError{TransactionID: existing.TransactionID}
	}

	now := time.Now().UTC()
	rec := &model.PaymentRecord{
		TransactionID:    sess.TransactionID,
		AmountCents:      sess.AmountTotal,
		Currency:         sess.Currency,
		MemberEmail:      sess.CustomerEmail,
		MemberName:       sess.Metadata[metaMemberName],
		MemberPhoto:      sess.Metadata[metaMemberPhoto],
		ClubID:           sess.Metadata[metaClubID],
		ClubName:         sess.Metadata[metaClubName],
		ClubManagerEmail: sess.Metadata[metaClubManagerEmail],
		PaymentStatus:    model.PaymentStatusPaid,
		PaidAt:           now,
	}
	if rec.MemberEmail == "" {
		rec.MemberEmail = sess.Metadata[metaMemberEmail]
	}

	err = s.txn.Run(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.Insert(ctx, rec); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				// lost the race against a concurrent confirmation
				return &AlreadyProcessedError{TransactionID: rec.TransactionID}
			}
			return fmt.Errorf("insert payment record: %w", err)
		}

		member, err := s.membershipRepo.FindByClubAndEmail(ctx, rec.ClubID, rec.MemberEmail)
		if err != nil {
			return fmt.Errorf("look up membership: %w", err)
		}
		if member != nil {
			// Pre-created (pending) membership: flip it to paid in place. The
			// path that created it already bumped the club counter.
			if err := s.membershipRepo.MarkPaid(ctx, member.ID, rec.AmountCents, rec.TransactionID); err != nil {
				return err
			}
			return nil
		}

		_, err = s.membershipRepo.Insert(ctx, &model.Membership{
			ClubID:        rec.ClubID,
			ClubName:      rec.ClubName,
			MemberEmail:   rec.MemberEmail,
			MemberName:    rec.MemberName,
			MemberPhoto:   rec.MemberPhoto,
			AmountCents:   rec.AmountCents,
			Status:        model.PaymentStatusPaid,
			TransactionID: rec.TransactionID,
			JoinAt:        now,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				// a concurrent join created the membership and owns the count
				slog.Warn("membership already created concurrently",
					"clubId", rec.ClubID, "memberEmail", rec.MemberEmail)
				return nil
			}
			return fmt.Errorf("insert membership: %w", err)
		}
		metrics.MembershipsCreated.WithLabelValues("checkout").Inc()

		return s.clubRepo.IncrementMembersCount(ctx, rec.ClubID, 1)
	})
	if err != nil {
		var ap *AlreadyProcessedError
		if errors.As(err, &ap) {
			metrics.PaymentsReconciled.WithLabelValues(metrics.OutcomeAlreadyProcessed).Inc()
			return nil, ap
		}
		metrics.PaymentsReconciled.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}

	metrics.PaymentsReconciled.WithLabelValues(metrics.OutcomeSuccess).Inc()
	slog.Info("payment reconciled",
		"transactionId", rec.TransactionID, "clubId", rec.ClubID, "amountCents", rec.AmountCents)

	return &dto.ReconcileResponse{
		Success:       true,
		ClubID:        rec.ClubID,
		ClubName:      rec.ClubName,
		TransactionID: rec.TransactionID,
		Amount:        decimal.NewFromInt(rec.AmountCents).Shift(-2),
	}, nil
}

func (s *paymentServiceImpl) PaymentsByMember(ctx context.Context, email string) ([]*model.PaymentRecord, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", ErrInvalidInput)
	}
	return s.paymentRepo.FindByMemberEmail(ctx, email)
}
