package dto

import "github.com/shopspring/decimal"

// MembershipIntent is produced by the client per checkout attempt and consumed
// once when the checkout session is created. It is never persisted; the full
// intent travels as session metadata so the reconciler can act on the
// provider's copy alone.
type MembershipIntent struct {
	ClubID           string          `json:"clubId"`
	ClubName         string          `json:"clubName"`
	MemberEmail      string          `json:"memberEmail"`
	MemberName       string          `json:"memberName"`
	MemberPhoto      string          `json:"memberPhoto"`
	ClubManagerEmail string          `json:"clubManagerEmail"`
	FeeAmount        decimal.Decimal `json:"feeAmount"` // major currency units
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

type ReconcileResponse struct {
	Success       bool            `json:"success"`
	ClubID        string          `json:"clubId"`
	ClubName      string          `json:"clubName"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"` // major currency units
}

type AddMembershipRequest struct {
	ClubID      string `json:"clubId"`
	ClubName    string `json:"clubName"`
	MemberEmail string `json:"memberEmail"`
	MemberName  string `json:"memberName"`
	MemberPhoto string `json:"memberPhoto"`
}

type AddMembershipResponse struct {
	MembershipID string `json:"membershipId"`
}

type RegisterEventRequest struct {
	EventID     string `json:"eventId"`
	MemberEmail string `json:"memberEmail"`
	MemberName  string `json:"memberName"`
}

type RegistrationCheckResponse struct {
	Registered bool `json:"registered"`
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// ErrorResponse is the body for expected non-fatal outcomes (duplicate
// membership, already processed payment) so callers can tell them apart from
// real failures.
type ErrorResponse struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	TransactionID string `json:"transactionId,omitempty"`
}
