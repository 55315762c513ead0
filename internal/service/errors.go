package service

import (
	"errors"
	"fmt"
)

// Expected, non-fatal outcomes of the idempotency checks. Handlers report
// them as distinguishable conflict responses, never as server errors.
var (
	ErrDuplicateMembership   = errors.New("membership already exists for this club and member")
	ErrDuplicateRegistration = errors.New("member is already registered for this event")
	ErrUserExists            = errors.New("user already exists")
)

// Validation failures, reported as client faults.
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrMissingSessionReference = errors.New("missing checkout session reference")
)

// ErrPaymentIncomplete means the session exists but has not been paid yet.
// The caller can poll or send the user back through checkout.
var ErrPaymentIncomplete = errors.New("payment not completed")

// AlreadyProcessedError carries the transaction id of the payment record that
// already exists, so callers can treat a repeated confirmation as handled.
type AlreadyProcessedError struct {
	TransactionID string
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("payment %s already processed", e.TransactionID)
}

// UpstreamError wraps a payment provider failure. It is surfaced to the
// caller as a server fault and never retried by this service.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
