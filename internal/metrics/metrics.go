package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutSessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubsphere_checkout_sessions_created_total",
		Help: "Checkout sessions successfully created with the payment provider.",
	})

	PaymentsReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubsphere_payments_reconciled_total",
		Help: "Payment reconciliation attempts by outcome.",
	}, []string{"outcome"})

	MembershipsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubsphere_memberships_created_total",
		Help: "Memberships created, by the path that created them.",
	}, []string{"source"})
)

// Outcome labels for PaymentsReconciled.
const (
	OutcomeSuccess          = "success"
	OutcomeAlreadyProcessed = "already_processed"
	OutcomeIncomplete       = "payment_incomplete"
	OutcomeUpstreamError    = "upstream_error"
	OutcomeFailed           = "failed"
)
