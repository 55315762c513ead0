package model

// PaymentStatus is shared by checkout sessions, payment records and
// memberships. A membership is "pending" until its fee is reconciled.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// EventStatus is derived from the event start time on every read, never stored.
type EventStatus string

const (
	EventStatusPast     EventStatus = "past"
	EventStatusOngoing  EventStatus = "ongoing"
	EventStatusUpcoming EventStatus = "upcoming"
)
