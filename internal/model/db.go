package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"` // unique
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Club struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	BannerImage string             `bson:"bannerImage,omitempty" json:"bannerImage,omitempty"`
	// Membership fee in minor currency units. Zero means a free club.
	FeeCents     int64     `bson:"feeCents" json:"feeCents"`
	ManagerEmail string    `bson:"managerEmail" json:"managerEmail"`
	MembersCount int64     `bson:"membersCount" json:"membersCount"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID      string             `bson:"clubId" json:"clubId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	EventDate   string             `bson:"eventDate" json:"eventDate"` // YYYY-MM-DD
	EventTime   string             `bson:"eventTime" json:"eventTime"` // HH:MM, 24h
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`

	// Computed on read from EventDate+EventTime, never persisted.
	Status EventStatus `bson:"-" json:"status,omitempty"`
}

const eventDateTimeLayout = "2006-01-02 15:04"

// StartsAt combines EventDate and EventTime into the event start instant (UTC).
func (e *Event) StartsAt() (time.Time, error) {
	t, err := time.Parse(eventDateTimeLayout, e.EventDate+" "+e.EventTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse event date-time %q %q: %w", e.EventDate, e.EventTime, err)
	}
	return t, nil
}

type EventRegistration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID      string             `bson:"eventId" json:"eventId"` // unique with MemberEmail
	MemberEmail  string             `bson:"memberEmail" json:"memberEmail"`
	MemberName   string             `bson:"memberName,omitempty" json:"memberName,omitempty"`
	RegisteredAt time.Time          `bson:"registeredAt" json:"registeredAt"`
}

type Membership struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID      string             `bson:"clubId" json:"clubId"` // unique with MemberEmail
	ClubName    string             `bson:"clubName" json:"clubName"`
	MemberEmail string             `bson:"memberEmail" json:"memberEmail"`
	MemberName  string             `bson:"memberName" json:"memberName"`
	MemberPhoto string             `bson:"memberPhoto,omitempty" json:"memberPhoto,omitempty"`
	// Paid fee in minor currency units. Zero for free or manually added joins.
	AmountCents   int64         `bson:"amountCents" json:"amountCents"`
	Status        PaymentStatus `bson:"status" json:"status"`
	TransactionID string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	JoinAt        time.Time     `bson:"joinAt" json:"joinAt"`
}

// PaymentRecord is the append-only log of completed payments. TransactionID is
// the provider-issued payment intent id and the dedup key for reconciliation.
type PaymentRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID    string             `bson:"transactionId" json:"transactionId"` // unique
	AmountCents      int64              `bson:"amountCents" json:"amountCents"`
	Currency         string             `bson:"currency" json:"currency"`
	MemberEmail      string             `bson:"memberEmail" json:"memberEmail"`
	MemberName       string             `bson:"memberName,omitempty" json:"memberName,omitempty"`
	MemberPhoto      string             `bson:"memberPhoto,omitempty" json:"memberPhoto,omitempty"`
	ClubID           string             `bson:"clubId" json:"clubId"`
	ClubName         string             `bson:"clubName" json:"clubName"`
	ClubManagerEmail string             `bson:"clubManagerEmail,omitempty" json:"clubManagerEmail,omitempty"`
	PaymentStatus    PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	PaidAt           time.Time          `bson:"paidAt" json:"paidAt"`
}

// Amount is the paid amount in major currency units.
func (p *PaymentRecord) Amount() decimal.Decimal {
	return decimal.NewFromInt(p.AmountCents).Shift(-2)
}
